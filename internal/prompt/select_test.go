package prompt

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/frontendschool-official/interview-engine/internal/problem"
)

func selectorPack(version string) []byte {
	return []byte(`version: ` + version + `
templates:
  - name: dsa-problem
    body: "` + version + ` dsa body"
  - name: theory-questions
    body: "` + version + ` theory body"
  - name: machine-coding-task
    body: "` + version + ` mc body"
  - name: system-design-problem
    body: "` + version + ` sd body"
  - name: mock-interview-script
    body: "` + version + ` mock body"
  - name: round-evaluation
    body: "` + version + ` eval body"
`)
}

func testSelector(pinned string) *Selector {
	store := NewStoreFS(fstest.MapFS{
		"v1.yaml": {Data: selectorPack("v1")},
		"v2.yaml": {Data: selectorPack("v2")},
	})
	return NewSelector(store, pinned)
}

func TestSelect_KindMapping(t *testing.T) {
	tests := []struct {
		kind problem.Kind
		name string
	}{
		{problem.KindDSA, "dsa-problem"},
		{problem.KindTheory, "theory-questions"},
		{problem.KindMachineCoding, "machine-coding-task"},
		{problem.KindSystemDesign, "system-design-problem"},
		{problem.KindMockInterview, "mock-interview-script"},
		{problem.KindEvaluation, "round-evaluation"},
	}

	sel := testSelector("")
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, tmpl, err := sel.Select(tt.kind, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("got template %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestSelect_DefaultsToLatest(t *testing.T) {
	sel := testSelector("")
	version, tmpl, err := sel.Select(problem.KindDSA, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "v2" {
		t.Errorf("got version %q, want v2", version)
	}
	if tmpl.Version != "v2" {
		t.Errorf("template from wrong pack: %q", tmpl.Version)
	}
}

func TestSelect_PinnedVersion(t *testing.T) {
	sel := testSelector("v1")
	version, _, err := sel.Select(problem.KindDSA, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "v1" {
		t.Errorf("got version %q, want pinned v1", version)
	}
}

func TestSelect_ExplicitOverridesPinned(t *testing.T) {
	sel := testSelector("v1")
	version, _, err := sel.Select(problem.KindDSA, "v2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != "v2" {
		t.Errorf("got version %q, want explicit v2", version)
	}
}

func TestSelect_UnknownKind(t *testing.T) {
	sel := testSelector("")
	_, _, err := sel.Select(problem.Kind("karaoke"), "")
	var unknown *UnknownKindError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownKindError, got %v", err)
	}
}

func TestSelect_UnknownVersion(t *testing.T) {
	sel := testSelector("")
	_, _, err := sel.Select(problem.KindDSA, "v99")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
