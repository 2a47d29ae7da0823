package simulation

import (
	"errors"
	"testing"
)

func TestGet(t *testing.T) {
	sim, err := Get("faang-frontend-senior")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sim.Company != "BigTech" || sim.Level != "senior" {
		t.Errorf("unexpected simulation: %+v", sim)
	}
	if len(sim.Rounds) != 4 {
		t.Errorf("got %d rounds, want 4", len(sim.Rounds))
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("does-not-exist")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nf.ID != "does-not-exist" {
		t.Errorf("NotFoundError.ID = %q", nf.ID)
	}
}

func TestGetReturnsSameInstance(t *testing.T) {
	a, err := Get("startup-fullstack-mid")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Get("startup-fullstack-mid")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get returned distinct copies for the same ID")
	}
}

func TestListSortedByID(t *testing.T) {
	sims := List()
	if len(sims) < 3 {
		t.Fatalf("got %d simulations, want at least 3", len(sims))
	}
	for i := 1; i < len(sims); i++ {
		if sims[i-1].ID >= sims[i].ID {
			t.Errorf("List not sorted: %q before %q", sims[i-1].ID, sims[i].ID)
		}
	}
}

func TestCatalogRoundsWellFormed(t *testing.T) {
	for _, sim := range List() {
		if sim.ID == "" || sim.Company == "" || sim.Role == "" {
			t.Errorf("simulation %+v missing identity fields", sim)
		}
		if len(sim.Rounds) == 0 {
			t.Errorf("simulation %q has no rounds", sim.ID)
		}
		for i, r := range sim.Rounds {
			if r.Name == "" || r.Duration == "" {
				t.Errorf("%s round %d missing name or duration", sim.ID, i)
			}
			if len(r.FocusAreas) == 0 {
				t.Errorf("%s round %d has no focus areas", sim.ID, i)
			}
		}
	}
}

func TestVariablesLayering(t *testing.T) {
	sim, err := Get("faang-frontend-senior")
	if err != nil {
		t.Fatal(err)
	}
	vars := Variables(sim, &sim.Rounds[0])

	if vars["company"] != "BigTech" {
		t.Errorf("company = %v", vars["company"])
	}
	if vars["role"] != "Frontend Engineer" {
		t.Errorf("role = %v", vars["role"])
	}
	// Senior maps to hard difficulty.
	if vars["difficulty"] != "hard" {
		t.Errorf("difficulty = %v", vars["difficulty"])
	}
	// The BigTech preset turns hints off.
	if vars["includeHints"] != false {
		t.Errorf("includeHints = %v", vars["includeHints"])
	}
	if vars["focusArea"] != "javascript fundamentals, dsa basics" {
		t.Errorf("focusArea = %v", vars["focusArea"])
	}
	if vars["roundName"] != "Phone Screen" {
		t.Errorf("roundName = %v", vars["roundName"])
	}
}

func TestVariablesDefaultsSurvive(t *testing.T) {
	sim, err := Get("product-frontend-junior")
	if err != nil {
		t.Fatal(err)
	}
	vars := Variables(sim, &sim.Rounds[0])

	// Northwind has no technologies override, so the default holds.
	if vars["technologies"] != "JavaScript, TypeScript, React" {
		t.Errorf("technologies = %v", vars["technologies"])
	}
	if vars["includeHints"] != true {
		t.Errorf("includeHints = %v", vars["includeHints"])
	}
	if vars["difficulty"] != "easy" {
		t.Errorf("difficulty = %v", vars["difficulty"])
	}
	if vars["companyContext"] == "" {
		t.Error("expected the Northwind company context")
	}
}

func TestVariablesPresetLookupIsCaseInsensitive(t *testing.T) {
	sim := &Simulation{Company: "SEEDLING", Role: "Backend Engineer", Level: "mid"}
	round := &Round{Name: "Coding", FocusAreas: []string{"api design"}}
	vars := Variables(sim, round)

	if vars["technologies"] != "TypeScript, Node.js, React, PostgreSQL" {
		t.Errorf("technologies = %v", vars["technologies"])
	}
}

func TestMarkCompleted(t *testing.T) {
	p := &Progress{Status: StatusActive, CompletedRounds: []int{}}

	p.MarkCompleted(1, 3)
	if p.Status != StatusActive {
		t.Errorf("status flipped early: %v", p.Status)
	}
	p.MarkCompleted(1, 3)
	if len(p.CompletedRounds) != 1 {
		t.Errorf("duplicate round recorded: %v", p.CompletedRounds)
	}
	p.MarkCompleted(0, 3)
	p.MarkCompleted(2, 3)
	if p.Status != StatusCompleted {
		t.Errorf("status = %v after all rounds", p.Status)
	}
	if p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}
