package prompt

import "github.com/frontendschool-official/interview-engine/internal/problem"

// templateNames maps each logical problem kind to its template name. The
// mapping is 1:1 and identical across pack versions.
var templateNames = map[problem.Kind]string{
	problem.KindDSA:           "dsa-problem",
	problem.KindTheory:        "theory-questions",
	problem.KindMachineCoding: "machine-coding-task",
	problem.KindSystemDesign:  "system-design-problem",
	problem.KindMockInterview: "mock-interview-script",
	problem.KindEvaluation:    "round-evaluation",
}

// Selector resolves a (kind, optional version) pair to a concrete template.
type Selector struct {
	store  *Store
	pinned string // configured version override; empty means latest
}

// NewSelector creates a Selector over the given store. A non-empty pinned
// version is used whenever the caller does not pass an explicit one.
func NewSelector(store *Store, pinned string) *Selector {
	return &Selector{store: store, pinned: pinned}
}

// Select resolves the template for a kind. explicitVersion, when non-empty,
// overrides both the pinned and the latest version.
func (s *Selector) Select(kind problem.Kind, explicitVersion string) (string, *Template, error) {
	name, ok := templateNames[kind]
	if !ok {
		return "", nil, &UnknownKindError{Kind: string(kind)}
	}

	version := explicitVersion
	if version == "" {
		version = s.pinned
	}
	if version == "" {
		latest, err := s.store.Latest()
		if err != nil {
			return "", nil, err
		}
		version = latest
	}

	tmpl, err := s.store.GetTemplate(version, name)
	if err != nil {
		return "", nil, err
	}
	return version, tmpl, nil
}
