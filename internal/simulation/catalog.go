package simulation

import (
	"fmt"
	"sort"
)

// catalog holds the built-in simulations indexed by ID. Read-only after
// package init.
var catalog = buildCatalog(seedSimulations)

func buildCatalog(sims []Simulation) map[string]*Simulation {
	m := make(map[string]*Simulation, len(sims))
	for i := range sims {
		m[sims[i].ID] = &sims[i]
	}
	return m
}

// NotFoundError reports an unknown simulation ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("simulation %q not found", e.ID)
}

// Get returns the simulation with the given ID.
func Get(id string) (*Simulation, error) {
	sim, ok := catalog[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return sim, nil
}

// List returns all simulations sorted by ID.
func List() []*Simulation {
	out := make([]*Simulation, 0, len(catalog))
	for _, sim := range catalog {
		out = append(out, sim)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var seedSimulations = []Simulation{
	{
		ID:          "faang-frontend-senior",
		Company:     "BigTech",
		Role:        "Frontend Engineer",
		Level:       "senior",
		Description: "Full senior frontend loop modeled on large-company hiring: screen, machine coding, design, behavioral.",
		Rounds: []Round{
			{Name: "Phone Screen", Type: "screening", Duration: "45-60 minutes", FocusAreas: []string{"javascript fundamentals", "dsa basics"}},
			{Name: "Machine Coding", Type: "coding", Duration: "90 minutes", FocusAreas: []string{"component architecture", "state management"}},
			{Name: "Frontend System Design", Type: "design", Duration: "45-60 minutes", FocusAreas: []string{"system design", "performance"}},
			{Name: "Behavioral", Type: "behavioral", Duration: "30-45 minutes", FocusAreas: []string{"leadership", "collaboration"}},
		},
	},
	{
		ID:          "startup-fullstack-mid",
		Company:     "Seedling",
		Role:        "Fullstack Engineer",
		Level:       "mid",
		Description: "Lean startup loop: one practical coding round, one architecture conversation.",
		Rounds: []Round{
			{Name: "Practical Coding", Type: "coding", Duration: "1-2 hours", FocusAreas: []string{"machine coding", "api integration"}},
			{Name: "Architecture Chat", Type: "design", Duration: "45 minutes", FocusAreas: []string{"system design", "tradeoffs"}},
		},
	},
	{
		ID:          "product-frontend-junior",
		Company:     "Northwind",
		Role:        "Frontend Engineer",
		Level:       "junior",
		Description: "Entry-level loop weighted toward fundamentals and a guided pairing session.",
		Rounds: []Round{
			{Name: "Fundamentals Screen", Type: "screening", Duration: "30-45 minutes", FocusAreas: []string{"html css", "javascript fundamentals"}},
			{Name: "DSA Round", Type: "coding", Duration: "45-60 minutes", FocusAreas: []string{"dsa", "problem solving"}},
			{Name: "Pairing Interview", Type: "behavioral", Duration: "60 minutes", FocusAreas: []string{"mock interview", "communication"}},
		},
	},
}
