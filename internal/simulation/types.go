// Package simulation defines the interview simulation catalog: which
// companies can be simulated, the rounds each simulation runs, and the
// per-user progress aggregate across rounds.
package simulation

import "time"

// Status is the lifecycle state of a simulation attempt.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Round is one stage of a simulation.
type Round struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"` // display grouping: screening, coding, design, behavioral
	Duration   string   `json:"duration"` // human range, e.g. "45-60 minutes"
	FocusAreas []string `json:"focusAreas"`
}

// Simulation is an ordered multi-round interview for a target company/role.
type Simulation struct {
	ID          string  `json:"id"`
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Rounds      []Round `json:"rounds"`
}

// Progress tracks a user's advancement through one simulation. It is
// mutated whenever a round session completes.
type Progress struct {
	UserID          string    `json:"userId"`
	SimulationID    string    `json:"simulationId"`
	CompletedRounds []int     `json:"completedRounds"`
	Status          Status    `json:"status"`
	StartedAt       time.Time `json:"startedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MarkCompleted records a completed round index (idempotently) and flips
// the status when every round is done.
func (p *Progress) MarkCompleted(roundIndex, totalRounds int) {
	for _, idx := range p.CompletedRounds {
		if idx == roundIndex {
			p.touch(totalRounds)
			return
		}
	}
	p.CompletedRounds = append(p.CompletedRounds, roundIndex)
	p.touch(totalRounds)
}

func (p *Progress) touch(totalRounds int) {
	p.UpdatedAt = time.Now().UTC()
	if len(p.CompletedRounds) >= totalRounds {
		p.Status = StatusCompleted
	}
}
