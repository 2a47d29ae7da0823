// Package session owns the round session lifecycle: the resumable,
// idempotent record of a user's attempt at one interview round.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/frontendschool-official/interview-engine/internal/problem"
)

// Status is the lifecycle state of a round session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// RoundSession is the persisted record of one (user, simulation, round)
// attempt. It is written once as a whole document at creation and mutated
// only by slot-completion and round-completion handlers.
type RoundSession struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"userId"`
	SimulationID        string           `json:"simulationId"`
	RoundIndex          int              `json:"roundIndex"`
	RoundName           string           `json:"roundName"`
	RoundType           string           `json:"roundType"`
	Problems            []problem.Record `json:"problems"`
	CurrentProblemIndex int              `json:"currentProblemIndex"`
	Status              Status           `json:"status"`
	StartedAt           time.Time        `json:"startedAt"`
	CompletedAt         *time.Time       `json:"completedAt,omitempty"`
	TotalScore          *float64         `json:"totalScore,omitempty"`
	Feedback            string           `json:"feedback,omitempty"`
}

// Key builds the document key for a (user, simulation, round) triple.
func Key(userID, simulationID string, roundIndex int) string {
	return fmt.Sprintf("%s|%s|%d", userID, simulationID, roundIndex)
}

// ProgressKey builds the document key for a user's simulation progress.
func ProgressKey(userID, simulationID string) string {
	return fmt.Sprintf("%s|%s", userID, simulationID)
}

// roundSessionDoc mirrors RoundSession with problems left raw so the
// discriminated decode can run per slot.
type roundSessionDoc struct {
	ID                  string            `json:"id"`
	UserID              string            `json:"userId"`
	SimulationID        string            `json:"simulationId"`
	RoundIndex          int               `json:"roundIndex"`
	RoundName           string            `json:"roundName"`
	RoundType           string            `json:"roundType"`
	Problems            []json.RawMessage `json:"problems"`
	CurrentProblemIndex int               `json:"currentProblemIndex"`
	Status              Status            `json:"status"`
	StartedAt           time.Time         `json:"startedAt"`
	CompletedAt         *time.Time        `json:"completedAt,omitempty"`
	TotalScore          *float64          `json:"totalScore,omitempty"`
	Feedback            string            `json:"feedback,omitempty"`
}

// UnmarshalJSON decodes each problem slot through the discriminated
// problem decoder. Persisted sessions only ever contain validated records,
// so a decode failure here means a corrupted document.
func (s *RoundSession) UnmarshalJSON(data []byte) error {
	var doc roundSessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	problems := make([]problem.Record, len(doc.Problems))
	for i, raw := range doc.Problems {
		rec, err := problem.UnmarshalRecord(raw)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		problems[i] = rec
	}

	*s = RoundSession{
		ID:                  doc.ID,
		UserID:              doc.UserID,
		SimulationID:        doc.SimulationID,
		RoundIndex:          doc.RoundIndex,
		RoundName:           doc.RoundName,
		RoundType:           doc.RoundType,
		Problems:            problems,
		CurrentProblemIndex: doc.CurrentProblemIndex,
		Status:              doc.Status,
		StartedAt:           doc.StartedAt,
		CompletedAt:         doc.CompletedAt,
		TotalScore:          doc.TotalScore,
		Feedback:            doc.Feedback,
	}
	return nil
}
