package session

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned by pure reads when no session exists for
// the key.
var ErrSessionNotFound = errors.New("round session not found")

// errSessionVanished covers the window where a conditional create reports
// a conflict but the conflicting document is gone before re-read.
var errSessionVanished = errors.New("session disappeared between conditional create and read")

// RoundNotFoundError reports a round index outside the simulation's rounds.
type RoundNotFoundError struct {
	SimulationID string
	RoundIndex   int
}

func (e *RoundNotFoundError) Error() string {
	return fmt.Sprintf("simulation %q has no round %d", e.SimulationID, e.RoundIndex)
}

// PersistenceError wraps a document store failure. Safe to retry the whole
// operation: creation is guarded by an existence check, so a retry after a
// failed write cannot duplicate a session.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
