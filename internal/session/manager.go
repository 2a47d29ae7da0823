package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/frontendschool-official/interview-engine/internal/problem"
	"github.com/frontendschool-official/interview-engine/internal/problemgen"
	"github.com/frontendschool-official/interview-engine/internal/prompt"
	"github.com/frontendschool-official/interview-engine/internal/simulation"
	"github.com/frontendschool-official/interview-engine/internal/store"
)

// DefaultMaxParallel caps concurrent slot generation within one round.
const DefaultMaxParallel = 4

// Manager drives the round session state machine. All writes go through
// the document store as whole-document operations; creation is serialized
// per key by an in-process lock plus the store's conditional write.
type Manager struct {
	store       store.Store
	controller  *problemgen.Controller
	logger      *slog.Logger
	locks       *keyMutex
	maxParallel int
}

// NewManager creates a Manager. maxParallel <= 0 selects the default cap.
func NewManager(st store.Store, controller *problemgen.Controller, logger *slog.Logger, maxParallel int) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	return &Manager{
		store:       st,
		controller:  controller,
		logger:      logger,
		locks:       newKeyMutex(),
		maxParallel: maxParallel,
	}
}

// StartRound returns the existing session for the key, or generates and
// persists a new one. Idempotent: repeated or concurrent calls with the
// same key converge on one persisted session.
func (m *Manager) StartRound(ctx context.Context, userID, simulationID string, roundIndex int) (*RoundSession, error) {
	sim, round, err := resolveRound(simulationID, roundIndex)
	if err != nil {
		return nil, err
	}

	key := Key(userID, simulationID, roundIndex)
	unlock := m.locks.Lock(key)
	defer unlock()

	if existing, ok, err := m.load(ctx, key); err != nil {
		return nil, err
	} else if ok {
		m.logger.Debug("resuming existing round session", "key", key, "session", existing.ID)
		return existing, nil
	}

	return m.createSession(ctx, key, userID, sim, round, roundIndex)
}

// RestartRound deletes any session for the key and generates a fresh one.
func (m *Manager) RestartRound(ctx context.Context, userID, simulationID string, roundIndex int) (*RoundSession, error) {
	sim, round, err := resolveRound(simulationID, roundIndex)
	if err != nil {
		return nil, err
	}

	key := Key(userID, simulationID, roundIndex)
	unlock := m.locks.Lock(key)
	defer unlock()

	if err := m.store.Delete(ctx, store.CollectionSessions, key); err != nil {
		return nil, &PersistenceError{Op: "restart round", Err: err}
	}

	return m.createSession(ctx, key, userID, sim, round, roundIndex)
}

// CompleteRound marks the session completed with its score and feedback,
// and folds the round into the simulation's progress aggregate.
func (m *Manager) CompleteRound(ctx context.Context, userID, simulationID string, roundIndex int, score float64, feedback string) error {
	sim, _, err := resolveRound(simulationID, roundIndex)
	if err != nil {
		return err
	}

	key := Key(userID, simulationID, roundIndex)
	unlock := m.locks.Lock(key)
	defer unlock()

	sess, ok, err := m.load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}

	now := time.Now().UTC()
	sess.Status = StatusCompleted
	sess.CompletedAt = &now
	sess.TotalScore = &score
	sess.Feedback = feedback
	sess.CurrentProblemIndex = len(sess.Problems)

	if err := m.store.Set(ctx, store.CollectionSessions, key, sess); err != nil {
		return &PersistenceError{Op: "complete round", Err: err}
	}

	return m.updateProgress(ctx, userID, sim, roundIndex)
}

// GetRoundSession is a pure read. Returns ErrSessionNotFound when absent.
func (m *Manager) GetRoundSession(ctx context.Context, userID, simulationID string, roundIndex int) (*RoundSession, error) {
	sess, ok, err := m.load(ctx, Key(userID, simulationID, roundIndex))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// GetProgress returns the user's progress aggregate for a simulation, or
// ErrSessionNotFound if the user never started it.
func (m *Manager) GetProgress(ctx context.Context, userID, simulationID string) (*simulation.Progress, error) {
	raw, ok, err := m.store.Get(ctx, store.CollectionProgress, ProgressKey(userID, simulationID))
	if err != nil {
		return nil, &PersistenceError{Op: "get progress", Err: err}
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	var p simulation.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PersistenceError{Op: "decode progress", Err: err}
	}
	return &p, nil
}

func resolveRound(simulationID string, roundIndex int) (*simulation.Simulation, *simulation.Round, error) {
	sim, err := simulation.Get(simulationID)
	if err != nil {
		return nil, nil, err
	}
	if roundIndex < 0 || roundIndex >= len(sim.Rounds) {
		return nil, nil, &RoundNotFoundError{SimulationID: simulationID, RoundIndex: roundIndex}
	}
	return sim, &sim.Rounds[roundIndex], nil
}

func (m *Manager) load(ctx context.Context, key string) (*RoundSession, bool, error) {
	raw, ok, err := m.store.Get(ctx, store.CollectionSessions, key)
	if err != nil {
		return nil, false, &PersistenceError{Op: "load session", Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	var sess RoundSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, false, &PersistenceError{Op: "decode session", Err: err}
	}
	return &sess, true, nil
}

// createSession generates all slots, assembles the session, and commits it
// with a single conditional write. No partial session is ever visible: the
// document appears only once every slot is filled.
func (m *Manager) createSession(ctx context.Context, key, userID string, sim *simulation.Simulation, round *simulation.Round, roundIndex int) (*RoundSession, error) {
	slots := SlotCount(round.Duration)
	kind := KindForRound(round)
	vars := simulation.Variables(sim, round)

	m.logger.Info("generating round session",
		"user", userID,
		"simulation", sim.ID,
		"round", round.Name,
		"slots", slots,
		"kind", kind,
	)

	problems, err := m.generateSlots(ctx, kind, vars, slots)
	if err != nil {
		return nil, err
	}

	sess := &RoundSession{
		ID:                  uuid.NewString(),
		UserID:              userID,
		SimulationID:        sim.ID,
		RoundIndex:          roundIndex,
		RoundName:           round.Name,
		RoundType:           round.Type,
		Problems:            problems,
		CurrentProblemIndex: 0,
		Status:              StatusActive,
		StartedAt:           time.Now().UTC(),
	}

	created, err := m.store.SetIfAbsent(ctx, store.CollectionSessions, key, sess)
	if err != nil {
		return nil, &PersistenceError{Op: "create session", Err: err}
	}
	if !created {
		// Another writer won the race; use the earliest-created session
		// and discard ours.
		existing, ok, err := m.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			m.logger.Debug("discarding duplicate session", "key", key, "kept", existing.ID)
			return existing, nil
		}
		return nil, &PersistenceError{Op: "create session", Err: errSessionVanished}
	}

	if err := m.ensureProgress(ctx, userID, sim.ID); err != nil {
		// Progress is a derived aggregate; session creation already
		// committed, so surface nothing worse than a log line.
		m.logger.Warn("failed to initialize simulation progress", "error", err)
	}

	return sess, nil
}

// generateSlots runs the controller for each slot with bounded
// parallelism. Results land at their slot index regardless of completion
// order.
func (m *Manager) generateSlots(ctx context.Context, kind problem.Kind, vars prompt.Variables, slots int) ([]problem.Record, error) {
	problems := make([]problem.Record, slots)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.maxParallel)
	for i := range problems {
		g.Go(func() error {
			rec, err := m.controller.GenerateWithFallback(gctx, kind, vars, i)
			if err != nil {
				return err
			}
			problems[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only configuration or caller errors escape the controller.
		return nil, err
	}
	return problems, nil
}

func (m *Manager) ensureProgress(ctx context.Context, userID, simulationID string) error {
	now := time.Now().UTC()
	p := &simulation.Progress{
		UserID:          userID,
		SimulationID:    simulationID,
		CompletedRounds: []int{},
		Status:          simulation.StatusActive,
		StartedAt:       now,
		UpdatedAt:       now,
	}
	_, err := m.store.SetIfAbsent(ctx, store.CollectionProgress, ProgressKey(userID, simulationID), p)
	return err
}

func (m *Manager) updateProgress(ctx context.Context, userID string, sim *simulation.Simulation, roundIndex int) error {
	key := ProgressKey(userID, sim.ID)

	var p simulation.Progress
	raw, ok, err := m.store.Get(ctx, store.CollectionProgress, key)
	if err != nil {
		return &PersistenceError{Op: "load progress", Err: err}
	}
	if ok {
		if err := json.Unmarshal(raw, &p); err != nil {
			return &PersistenceError{Op: "decode progress", Err: err}
		}
	} else {
		now := time.Now().UTC()
		p = simulation.Progress{
			UserID:          userID,
			SimulationID:    sim.ID,
			CompletedRounds: []int{},
			Status:          simulation.StatusActive,
			StartedAt:       now,
			UpdatedAt:       now,
		}
	}

	p.MarkCompleted(roundIndex, len(sim.Rounds))

	if err := m.store.Set(ctx, store.CollectionProgress, key, &p); err != nil {
		return &PersistenceError{Op: "update progress", Err: err}
	}
	return nil
}
