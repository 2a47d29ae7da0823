package progress

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/frontendschool-official/interview-engine/internal/problem"
	"github.com/frontendschool-official/interview-engine/internal/session"
	"github.com/frontendschool-official/interview-engine/internal/store"
)

func seedSession(t *testing.T, st store.Store, sess *session.RoundSession) {
	t.Helper()
	key := session.Key(sess.UserID, sess.SimulationID, sess.RoundIndex)
	if err := st.Set(context.Background(), store.CollectionSessions, key, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func completedSession(userID, simID string, roundIndex int, score float64, at time.Time) *session.RoundSession {
	problems := make([]problem.Record, 2)
	for i := range problems {
		problems[i] = problem.Fallback(problem.KindTheory, i)
	}
	return &session.RoundSession{
		ID:           fmt.Sprintf("%s-%s-%d", userID, simID, roundIndex),
		UserID:       userID,
		SimulationID: simID,
		RoundIndex:   roundIndex,
		RoundName:    "Round",
		Problems:     problems,
		Status:       session.StatusCompleted,
		StartedAt:    at.Add(-time.Hour),
		CompletedAt:  &at,
		TotalScore:   &score,
	}
}

func activeSession(userID, simID string, roundIndex int) *session.RoundSession {
	return &session.RoundSession{
		ID:           fmt.Sprintf("%s-%s-%d", userID, simID, roundIndex),
		UserID:       userID,
		SimulationID: simID,
		RoundIndex:   roundIndex,
		RoundName:    "Round",
		Problems:     []problem.Record{problem.Fallback(problem.KindDSA, 0)},
		Status:       session.StatusActive,
		StartedAt:    time.Now().UTC(),
	}
}

func TestOverview_Empty(t *testing.T) {
	agg := NewAggregator(store.NewMemoryStore())

	ov, err := agg.Overview(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.TotalRounds != 0 || ov.AverageScore != 0 {
		t.Errorf("expected zero overview, got %+v", ov)
	}
	if ov.Simulations == nil || ov.Weekly == nil {
		t.Error("slices must be non-nil for JSON encoding")
	}
}

func TestOverview_Counts(t *testing.T) {
	st := store.NewMemoryStore()
	when := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedSession(t, st, completedSession("u1", "sim-a", 0, 80, when))
	seedSession(t, st, completedSession("u1", "sim-b", 0, 60, when))
	seedSession(t, st, activeSession("u1", "sim-a", 1))
	// Another user's sessions must not leak in.
	seedSession(t, st, completedSession("u2", "sim-a", 0, 10, when))

	ov, err := NewAggregator(st).Overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if ov.TotalRounds != 3 {
		t.Errorf("TotalRounds = %d, want 3", ov.TotalRounds)
	}
	if ov.ActiveRounds != 1 {
		t.Errorf("ActiveRounds = %d, want 1", ov.ActiveRounds)
	}
	if ov.CompletedRounds != 2 {
		t.Errorf("CompletedRounds = %d, want 2", ov.CompletedRounds)
	}
	if ov.ProblemsServed != 5 {
		t.Errorf("ProblemsServed = %d, want 5", ov.ProblemsServed)
	}
	if math.Abs(ov.AverageScore-70) > 1e-9 {
		t.Errorf("AverageScore = %v, want 70", ov.AverageScore)
	}
	want := []string{"sim-a", "sim-b"}
	if len(ov.Simulations) != len(want) {
		t.Fatalf("Simulations = %v", ov.Simulations)
	}
	for i, id := range want {
		if ov.Simulations[i] != id {
			t.Errorf("Simulations[%d] = %q, want %q", i, ov.Simulations[i], id)
		}
	}
}

func TestOverview_UnscoredCompletionExcludedFromAverage(t *testing.T) {
	st := store.NewMemoryStore()
	when := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedSession(t, st, completedSession("u1", "sim-a", 0, 90, when))
	unscored := completedSession("u1", "sim-a", 1, 0, when)
	unscored.TotalScore = nil
	seedSession(t, st, unscored)

	ov, err := NewAggregator(st).Overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.CompletedRounds != 2 {
		t.Errorf("CompletedRounds = %d, want 2", ov.CompletedRounds)
	}
	if ov.AverageScore != 90 {
		t.Errorf("AverageScore = %v, want 90", ov.AverageScore)
	}
}

func TestOverview_WeeklyBuckets(t *testing.T) {
	st := store.NewMemoryStore()
	// 2026-01-01 is a Thursday in ISO week 1; 2025-12-29 is the Monday of
	// that same week, so both land in 2026-W01.
	w1a := time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)
	w1b := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	w6 := time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC)

	seedSession(t, st, completedSession("u1", "sim-a", 0, 50, w1a))
	seedSession(t, st, completedSession("u1", "sim-a", 1, 70, w1b))
	seedSession(t, st, completedSession("u1", "sim-a", 2, 100, w6))

	ov, err := NewAggregator(st).Overview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if len(ov.Weekly) != 2 {
		t.Fatalf("Weekly = %+v, want 2 buckets", ov.Weekly)
	}
	first := ov.Weekly[0]
	if first.Year != 2026 || first.Week != 1 {
		t.Errorf("first bucket %+v, want 2026-W01", first)
	}
	if first.Completed != 2 || first.AverageScore != 60 {
		t.Errorf("first bucket %+v, want 2 completed avg 60", first)
	}
	second := ov.Weekly[1]
	if second.Year != 2026 || second.Week != 6 {
		t.Errorf("second bucket %+v, want 2026-W06", second)
	}
	if second.Completed != 1 || second.AverageScore != 100 {
		t.Errorf("second bucket %+v", second)
	}
}
