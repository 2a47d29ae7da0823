// Package progress computes dashboard statistics from persisted round
// sessions. It is a pure downstream consumer: it never mutates sessions,
// only reads and folds them.
package progress

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/frontendschool-official/interview-engine/internal/session"
	"github.com/frontendschool-official/interview-engine/internal/store"
)

// WeekStats buckets completed rounds by ISO week.
type WeekStats struct {
	Year         int     `json:"year"`
	Week         int     `json:"week"`
	Completed    int     `json:"completed"`
	AverageScore float64 `json:"averageScore"`
}

// Overview is the dashboard aggregate for one user.
type Overview struct {
	TotalRounds     int         `json:"totalRounds"`
	ActiveRounds    int         `json:"activeRounds"`
	CompletedRounds int         `json:"completedRounds"`
	ProblemsServed  int         `json:"problemsServed"`
	AverageScore    float64     `json:"averageScore"`
	Simulations     []string    `json:"simulations"`
	Weekly          []WeekStats `json:"weekly"`
}

// Aggregator folds round session documents into an Overview.
type Aggregator struct {
	store store.Store
}

func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// Overview computes stats across all of the user's round sessions.
// Average score covers completed rounds that carry a score.
func (a *Aggregator) Overview(ctx context.Context, userID string) (*Overview, error) {
	docs, err := a.store.Query(ctx, store.CollectionSessions, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}

	ov := &Overview{Weekly: []WeekStats{}, Simulations: []string{}}
	seen := map[string]bool{}
	weeks := map[[2]int]*weekAcc{}
	var scoreSum float64
	var scored int

	for _, raw := range docs {
		var sess session.RoundSession
		if err := json.Unmarshal(raw, &sess); err != nil {
			return nil, err
		}
		ov.TotalRounds++
		ov.ProblemsServed += len(sess.Problems)
		if !seen[sess.SimulationID] {
			seen[sess.SimulationID] = true
			ov.Simulations = append(ov.Simulations, sess.SimulationID)
		}

		switch sess.Status {
		case session.StatusActive:
			ov.ActiveRounds++
		case session.StatusCompleted:
			ov.CompletedRounds++
			if sess.TotalScore != nil {
				scoreSum += *sess.TotalScore
				scored++
			}
			if sess.CompletedAt != nil {
				acc := weekAccFor(weeks, *sess.CompletedAt)
				acc.completed++
				if sess.TotalScore != nil {
					acc.scoreSum += *sess.TotalScore
					acc.scored++
				}
			}
		}
	}

	if scored > 0 {
		ov.AverageScore = scoreSum / float64(scored)
	}
	ov.Weekly = flattenWeeks(weeks)
	sort.Strings(ov.Simulations)
	return ov, nil
}

type weekAcc struct {
	completed int
	scoreSum  float64
	scored    int
}

func weekAccFor(weeks map[[2]int]*weekAcc, t time.Time) *weekAcc {
	year, week := t.UTC().ISOWeek()
	k := [2]int{year, week}
	if acc, ok := weeks[k]; ok {
		return acc
	}
	acc := &weekAcc{}
	weeks[k] = acc
	return acc
}

func flattenWeeks(weeks map[[2]int]*weekAcc) []WeekStats {
	out := make([]WeekStats, 0, len(weeks))
	for k, acc := range weeks {
		ws := WeekStats{Year: k[0], Week: k[1], Completed: acc.completed}
		if acc.scored > 0 {
			ws.AverageScore = acc.scoreSum / float64(acc.scored)
		}
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}
