package session

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/frontendschool-official/interview-engine/internal/problem"
	"github.com/frontendschool-official/interview-engine/internal/simulation"
)

// slotMinutes is the per-problem time allotment a round is divided into.
const slotMinutes = 15

// durationRe matches "N-M minutes", "N minutes", and the hour variants.
var durationRe = regexp.MustCompile(`(?i)(\d+)\s*(?:-\s*(\d+))?\s*(hours?|hrs?|minutes?|mins?)`)

// SlotCount derives the number of problem slots from a round's duration
// string: the upper bound of the range, in minutes, divided by 15, minimum
// one. A duration that matches nothing yields one slot; that silent
// default is long-standing behavior and callers rely on it.
func SlotCount(duration string) int {
	m := durationRe.FindStringSubmatch(duration)
	if m == nil {
		return 1
	}

	upper, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	if m[2] != "" {
		if hi, err := strconv.Atoi(m[2]); err == nil && hi > upper {
			upper = hi
		}
	}

	minutes := upper
	if strings.HasPrefix(strings.ToLower(m[3]), "h") {
		minutes = upper * 60
	}

	slots := minutes / slotMinutes
	if slots < 1 {
		return 1
	}
	return slots
}

// kindRules pairs a slot kind with the keywords that select it. Checked in
// order; machine-coding precedes system-design so "machine coding" rounds
// don't match the bare "design" keyword, and dsa comes last among the
// specific kinds since "coding" appears in many round names.
var kindRules = []struct {
	kind     problem.Kind
	keywords []string
}{
	{problem.KindMachineCoding, []string{"machine coding", "machine-coding", "component", "widget", "implementation"}},
	{problem.KindSystemDesign, []string{"system design", "system-design", "architecture", "design"}},
	{problem.KindDSA, []string{"dsa", "algorithm", "data structure", "problem solving", "leetcode"}},
}

// KindForRound derives the problem kind for a round by keyword match
// against its name and focus areas, defaulting to theory.
func KindForRound(round *simulation.Round) problem.Kind {
	haystack := strings.ToLower(round.Name + " " + strings.Join(round.FocusAreas, " "))
	for _, rule := range kindRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.kind
			}
		}
	}
	return problem.KindTheory
}
