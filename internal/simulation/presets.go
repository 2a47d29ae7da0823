package simulation

import (
	"strings"

	"github.com/frontendschool-official/interview-engine/internal/prompt"
)

// hardDefaults is the bottom variable layer for every prompt render.
var hardDefaults = prompt.Variables{
	"company":        "a leading product company",
	"companyContext": "",
	"role":           "Software Engineer",
	"level":          "mid",
	"difficulty":     "medium",
	"focusArea":      "general engineering",
	"technologies":   "JavaScript, TypeScript, React",
	"includeHints":   true,
	"priorProblems":  "None",
}

// companyPresets layer company-specific framing over the defaults.
var companyPresets = map[string]prompt.Variables{
	"bigtech": {
		"companyContext": "The company runs planet-scale consumer products; interviewers calibrate against a high bar for efficiency and edge-case rigor.",
		"includeHints":   false,
	},
	"seedling": {
		"companyContext": "The company is a 12-person seed-stage startup; interviewers value pragmatic shipping over theoretical completeness.",
		"technologies":   "TypeScript, Node.js, React, PostgreSQL",
	},
	"northwind": {
		"companyContext": "The company builds B2B dashboards; interviews emphasize fundamentals and maintainable UI code.",
	},
}

// levelDifficulty maps candidate level to default problem difficulty.
var levelDifficulty = map[string]string{
	"junior": "easy",
	"mid":    "medium",
	"senior": "hard",
	"staff":  "hard",
}

// Variables builds the layered variable map for one round of a simulation:
// hard defaults, then the company preset, then simulation/round specifics.
// Caller overrides layer on top of the result.
func Variables(sim *Simulation, round *Round) prompt.Variables {
	specific := prompt.Variables{
		"company":   sim.Company,
		"role":      sim.Role,
		"level":     sim.Level,
		"roundName": round.Name,
	}
	if d, ok := levelDifficulty[sim.Level]; ok {
		specific["difficulty"] = d
	}
	if len(round.FocusAreas) > 0 {
		specific["focusArea"] = strings.Join(round.FocusAreas, ", ")
	}

	preset := companyPresets[strings.ToLower(sim.Company)]
	return prompt.Layer(hardDefaults, preset, specific)
}
