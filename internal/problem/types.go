package problem

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a logical problem kind. The first five kinds map to
// concrete Record variants; KindEvaluation exists only as a prompt template
// kind (scoring/feedback prompts) and never appears as a session slot.
type Kind string

const (
	KindDSA           Kind = "dsa"
	KindTheory        Kind = "theory"
	KindMachineCoding Kind = "machine-coding"
	KindSystemDesign  Kind = "system-design"
	KindMockInterview Kind = "mock-interview"
	KindEvaluation    Kind = "evaluation"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDSA, KindTheory, KindMachineCoding, KindSystemDesign, KindMockInterview, KindEvaluation:
		return true
	}
	return false
}

// SlotKinds returns the kinds that can occupy a session slot, in a stable order.
func SlotKinds() []Kind {
	return []Kind{KindDSA, KindTheory, KindMachineCoding, KindSystemDesign, KindMockInterview}
}

// Difficulty is the declared difficulty of a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Core holds the fields every problem variant carries.
type Core struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Type          Kind       `json:"type"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime int        `json:"estimatedTime"` // minutes
}

// RecordID returns the problem's identifier.
func (c *Core) RecordID() string { return c.ID }

// RecordKind returns the discriminator kind.
func (c *Core) RecordKind() Kind { return c.Type }

// RecordTitle returns the display title.
func (c *Core) RecordTitle() string { return c.Title }

// SetID assigns the problem's identifier. Used by the generation client to
// fill an ID when the model did not supply one.
func (c *Core) SetID(id string) { c.ID = id }

// Record is the closed set of problem variants. A Record that reaches a
// consumer has passed schema validation for its kind; nothing constructs one
// from untrusted data except UnmarshalRecord.
type Record interface {
	RecordID() string
	RecordKind() Kind
	RecordTitle() string
	SetID(id string)
}

// Example is a worked input/output pair on a DSA problem.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// DSAProblem is an algorithmic coding problem.
type DSAProblem struct {
	Core
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
	Constraints []string  `json:"constraints,omitempty"`
	Hints       []string  `json:"hints,omitempty"`
}

// MachineCodingProblem is a build-a-working-component task.
type MachineCodingProblem struct {
	Core
	Description        string   `json:"description"`
	Requirements       []string `json:"requirements"`
	AcceptanceCriteria []string `json:"acceptanceCriteria,omitempty"`
	TechHints          []string `json:"techHints,omitempty"`
}

// SystemDesignProblem is an architecture design exercise.
type SystemDesignProblem struct {
	Core
	Description               string   `json:"description"`
	FunctionalRequirements    []string `json:"functionalRequirements"`
	NonFunctionalRequirements []string `json:"nonFunctionalRequirements,omitempty"`
	Scale                     string   `json:"scale"`
}

// TheoryProblem is a conceptual question.
type TheoryProblem struct {
	Core
	Question       string   `json:"question"`
	ExpectedTopics []string `json:"expectedTopics"`
	FollowUps      []string `json:"followUps,omitempty"`
}

// MockInterviewProblem scripts a conversational interview scenario.
type MockInterviewProblem struct {
	Core
	Scenario           string   `json:"scenario"`
	InterviewerPersona string   `json:"interviewerPersona"`
	Stages             []string `json:"stages"`
}

// UnmarshalRecord decodes JSON into the concrete variant named by its "type"
// discriminator. It is the only path from raw bytes to a Record; callers are
// expected to have run Validate on the same bytes first.
func UnmarshalRecord(data []byte) (Record, error) {
	var envelope struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode problem envelope: %w", err)
	}

	var rec Record
	switch envelope.Type {
	case KindDSA:
		rec = &DSAProblem{}
	case KindTheory:
		rec = &TheoryProblem{}
	case KindMachineCoding:
		rec = &MachineCodingProblem{}
	case KindSystemDesign:
		rec = &SystemDesignProblem{}
	case KindMockInterview:
		rec = &MockInterviewProblem{}
	default:
		return nil, fmt.Errorf("unknown problem type %q", envelope.Type)
	}

	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode %s problem: %w", envelope.Type, err)
	}
	return rec, nil
}
