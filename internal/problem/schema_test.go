package problem

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validDSAJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Two Sum",
		"type": "dsa",
		"difficulty": "easy",
		"estimatedTime": 20,
		"description": "Find indices of two numbers adding to target.",
		"examples": [{"input": "nums=[2,7], target=9", "output": "[0,1]"}]
	}`)
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(KindDSA, validDSAJSON()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_IDOptional(t *testing.T) {
	// No id: the generation client assigns one after validation.
	if err := Validate(KindDSA, validDSAJSON()); err != nil {
		t.Fatalf("id must be optional: %v", err)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "Two Sum",
		"type": "dsa",
		"difficulty": "easy",
		"estimatedTime": 20,
		"examples": [{"input": "a", "output": "b"}]
	}`)

	err := Validate(KindDSA, raw)
	var viol *SchemaViolationError
	if !errors.As(err, &viol) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	if viol.Kind != KindDSA {
		t.Errorf("violation kind = %q, want dsa", viol.Kind)
	}
}

func TestValidate_WrongDiscriminator(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "Two Sum",
		"type": "theory",
		"difficulty": "easy",
		"estimatedTime": 20,
		"description": "d",
		"examples": [{"input": "a", "output": "b"}]
	}`)

	err := Validate(KindDSA, raw)
	var viol *SchemaViolationError
	if !errors.As(err, &viol) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
}

func TestValidate_BadDifficulty(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "t",
		"type": "theory",
		"difficulty": "impossible",
		"estimatedTime": 10,
		"question": "q",
		"expectedTopics": ["a"]
	}`)

	err := Validate(KindTheory, raw)
	var viol *SchemaViolationError
	if !errors.As(err, &viol) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
	found := false
	for _, f := range viol.Fields {
		if strings.Contains(f, "difficulty") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected difficulty among violating fields, got %v", viol.Fields)
	}
}

func TestValidate_AdditionalPropertiesRejected(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "t",
		"type": "theory",
		"difficulty": "easy",
		"estimatedTime": 10,
		"question": "q",
		"expectedTopics": ["a"],
		"surprise": true
	}`)

	err := Validate(KindTheory, raw)
	var viol *SchemaViolationError
	if !errors.As(err, &viol) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
}

func TestValidate_ZeroEstimatedTime(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "t",
		"type": "theory",
		"difficulty": "easy",
		"estimatedTime": 0,
		"question": "q",
		"expectedTopics": ["a"]
	}`)

	err := Validate(KindTheory, raw)
	var viol *SchemaViolationError
	if !errors.As(err, &viol) {
		t.Fatalf("expected SchemaViolationError, got %v", err)
	}
}

func TestValidate_EvaluationHasNoSchema(t *testing.T) {
	err := Validate(KindEvaluation, json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected error: evaluation never produces a problem record")
	}
	var viol *SchemaViolationError
	if errors.As(err, &viol) {
		t.Fatal("missing schema is a configuration error, not a payload violation")
	}
}

func TestValidate_AllSlotKindsHaveSchemas(t *testing.T) {
	for _, kind := range SlotKinds() {
		if _, ok := schemaDefs[kind]; !ok {
			t.Errorf("kind %q has no schema definition", kind)
		}
	}
}
