package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaViolationError reports a problem payload that parsed as JSON but
// failed its kind's schema. Fields lists every violating instance location.
type SchemaViolationError struct {
	Kind   Kind
	Fields []string
	Err    error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s problem violates schema at [%s]: %v", e.Kind, strings.Join(e.Fields, ", "), e.Err)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }

// schemaCache caches compiled JSON schemas by kind.
var schemaCache sync.Map // map[Kind]*jsonschema.Schema

// Validate checks raw JSON against the schema for the given kind.
// Returns nil on success, *SchemaViolationError on failure.
func Validate(kind Kind, raw json.RawMessage) error {
	def, ok := schemaDefs[kind]
	if !ok {
		return fmt.Errorf("no schema for kind %q", kind)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse problem JSON: %w", err)
	}

	compiled, err := compiledSchema(kind, def)
	if err != nil {
		return fmt.Errorf("compile %s schema: %w", kind, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &SchemaViolationError{
			Kind:   kind,
			Fields: violatingFields(err),
			Err:    err,
		}
	}
	return nil
}

func compiledSchema(kind Kind, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s-problem.json", kind)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}

// violatingFields collects the instance locations of all leaf validation
// failures, deduplicated and sorted.
func violatingFields(err error) []string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	seen := make(map[string]bool)
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			loc := "/" + strings.Join(v.InstanceLocation, "/")
			seen[loc] = true
			return
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(verr)

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// stringList is shorthand for a schema array-of-strings definition.
func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// coreProps returns the property definitions shared by every variant.
// The id is optional: the generation client assigns one when absent.
func coreProps(kind Kind) map[string]any {
	return map[string]any{
		"id": map[string]any{
			"type": "string",
		},
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"type": map[string]any{
			"const": string(kind),
		},
		"difficulty": map[string]any{
			"enum": []any{"easy", "medium", "hard"},
		},
		"estimatedTime": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
	}
}

func variantSchema(kind Kind, props map[string]any, required []any) map[string]any {
	all := coreProps(kind)
	for k, v := range props {
		all[k] = v
	}
	return map[string]any{
		"type":                 "object",
		"properties":           all,
		"required":             append([]any{"title", "type", "difficulty", "estimatedTime"}, required...),
		"additionalProperties": false,
	}
}

// schemaDefs holds the JSON Schema for every record kind. KindEvaluation has
// no entry: it is a template kind only and never produces a Record.
var schemaDefs = map[Kind]map[string]any{
	KindDSA: variantSchema(KindDSA, map[string]any{
		"description": map[string]any{"type": "string", "minLength": 1},
		"examples": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"input":       map[string]any{"type": "string"},
					"output":      map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
				"required":             []any{"input", "output"},
				"additionalProperties": false,
			},
		},
		"constraints": stringList("Input bounds and edge conditions"),
		"hints":       stringList("Progressive hints, vaguest first"),
	}, []any{"description", "examples"}),

	KindMachineCoding: variantSchema(KindMachineCoding, map[string]any{
		"description":        map[string]any{"type": "string", "minLength": 1},
		"requirements":       stringList("Functional requirements to implement"),
		"acceptanceCriteria": stringList("Observable behavior that marks the task done"),
		"techHints":          stringList("Suggested techniques or APIs"),
	}, []any{"description", "requirements"}),

	KindSystemDesign: variantSchema(KindSystemDesign, map[string]any{
		"description":               map[string]any{"type": "string", "minLength": 1},
		"functionalRequirements":    stringList("What the system must do"),
		"nonFunctionalRequirements": stringList("Latency, availability, cost constraints"),
		"scale":                     map[string]any{"type": "string", "minLength": 1},
	}, []any{"description", "functionalRequirements", "scale"}),

	KindTheory: variantSchema(KindTheory, map[string]any{
		"question":       map[string]any{"type": "string", "minLength": 1},
		"expectedTopics": stringList("Topics a strong answer covers"),
		"followUps":      stringList("Follow-up probes for the interviewer"),
	}, []any{"question", "expectedTopics"}),

	KindMockInterview: variantSchema(KindMockInterview, map[string]any{
		"scenario":           map[string]any{"type": "string", "minLength": 1},
		"interviewerPersona": map[string]any{"type": "string", "minLength": 1},
		"stages":             stringList("Ordered stages of the conversation"),
	}, []any{"scenario", "interviewerPersona", "stages"}),
}

// ClearSchemaCache drops all compiled schemas. Test isolation only.
func ClearSchemaCache() {
	schemaCache.Range(func(k, _ any) bool {
		schemaCache.Delete(k)
		return true
	})
}
