// Package problemgen turns bound prompts into validated problem records.
// It contains the generation client (extraction, coercion, schema checks)
// and the retry-and-fallback controller that guarantees every slot is
// filled.
package problemgen

import (
	"errors"
	"fmt"
)

// ErrNoJSONFound indicates no extraction strategy located a JSON object in
// the model's completion.
var ErrNoJSONFound = errors.New("no JSON object found in completion")

// MalformedJSONError indicates the located span is not parseable JSON.
// Fragment carries the offending span for diagnostics.
type MalformedJSONError struct {
	Fragment string
	Err      error
}

func (e *MalformedJSONError) Error() string {
	frag := e.Fragment
	if len(frag) > 120 {
		frag = frag[:120] + "..."
	}
	return fmt.Sprintf("malformed JSON in completion: %v (fragment: %s)", e.Err, frag)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }
