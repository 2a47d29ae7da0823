package problemgen

import (
	"regexp"
	"strings"
)

// Model completions rarely arrive as clean JSON: they come wrapped in
// markdown fences, preambles, or trailing commentary. ExtractJSON runs an
// ordered chain of heuristics, each independently testable, and reports
// ErrNoJSONFound only when every strategy comes up empty.
//
// Strategy order:
//  1. fenced code block (```json ... ``` or bare ```)
//  2. balanced {...} span: the only span when one exists, else the longest
func ExtractJSON(text string) (string, error) {
	if span, ok := extractFenced(text); ok {
		return span, nil
	}
	if span, ok := extractBalanced(text); ok {
		return span, nil
	}
	return "", ErrNoJSONFound
}

var fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// extractFenced returns the contents of the first fenced code block that
// holds a JSON object.
func extractFenced(text string) (string, bool) {
	m := fencedRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// extractBalanced scans for top-level balanced brace spans. With exactly one
// span it returns it; with several it returns the longest, on the theory
// that the payload dwarfs any decorative objects in surrounding prose.
func extractBalanced(text string) (string, bool) {
	spans := balancedSpans(text)
	switch len(spans) {
	case 0:
		return "", false
	case 1:
		return spans[0], true
	}
	longest := spans[0]
	for _, s := range spans[1:] {
		if len(s) > len(longest) {
			longest = s
		}
	}
	return longest, true
}

// balancedSpans returns every top-level {...} span in text, in order.
// Braces inside double-quoted strings are ignored; escapes are honored.
func balancedSpans(text string) []string {
	var spans []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			if depth > 0 {
				inString = !inString
			}
		case '{':
			if inString {
				continue
			}
			if depth == 0 {
				start = i
				inString = false
			}
			depth++
		case '}':
			if inString {
				continue
			}
			if depth > 0 {
				depth--
				if depth == 0 {
					spans = append(spans, text[start:i+1])
				}
			}
		}
	}
	return spans
}
