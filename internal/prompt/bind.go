package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Variables is the value map a template is rendered against. Values may be
// strings, numbers, or booleans; anything else renders via fmt.
type Variables map[string]any

// Mode selects how Bind treats placeholders with no bound value.
type Mode int

const (
	// Lenient substitutes an empty string for unbound placeholders.
	Lenient Mode = iota
	// Strict fails with MissingVariableError on the first unbound placeholder.
	Strict
)

var (
	tokenRe = regexp.MustCompile(`\$\{([^}]*)\}`)
	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Bind substitutes ${name} placeholders in body with values from vars.
// Tokens of the form ${cond ? a : b} select a when cond's bound value is
// truthy (non-empty and not the literal "false"), else b. Bind is a pure
// function: it never mutates vars.
func Bind(body string, vars Variables, mode Mode) (string, error) {
	var firstErr error
	out := tokenRe.ReplaceAllStringFunc(body, func(tok string) string {
		if firstErr != nil {
			return ""
		}
		inner := strings.TrimSpace(tok[2 : len(tok)-1])

		if cond, a, b, ok := parseTernary(inner); ok {
			val, bound := lookup(vars, cond)
			if !bound && mode == Strict {
				firstErr = &MissingVariableError{Name: cond}
				return ""
			}
			if truthy(val) {
				return a
			}
			return b
		}

		if !identRe.MatchString(inner) {
			// Malformed token. Renders empty in lenient mode.
			if mode == Strict {
				firstErr = &MalformedTokenError{Token: inner}
			}
			return ""
		}

		val, bound := lookup(vars, inner)
		if !bound {
			if mode == Strict {
				firstErr = &MissingVariableError{Name: inner}
			}
			return ""
		}
		return val
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// ExtractVariableNames returns every variable name referenced in body,
// including ternary conditions, deduplicated and sorted.
func ExtractVariableNames(body string) []string {
	seen := make(map[string]bool)
	for _, m := range tokenRe.FindAllStringSubmatch(body, -1) {
		inner := strings.TrimSpace(m[1])
		if cond, _, _, ok := parseTernary(inner); ok {
			seen[cond] = true
			continue
		}
		if identRe.MatchString(inner) {
			seen[inner] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidateRequired returns the referenced variable names that have no bound
// value in vars, in sorted order. Tooling and tests only; the render path
// relies on Bind's own mode handling.
func ValidateRequired(body string, vars Variables) []string {
	var missing []string
	for _, name := range ExtractVariableNames(body) {
		if _, bound := lookup(vars, name); !bound {
			missing = append(missing, name)
		}
	}
	return missing
}

// Layer merges variable maps left to right; later layers win. The inputs
// are never mutated. Used to stack hard defaults, company/technology
// presets, and caller overrides.
func Layer(layers ...Variables) Variables {
	merged := make(Variables)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// parseTernary splits "cond ? a : b" into its parts. The condition must be
// a bare identifier; a and b are literal text and may be quoted. The first
// ':' after the '?' terminates a.
func parseTernary(inner string) (cond, a, b string, ok bool) {
	q := strings.Index(inner, "?")
	if q < 0 {
		return "", "", "", false
	}
	cond = strings.TrimSpace(inner[:q])
	if !identRe.MatchString(cond) {
		return "", "", "", false
	}
	rest := inner[q+1:]
	c := strings.Index(rest, ":")
	if c < 0 {
		return "", "", "", false
	}
	a = unquote(strings.TrimSpace(rest[:c]))
	b = unquote(strings.TrimSpace(rest[c+1:]))
	return cond, a, b, true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func lookup(vars Variables, name string) (string, bool) {
	v, ok := vars[name]
	if !ok || v == nil {
		return "", false
	}
	return formatValue(v), true
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// truthy reports whether a bound value counts as true for ternary tokens.
func truthy(val string) bool {
	return val != "" && val != "false"
}
