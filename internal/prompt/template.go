// Package prompt holds the versioned prompt template packs and the variable
// binder that renders them into concrete prompts.
package prompt

import "fmt"

// Template is one named prompt template inside a versioned pack.
// Bodies use ${name} placeholders and ${cond ? a : b} ternary tokens.
type Template struct {
	Version     string
	Name        string
	Description string
	Variables   []string // declared required variable names
	Body        string
}

// NotFoundError reports a missing template version or name.
type NotFoundError struct {
	Version string
	Name    string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("template version %q not found", e.Version)
	}
	return fmt.Sprintf("template %q not found in version %q", e.Name, e.Version)
}

// ConfigurationError reports a template pack that exists but cannot be
// loaded. Fatal: pack contents ship with the binary, so a load failure is a
// build defect, not a transient condition.
type ConfigurationError struct {
	Version string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("load template pack %q: %v", e.Version, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// MissingVariableError reports a strict-mode render that referenced a
// variable with no bound value.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable %q", e.Name)
}

// MalformedTokenError reports a strict-mode render that hit a placeholder
// which is neither an identifier nor a ternary token. Distinct from
// MissingVariableError: the template is wrong, not the variable map.
type MalformedTokenError struct {
	Token string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed template token %q", e.Token)
}

// UnknownKindError reports a kind with no template mapping.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown problem kind %q", e.Kind)
}
