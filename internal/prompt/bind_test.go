package prompt

import (
	"errors"
	"reflect"
	"testing"
)

func TestBind_Substitution(t *testing.T) {
	tests := []struct {
		name string
		body string
		vars Variables
		want string
	}{
		{
			name: "simple string",
			body: "Interview for ${role} at ${company}.",
			vars: Variables{"role": "Frontend Engineer", "company": "BigTech"},
			want: "Interview for Frontend Engineer at BigTech.",
		},
		{
			name: "number and bool values",
			body: "count=${count} ratio=${ratio} flag=${flag}",
			vars: Variables{"count": 3, "ratio": 0.5, "flag": true},
			want: "count=3 ratio=0.5 flag=true",
		},
		{
			name: "repeated placeholder",
			body: "${x} and ${x}",
			vars: Variables{"x": "a"},
			want: "a and a",
		},
		{
			name: "unbound renders empty in lenient mode",
			body: "before ${missing} after",
			vars: Variables{},
			want: "before  after",
		},
		{
			name: "nil value treated as unbound",
			body: "[${v}]",
			vars: Variables{"v": nil},
			want: "[]",
		},
		{
			name: "no placeholders",
			body: "plain text",
			vars: Variables{"unused": "x"},
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bind(tt.body, tt.vars, Lenient)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBind_Ternary(t *testing.T) {
	tests := []struct {
		name string
		body string
		vars Variables
		want string
	}{
		{
			name: "truthy condition picks first branch",
			body: "${includeHints ? 'Include 2-3 hints.' : 'Do not include hints.'}",
			vars: Variables{"includeHints": true},
			want: "Include 2-3 hints.",
		},
		{
			name: "false bool picks second branch",
			body: "${includeHints ? 'yes' : 'no'}",
			vars: Variables{"includeHints": false},
			want: "no",
		},
		{
			name: "empty string is falsy",
			body: "${ctx ? 'has context' : 'no context'}",
			vars: Variables{"ctx": ""},
			want: "no context",
		},
		{
			name: "unbound condition is falsy in lenient mode",
			body: "${ctx ? 'a' : 'b'}",
			vars: Variables{},
			want: "b",
		},
		{
			name: "non-empty string is truthy",
			body: "${level ? 'calibrated' : 'default'}",
			vars: Variables{"level": "senior"},
			want: "calibrated",
		},
		{
			name: "double quoted branches",
			body: `${flag ? "on" : "off"}`,
			vars: Variables{"flag": true},
			want: "on",
		},
		{
			name: "unquoted branches",
			body: "${flag ? on : off}",
			vars: Variables{"flag": "x"},
			want: "on",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bind(tt.body, tt.vars, Lenient)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBind_StrictMissingVariable(t *testing.T) {
	vars := Variables{"company": "BigTech"}
	_, err := Bind("${company} ${role}", vars, Strict)

	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
	if missing.Name != "role" {
		t.Errorf("expected missing variable %q, got %q", "role", missing.Name)
	}
}

func TestBind_StrictMissingTernaryCondition(t *testing.T) {
	_, err := Bind("${flag ? 'a' : 'b'}", Variables{}, Strict)

	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
	if missing.Name != "flag" {
		t.Errorf("expected missing variable %q, got %q", "flag", missing.Name)
	}
}

func TestBind_StrictReportsFirstMissing(t *testing.T) {
	_, err := Bind("${a} ${b}", Variables{}, Strict)

	var missing *MissingVariableError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
	if missing.Name != "a" {
		t.Errorf("expected first missing variable %q, got %q", "a", missing.Name)
	}
}

func TestBind_MalformedToken(t *testing.T) {
	vars := Variables{"foo": "value", "foo bar": "never"}

	// Lenient renders malformed tokens empty.
	got, err := Bind("x ${foo bar} y", vars, Lenient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x  y" {
		t.Errorf("got %q", got)
	}

	// Strict reports the token itself, not a missing variable.
	_, err = Bind("x ${foo bar} y", vars, Strict)
	var malformed *MalformedTokenError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedTokenError, got %v", err)
	}
	if malformed.Token != "foo bar" {
		t.Errorf("Token = %q", malformed.Token)
	}
	var missing *MissingVariableError
	if errors.As(err, &missing) {
		t.Error("malformed token wrongly reported as a missing variable")
	}
}

func TestBind_Pure(t *testing.T) {
	body := "${company}: ${flag ? 'x' : 'y'} ${role}"
	vars := Variables{"company": "Seedling", "flag": true, "role": "SRE"}

	first, err := Bind(body, vars, Lenient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Bind(body, vars, Lenient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("bind is not deterministic: %q vs %q", first, second)
	}

	want := Variables{"company": "Seedling", "flag": true, "role": "SRE"}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("bind mutated input vars: %v", vars)
	}
}

func TestExtractVariableNames(t *testing.T) {
	body := "${role} at ${company}, ${includeHints ? 'with hints' : 'no hints'}, again ${role}"
	got := ExtractVariableNames(body)
	want := []string{"company", "includeHints", "role"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestValidateRequired(t *testing.T) {
	body := "${a} ${b} ${c}"
	missing := ValidateRequired(body, Variables{"b": "x"})
	want := []string{"a", "c"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("got %v, want %v", missing, want)
	}
}

func TestLayer(t *testing.T) {
	base := Variables{"a": 1, "b": 1}
	preset := Variables{"b": 2, "c": 2}
	override := Variables{"c": 3}

	merged := Layer(base, preset, override)

	want := Variables{"a": 1, "b": 2, "c": 3}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %v, want %v", merged, want)
	}
	if base["b"] != 1 || preset["c"] != 2 {
		t.Error("layer mutated an input map")
	}
}
