package grid

import (
	"fmt"
	"strings"
)

// Spec names the columns of a grid: the input coordinates which span it, the
// output values tabulated at every vertex, and derived quantities which are
// computed from the outputs elsewhere and are only recorded here.
//
// The text form is "x, y -> v1, v2; g1, g2", with the derived list optional.
type Spec struct {
	Inputs, Outputs, Derived []string
}

// ParseSpec parses the text form of a Spec.
func ParseSpec(s string) (Spec, error) {
	lhs, rhs, ok := strings.Cut(s, "->")
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q has no '->'", ErrSpec, s)
	}
	outs, derived, hasDerived := strings.Cut(rhs, ";")

	spec := Spec{}
	var err error
	if spec.Inputs, err = splitNames(lhs); err != nil {
		return Spec{}, fmt.Errorf("%w: inputs of %q: %s", ErrSpec, s, err)
	}
	if spec.Outputs, err = splitNames(outs); err != nil {
		return Spec{}, fmt.Errorf("%w: outputs of %q: %s", ErrSpec, s, err)
	}
	if hasDerived && strings.TrimSpace(derived) != "" {
		if spec.Derived, err = splitNames(derived); err != nil {
			return Spec{}, fmt.Errorf("%w: derived values of %q: %s", ErrSpec, s, err)
		}
	}

	seen := map[string]bool{}
	for _, name := range spec.Columns() {
		if seen[name] {
			return Spec{}, fmt.Errorf("%w: column %q appears twice in %q", ErrSpec, name, s)
		}
		seen[name] = true
	}
	return spec, nil
}

func splitNames(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty list")
	}
	names := strings.Split(s, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if names[i] == "" {
			return nil, fmt.Errorf("empty name")
		} else if strings.ContainsAny(names[i], " \t;") || strings.Contains(names[i], "->") {
			return nil, fmt.Errorf("invalid name %q", names[i])
		}
	}
	return names, nil
}

// Columns returns the input names followed by the output names: the column
// order of a grid table.
func (s Spec) Columns() []string {
	out := make([]string, 0, len(s.Inputs)+len(s.Outputs))
	out = append(out, s.Inputs...)
	return append(out, s.Outputs...)
}

// HasOutput reports whether name is one of the spec's outputs.
func (s Spec) HasOutput(name string) bool {
	for _, out := range s.Outputs {
		if out == name {
			return true
		}
	}
	return false
}

func (s Spec) String() string {
	out := strings.Join(s.Inputs, ", ") + " -> " + strings.Join(s.Outputs, ", ")
	if len(s.Derived) > 0 {
		out += "; " + strings.Join(s.Derived, ", ")
	}
	return out
}
