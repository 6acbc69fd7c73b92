package chart

import (
	"fmt"
	"strings"

	"satimge/satimge-charts/internal/parsererror"
)

// Registry holds the chart definitions by name, in registration order.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry registers builtins and then extra definitions; an extra
// definition with a builtin's name replaces it in place.
func NewRegistry(builtins []Definition, extra ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition)}
	for _, d := range append(append([]Definition{}, builtins...), extra...) {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates d and adds or replaces it.
func (r *Registry) Register(d Definition) error {
	d = d.withDefaults()
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := r.defs[d.Name]; !ok {
		r.order = append(r.order, d.Name)
	}
	r.defs[d.Name] = d
	return nil
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Get returns a definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Resolve returns the definitions named in include, or all of them when
// include is empty. Any unknown name fails the whole call.
func (r *Registry) Resolve(include []string) ([]Definition, error) {
	if len(include) == 0 {
		out := make([]Definition, 0, len(r.order))
		for _, n := range r.order {
			out = append(out, r.defs[n])
		}
		return out, nil
	}

	var unknown []string
	out := make([]Definition, 0, len(include))
	seen := make(map[string]bool, len(include))
	for _, n := range include {
		n = strings.TrimSpace(n)
		if seen[n] {
			continue
		}
		seen[n] = true
		d, ok := r.defs[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, d)
	}
	if len(unknown) > 0 {
		return nil, &parsererror.ValidationError{
			Subject: "charts.include",
			Reason: fmt.Sprintf("unknown chart(s): %s (available: %s)",
				strings.Join(unknown, ", "), strings.Join(r.order, ", ")),
		}
	}
	return out, nil
}
