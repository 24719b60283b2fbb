// Package registry holds the problems tasks are classified under and the
// result each problem is expected to produce.
package registry

import (
	"task-board/internal/domain"
	"task-board/internal/errors"
)

// Registry is an ordered set of problems, unique by name.
// The zero value is an empty registry ready to use.
type Registry struct {
	problems []domain.Problem
	index    map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// FromProblems builds a registry from a list, keeping the first entry for
// each name.
func FromProblems(problems []domain.Problem) *Registry {
	r := New()
	for _, p := range problems {
		if p.Problem == "" {
			continue
		}
		_ = r.Register(p)
	}
	return r
}

// FromEvents rebuilds a registry from a movement log. The first event that
// carries a problem name determines its expected result; later events with
// the same name do not overwrite it. Events without a problem name are skipped.
func FromEvents(events []domain.MovementEvent) *Registry {
	r := New()
	for _, e := range events {
		if e.Problem == "" || r.Has(e.Problem) {
			continue
		}
		r.add(domain.Problem{Problem: e.Problem, ExpectedResult: e.Result})
	}
	return r
}

// Register adds a problem. Registering a name that already exists is
// rejected and the existing entry is kept.
func (r *Registry) Register(p domain.Problem) error {
	if r.Has(p.Problem) {
		return errors.NewInvalidInputError("problem", p.Problem, "problem is already registered")
	}
	r.add(p)
	return nil
}

func (r *Registry) add(p domain.Problem) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[p.Problem] = len(r.problems)
	r.problems = append(r.problems, p)
}

// Has reports whether a problem with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Lookup returns the problem registered under name.
func (r *Registry) Lookup(name string) (domain.Problem, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.Problem{}, false
	}
	return r.problems[i], true
}

// ExpectedResult returns the expected result for name, or "" when the
// problem is not registered.
func (r *Registry) ExpectedResult(name string) string {
	p, _ := r.Lookup(name)
	return p.ExpectedResult
}

// List returns a copy of the registered problems in registration order.
func (r *Registry) List() []domain.Problem {
	out := make([]domain.Problem, len(r.problems))
	copy(out, r.problems)
	return out
}

// Names returns the registered problem names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.problems))
	for i, p := range r.problems {
		names[i] = p.Problem
	}
	return names
}

// Len returns the number of registered problems.
func (r *Registry) Len() int {
	return len(r.problems)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return FromProblems(r.problems)
}
