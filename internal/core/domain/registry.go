package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Registry maps task names to their definitions.
// It is populated during startup and sealed before it is handed to callers;
// a sealed registry is read-only, so lookups need no locking.
type Registry struct {
	tasks  map[string]*TaskDefinition
	order  []string
	sealed bool
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*TaskDefinition),
	}
}

// Register adds def under its name.
// Registering an existing name fails and leaves the first definition in place.
func (r *Registry) Register(def *TaskDefinition) error {
	if def == nil {
		return zerr.Wrap(ErrInvalidTask, "cannot register a nil task definition")
	}
	if r.sealed {
		return zerr.With(zerr.Wrap(ErrRegistrySealed, "cannot register task"), "task", def.Name)
	}
	if _, exists := r.tasks[def.Name]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateTask, "cannot register task"), "task", def.Name)
	}

	r.tasks[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Seal ends initialization. Later calls to Register fail.
func (r *Registry) Seal() *Registry {
	r.sealed = true
	return r
}

// Sealed reports whether the registry is read-only.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*TaskDefinition, error) {
	def, ok := r.tasks[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownTask, "task lookup failed"), "task", name)
	}
	return def, nil
}

// Names returns task names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Tasks returns the definitions in registration order.
func (r *Registry) Tasks() []*TaskDefinition {
	out := make([]*TaskDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tasks[name])
	}
	return out
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}
