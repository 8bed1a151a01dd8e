package etl

import (
	"fmt"
	"sort"
)

// Registry is the descriptor table mapping logical table names to their
// factories. The driver resolves run targets through it; the layer packages
// register every table once at wiring time.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a name. Registering an empty name, a nil
// factory, or a name twice panics: registration happens once at wiring time
// and a collision there is a programming error, not a runtime condition.
func (r *Registry) Register(name string, factory Factory) {
	if name == "" {
		panic("etl: Register with empty table name")
	}
	if factory == nil {
		panic("etl: Register with nil factory for " + name)
	}
	if _, dup := r.factories[name]; dup {
		panic("etl: Register called twice for " + name)
	}
	r.factories[name] = factory
}

// Lookup returns the factory for a table name.
func (r *Registry) Lookup(name string) (Factory, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return factory, nil
}

// Names returns every registered table name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
