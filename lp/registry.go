package lp

import (
	"fmt"
	"slices"
	"sync"
)

// Factory creates a fresh, empty Solver.
type Factory func() (Solver, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a backend available under name. It panics if factory is nil
// or name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("lp: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("lp: Register called twice for backend " + name)
	}
	factories[name] = factory
}

// Open creates a Solver from the backend registered under name. Failures wrap
// ErrSolverUnavailable.
func Open(name string) (Solver, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown backend %q (registered: %v)", ErrSolverUnavailable, name, Backends())
	}

	s, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: backend %q: %w", ErrSolverUnavailable, name, err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: backend %q returned no solver", ErrSolverUnavailable, name)
	}

	return s, nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
