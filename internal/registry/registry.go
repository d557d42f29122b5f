// Package registry binds declared step names to handler functions and
// adapts between the engine's generic value representation and a
// handler's typed argument and output shapes.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/stagehand/internal/clock"
	"github.com/alexisbeaulieu97/stagehand/internal/logger"
	"github.com/alexisbeaulieu97/stagehand/internal/random"
	serrors "github.com/alexisbeaulieu97/stagehand/pkg/errors"
)

// Invocation carries everything a handler may touch: the scenario's
// mutable world, its entropy source, the run's virtual clock, a logger,
// and the step's resolved arguments.
type Invocation struct {
	World any
	Rand  *random.Source
	Clock *clock.Clock
	Log   *logger.Logger
	Args  map[string]any
}

// Handler executes one step. The returned map becomes the step's output
// value; a nil map means the step produced no outputs.
type Handler func(ctx context.Context, inv *Invocation) (map[string]any, error)

// Registry is a lookup table from step name to handler. Registration
// happens once at process start; lookups happen on every step dispatch.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a step name. Duplicate names and nil
// handlers are startup errors.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return serrors.NewRegistrationError(name, "step name is empty")
	}
	if h == nil {
		return serrors.NewRegistrationError(name, "handler is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return serrors.NewRegistrationError(name, "already registered")
	}
	r.handlers[name] = h
	return nil
}

// Lookup retrieves the handler bound to name.
func (r *Registry) Lookup(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	if !ok {
		return nil, serrors.NewRegistrationError(name, "no handler registered")
	}
	return h, nil
}

// Names returns all registered step names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many handlers are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// MustRegister registers a batch of handlers and panics on conflict.
// Intended for wiring the built-in step library at startup, where a
// duplicate name is a programming error.
func (r *Registry) MustRegister(handlers map[string]Handler) {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.Register(name, handlers[name]); err != nil {
			panic(fmt.Sprintf("registry: %v", err))
		}
	}
}
