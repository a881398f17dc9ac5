// Package runners catalogs the components missionctl's subcommands can
// invoke (a one-shot planning run, the HTTP server, a simulator instance) so
// that cmd/missionctl's cobra commands dispatch through a lookup table
// instead of each hardcoding a constructor call.
package runners

import (
	"context"
	"fmt"
	"regexp"
	"sync"
)

// Runner is a named, independently invokable component (an HTTP server, a
// simulator instance, a one-shot planning run).
type Runner interface {
	// Name returns the runner's registry key.
	Name() string

	// Description returns a brief human-readable summary.
	Description() string

	// Run executes the component until ctx is canceled or it completes.
	Run(ctx context.Context, params map[string]interface{}) error
}

// validName matches the lowercase, dash-separated convention every cobra
// subcommand in cmd/missionctl uses ("plan", "serve", "simulate"), since a
// runner's registry key doubles as its subcommand name.
var validName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// reservedNames collides with cobra's own built-in subcommands
// (completion/help) — registering a runner under either name would shadow
// command-line behavior every cobra CLI provides for free.
var reservedNames = map[string]bool{
	"help":       true,
	"completion": true,
}

// Registry manages available runners.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]func() Runner
}

// NewRegistry creates a new runner registry.
func NewRegistry() *Registry {
	return &Registry{
		runners: make(map[string]func() Runner),
	}
}

// Register adds a runner factory to the registry under name. name must be a
// valid subcommand identifier and must not collide with a cobra built-in.
func (r *Registry) Register(name string, factory func() Runner) error {
	if reservedNames[name] {
		return fmt.Errorf("runner name %q is reserved for a built-in CLI command", name)
	}
	if !validName.MatchString(name) {
		return fmt.Errorf("runner name %q must be lowercase, starting with a letter, with only letters/digits/dashes", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runners[name]; exists {
		return fmt.Errorf("runner %s already registered", name)
	}

	r.runners[name] = factory
	return nil
}

// Get returns a new instance of the requested runner.
func (r *Registry) Get(name string) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.runners[name]
	if !exists {
		return nil, fmt.Errorf("runner %s not found", name)
	}

	return factory(), nil
}

// List returns all registered runner names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global runner registry, populated by each runner's
// init() function.
var DefaultRegistry = NewRegistry()
