package validation

import (
	"fmt"
	"sync"
)

// Registry maps test-instance paths (as recorded in the test catalog, e.g.
// "hbp.validation.cdt.CDTTest") to test constructors, and model names to
// model constructors. Lookups are exact-match; an unknown path is a typed
// error, not a dynamic import failure.
type Registry struct {
	tests  map[string]Constructor
	models map[string]ModelConstructor
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tests:  make(map[string]Constructor),
		models: make(map[string]ModelConstructor),
	}
}

// RegisterTest associates a test-instance path with a constructor. Registering
// the same path again replaces the previous constructor.
func (r *Registry) RegisterTest(instancePath string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[instancePath] = ctor
}

// LookupTest retrieves the constructor for a test-instance path.
func (r *Registry) LookupTest(instancePath string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.tests[instancePath]
	if !ok {
		return nil, NotRegisteredError{Kind: "test", Path: instancePath}
	}
	return ctor, nil
}

// TestPaths returns all registered test-instance paths, in no particular order.
func (r *Registry) TestPaths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.tests))
	for p := range r.tests {
		paths = append(paths, p)
	}
	return paths
}

// RegisterModel associates a model name with a constructor.
func (r *Registry) RegisterModel(name string, ctor ModelConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = ctor
}

// LookupModel retrieves the constructor for a model name.
func (r *Registry) LookupModel(name string) (ModelConstructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.models[name]
	if !ok {
		return nil, NotRegisteredError{Kind: "model", Path: name}
	}
	return ctor, nil
}

// NotRegisteredError means a registry lookup found no constructor for the
// given path.
type NotRegisteredError struct {
	Kind string // "test" or "model"
	Path string
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("no %s registered for %q", e.Kind, e.Path)
}

// DefaultRegistry is the registry used by package-level registration. Test
// implementations typically register themselves in an init function.
var DefaultRegistry = NewRegistry()

// RegisterTest adds a test constructor to the default registry.
func RegisterTest(instancePath string, ctor Constructor) {
	DefaultRegistry.RegisterTest(instancePath, ctor)
}

// RegisterModel adds a model constructor to the default registry.
func RegisterModel(name string, ctor ModelConstructor) {
	DefaultRegistry.RegisterModel(name, ctor)
}
