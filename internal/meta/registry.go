package meta

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds every declared content model, keyed by short name. It is the
// discovery mechanism for metadata consumers: model packages register their
// types at startup and the registry is treated as read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]any
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]any)}
}

// defaultRegistry backs the package-level helpers; models register here.
var defaultRegistry = NewRegistry()

// Register adds a content model to the registry. The model must be a struct
// (or struct pointer) carrying a content-model declaration. Re-registering a
// name replaces the previous entry.
func (r *Registry) Register(model any) error {
	t := structType(model)
	if t == nil {
		return fmt.Errorf("%w: %T", ErrNotStruct, model)
	}
	if _, ok := ModelOptions(model); !ok {
		return fmt.Errorf("%w: %s", ErrNotContentModel, t.Name())
	}

	name := ShortName(model)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = model
	return nil
}

// MustRegister is Register that panics, for use from model-package init.
func (r *Registry) MustRegister(model any) {
	if err := r.Register(model); err != nil {
		panic(err)
	}
}

// Lookup resolves a model by short name, case-insensitively. Snake-cased
// names ("blog_post" for BlogPost) are accepted too.
func (r *Registry) Lookup(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for registered, model := range r.byName {
		if strings.EqualFold(registered, name) || SnakeCase(registered) == strings.ToLower(name) {
			return model, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// All returns the registered models in registration order.
func (r *Registry) All() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]any, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered short names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Register adds a model to the default registry.
func Register(model any) error { return defaultRegistry.Register(model) }

// MustRegister adds a model to the default registry, panicking on failure.
func MustRegister(model any) { defaultRegistry.MustRegister(model) }

// Lookup resolves a model from the default registry.
func Lookup(name string) (any, error) { return defaultRegistry.Lookup(name) }

// All returns the default registry's models in registration order.
func All() []any { return defaultRegistry.All() }

// Names returns the default registry's short names in registration order.
func Names() []string { return defaultRegistry.Names() }

// Default returns the package-level registry.
func Default() *Registry { return defaultRegistry }

// ShortName returns the model's type name without the conventional "Model"
// suffix (ArticleModel -> Article).
func ShortName(model any) string {
	t := structType(model)
	if t == nil {
		return ""
	}
	name := t.Name()
	if strings.HasSuffix(name, "Model") && len(name) > len("Model") {
		name = strings.TrimSuffix(name, "Model")
	}
	return name
}

// TypePath returns the fully qualified type identity used for cache keys.
func TypePath(model any) string {
	t := structType(model)
	if t == nil {
		return fmt.Sprintf("%T", model)
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// PackagePath returns the package path of the model's type.
func PackagePath(model any) string {
	t := structType(model)
	if t == nil {
		return ""
	}
	return t.PkgPath()
}
