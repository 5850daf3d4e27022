package swalk

import (
	"fmt"
	"sync"
)

// CheckFunc reports whether a decoded value conforms to a scalar type name.
// It returns nil on conformance and a descriptive error otherwise.
type CheckFunc func(v any) error

// TypeRegistry maps scalar type names, as they appear in signature leaves,
// to their value checks. It is safe for concurrent use.
type TypeRegistry struct {
	mu      sync.RWMutex
	entries map[string]CheckFunc
}

func newTypeRegistry() *TypeRegistry {
	return &TypeRegistry{entries: make(map[string]CheckFunc)}
}

// Register adds a check under name. Registering the same name twice is an
// error so bundles cannot silently shadow each other.
func (r *TypeRegistry) Register(name string, fn CheckFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("type %q already registered", name)
	}
	if fn == nil {
		return fmt.Errorf("type %q has nil check", name)
	}
	r.entries[name] = fn
	return nil
}

// Check validates v against the named scalar type. Unknown names are an
// error; they indicate a signature leaf with no registered meaning.
func (r *TypeRegistry) Check(name string, v any) error {
	r.mu.RLock()
	fn, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("type %q not registered", name)
	}
	if err := fn(v); err != nil {
		return fmt.Errorf("type %q: %w", name, err)
	}
	return nil
}

// Registration is a deferred type registration. Packages that define scalar
// types expose values of this type so callers opt in explicitly instead of
// relying on import side-effects (init functions).
//
// Usage:
//
//	r, _ := swalk.NewTypeRegistry(swalk.Builtins(), myCustomType)
type Registration func(r *TypeRegistry) error

// NewType returns a Registration accepting exactly the Go type T under name.
func NewType[T any](name string) Registration {
	return NewTypeFunc(name, func(v any) error {
		if _, ok := v.(T); !ok {
			var want T
			return fmt.Errorf("want %T, got %T", want, v)
		}
		return nil
	})
}

// NewTypeFunc returns a Registration installing an arbitrary check under
// name, for scalar types whose values need more than a type assertion.
func NewTypeFunc(name string, fn CheckFunc) Registration {
	return func(r *TypeRegistry) error {
		return r.Register(name, fn)
	}
}

// Group groups multiple registrations into one, allowing bundles to be passed
// around as a single value:
//
//	swalk.NewTypeRegistry(swalk.Group(swalk.StringType, swalk.IntType))
func Group(regs ...Registration) Registration {
	return func(r *TypeRegistry) error { return Apply(r, regs...) }
}

// Apply applies one or more registrations to an existing registry. It stops
// at the first error and returns it.
func Apply(r *TypeRegistry, regs ...Registration) error {
	for _, reg := range regs {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// NewTypeRegistry constructs a registry and applies the given registrations.
func NewTypeRegistry(regs ...Registration) (*TypeRegistry, error) {
	r := newTypeRegistry()
	if err := Apply(r, regs...); err != nil {
		return nil, err
	}
	return r, nil
}
