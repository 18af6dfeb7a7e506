package registry

import (
	"sync"

	"github.com/arthur-debert/lovely/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] interface {
	// LoadOrRegister returns the existing item for name if present,
	// otherwise it stores item. loaded reports whether the item was already there.
	LoadOrRegister(name string, item T) (actual T, loaded bool)

	// Get retrieves an item from the registry
	Get(name string) (T, error)

	// Count returns the number of registered items
	Count() int
}

// registry is the internal implementation of Registry
type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		items: make(map[string]T),
	}
}

// LoadOrRegister stores item under name unless something is already there
func (r *registry[T]) LoadOrRegister(name string, item T) (T, bool) {
	r.mu.RLock()
	existing, ok := r.items[name]
	r.mu.RUnlock()
	if ok {
		return existing, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another writer may have won between the two locks.
	if existing, ok := r.items[name]; ok {
		return existing, true
	}
	r.items[name] = item
	return item, false
}

// Get retrieves an item from the registry
func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}

	return item, nil
}

// Count returns the number of registered items
func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
