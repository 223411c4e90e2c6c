package types

import (
	"sync"
)

// Registry resolves canonical type names to Types. Lookups are keyed by
// the exact spelling asked for; it never unifies structurally equivalent
// spellings. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]Type
}

func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]Type)}
}

// Lookup resolves name, reporting false when the spelling is not a valid
// type. A negative result is not cached; a positive one is.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	t, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return t, true
	}

	t, err := ParseType(name)
	if err != nil {
		return Type{}, false
	}

	r.mu.Lock()
	r.cache[name] = t
	r.mu.Unlock()
	return t, true
}

// Get is Lookup with an error instead of a bool.
func (r *Registry) Get(name string) (Type, error) {
	if t, ok := r.Lookup(name); ok {
		return t, nil
	}
	_, err := ParseType(name)
	return Type{}, err
}
