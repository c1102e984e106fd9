package filter

import "sync"

// SetRegistry maps names to filter sets. Selectors install their owned set
// under their own name at construction; shared vocabularies (like the
// built-in "_field" set) are created once with GetOrCreate and borrowed by
// any number of selectors afterwards.
type SetRegistry struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// NewSetRegistry creates an empty registry.
func NewSetRegistry() *SetRegistry {
	return &SetRegistry{sets: make(map[string]*Set)}
}

// Add constructs a fresh set, runs define against it, and stores it,
// overwriting any prior set of that name.
func (r *SetRegistry) Add(name string, define func(*Set)) *Set {
	s := NewSet(name)
	if define != nil {
		define(s)
	}
	r.mu.Lock()
	r.sets[name] = s
	r.mu.Unlock()
	return s
}

// GetOrCreate returns the existing set unchanged, ignoring define; otherwise
// it constructs one via define, stores, and returns it.
func (r *SetRegistry) GetOrCreate(name string, define func(*Set)) *Set {
	r.mu.RLock()
	s, ok := r.sets[name]
	r.mu.RUnlock()
	if ok {
		return s
	}
	return r.Add(name, define)
}

// Get looks up a set by name.
func (r *SetRegistry) Get(name string) (*Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sets[name]
	return s, ok
}

// Remove deletes the named set. Removing an absent name is a no-op.
func (r *SetRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, name)
}

// All returns a copy of the name-to-set mapping.
func (r *SetRegistry) All() map[string]*Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Set, len(r.sets))
	for k, v := range r.sets {
		out[k] = v
	}
	return out
}
