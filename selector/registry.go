package selector

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/domsel/domsel/filter"
)

// Registry is the process-wide mapping from name to Selector. It owns the
// filter-set registry its selectors install their sets into, so borrowed
// filter vocabularies stay scoped to one registry. Construct one per
// process (or per test) rather than sharing an ambient singleton.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	selectors map[string]*Selector
	sets      *filter.SetRegistry
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger selectors warn through.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates an empty selector registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		selectors: make(map[string]*Selector),
		sets:      filter.NewSetRegistry(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// FilterSets returns the registry's filter-set registry, used to define
// shared filter vocabularies before the selectors that borrow them.
func (r *Registry) FilterSets() *filter.SetRegistry { return r.sets }

// Add constructs a new selector, runs define against it, and stores it
// under name, overwriting any prior selector. The selector's filter set is
// created fresh under the same name, so re-adding after Remove never
// inherits the removed selector's filters.
func (r *Registry) Add(name string, define func(*Definition)) *Selector {
	sel := &Selector{
		name:    name,
		filters: r.sets.Add(name, nil),
		logger:  r.logger,
	}
	if define != nil {
		define(&Definition{sel: sel, sets: r.sets})
	}

	r.mu.Lock()
	if _, ok := r.selectors[name]; !ok {
		r.order = append(r.order, name)
	}
	r.selectors[name] = sel
	r.mu.Unlock()
	return sel
}

// Update re-applies define against the existing selector, amending its
// filters, builder, and metadata in place. It fails when the name is not
// registered.
func (r *Registry) Update(name string, define func(*Definition)) (*Selector, error) {
	r.mu.RLock()
	sel, ok := r.selectors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("update selector: %q is not registered", name)
	}
	define(&Definition{sel: sel, sets: r.sets})
	return sel, nil
}

// Remove deletes the named selector. Removing an absent name is a no-op.
// The selector's filter set stays in the set registry for existing
// borrowers; a subsequent Add installs a fresh one.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.selectors[name]; !ok {
		return
	}
	delete(r.selectors, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get looks up a selector by name.
func (r *Registry) Get(name string) (*Selector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sel, ok := r.selectors[name]
	return sel, ok
}

// All returns a copy of the name-to-selector mapping.
func (r *Registry) All() map[string]*Selector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*Selector, len(r.selectors))
	for k, v := range r.selectors {
		out[k] = v
	}
	return out
}

// Names returns the selector names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Detect auto-detects a selector for a raw locator: the first registered
// selector whose match predicate accepts it wins.
func (r *Registry) Detect(locator string) (*Selector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if sel := r.selectors[name]; sel.Match(locator) {
			return sel, true
		}
	}
	return nil, false
}
