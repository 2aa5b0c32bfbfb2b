package locales

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// MemoryRegistry is an in-process locale registry. Every mutation publishes
// the complete list to subscribers.
type MemoryRegistry struct {
	mu          sync.RWMutex
	items       []Descriptor
	broadcaster *broadcaster
}

var _ interfaces.LocaleRegistry = (*MemoryRegistry)(nil)

// NewMemoryRegistry constructs a registry seeded with descriptors.
func NewMemoryRegistry(descriptors ...Descriptor) *MemoryRegistry {
	return &MemoryRegistry{
		items:       NewSet(descriptors...).Descriptors(),
		broadcaster: newBroadcaster(),
	}
}

// Current returns a copy of the registered locales.
func (r *MemoryRegistry) Current(context.Context) ([]Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

// Replace swaps the whole locale list.
func (r *MemoryRegistry) Replace(descriptors ...Descriptor) {
	items := NewSet(descriptors...).Descriptors()
	r.mu.Lock()
	if slices.Equal(r.items, items) {
		r.mu.Unlock()
		return
	}
	r.items = items
	r.mu.Unlock()
	r.broadcaster.Broadcast(items)
}

// Add appends a locale when it is not registered yet.
func (r *MemoryRegistry) Add(desc Descriptor) {
	r.mu.RLock()
	next := append(slices.Clone(r.items), desc)
	r.mu.RUnlock()
	r.Replace(next...)
}

// Remove drops a locale by id.
func (r *MemoryRegistry) Remove(id string) {
	id = Canonical(id)
	r.mu.RLock()
	next := slices.DeleteFunc(slices.Clone(r.items), func(d Descriptor) bool { return d.ID == id })
	r.mu.RUnlock()
	r.Replace(next...)
}

// Subscribe delivers locale lists until ctx is cancelled.
func (r *MemoryRegistry) Subscribe(ctx context.Context) (<-chan []Descriptor, error) {
	return r.broadcaster.Subscribe(ctx)
}
