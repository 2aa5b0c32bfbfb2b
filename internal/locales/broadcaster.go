package locales

import (
	"context"
	"sync"
)

// broadcaster fans locale lists out to context-scoped watchers. Each watcher
// keeps only the latest undelivered value.
type broadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan []Descriptor
	nextID   uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		watchers: make(map[uint64]chan []Descriptor),
	}
}

func (b *broadcaster) Subscribe(ctx context.Context) (<-chan []Descriptor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan []Descriptor)
		close(ch)
		return ch, nil
	}
	ch := make(chan []Descriptor, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

func (b *broadcaster) Broadcast(list []Descriptor) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.watchers {
		value := append([]Descriptor(nil), list...)
		select {
		case ch <- value:
			continue
		default:
		}
		// replace the stale pending value
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- value:
		default:
		}
	}
}
