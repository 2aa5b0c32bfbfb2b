package locales

import (
	"context"
	"errors"

	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// ErrRegistryRequired indicates Watch was called without a registry.
var ErrRegistryRequired = errors.New("locales: registry is required")

// Watch subscribes fn to registry changes. fn runs on a dedicated goroutine,
// once per non-empty emission, in emission order. The returned function
// releases the subscription and is safe to call more than once.
func Watch(ctx context.Context, registry interfaces.LocaleRegistry, fn func(Set)) (func(), error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	updates, err := registry.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for list := range updates {
			if len(list) == 0 {
				continue
			}
			fn(NewSet(list...))
		}
	}()

	return cancel, nil
}

// Load reads the registry's current list into a Set.
func Load(ctx context.Context, registry interfaces.LocaleRegistry) (Set, error) {
	if registry == nil {
		return Set{}, ErrRegistryRequired
	}
	list, err := registry.Current(ctx)
	if err != nil {
		return Set{}, err
	}
	return NewSet(list...), nil
}
