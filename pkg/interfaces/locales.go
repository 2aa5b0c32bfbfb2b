package interfaces

import "context"

// LocaleDescriptor is a single entry published by a locale registry.
type LocaleDescriptor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// LocaleRegistry publishes the set of locales records can be translated into.
// Every emitted slice is a fresh value; consumers must treat it as immutable.
type LocaleRegistry interface {
	// Current returns the latest known locale list.
	Current(ctx context.Context) ([]LocaleDescriptor, error)
	// Subscribe delivers locale lists until the context is cancelled. The
	// first emission may be empty.
	Subscribe(ctx context.Context) (<-chan []LocaleDescriptor, error)
}
