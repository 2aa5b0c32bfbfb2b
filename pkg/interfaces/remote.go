package interfaces

import "context"

// RemoteDocument is the wire shape exchanged with the remote CRUD service for
// a translatable record. Translations are keyed by locale id, then field.
type RemoteDocument struct {
	ID           string                    `json:"id,omitempty"`
	Version      int                       `json:"version,omitempty"`
	Translations map[string]map[string]any `json:"translations"`
}

// RemoteFilter narrows Read results. Empty fields are ignored.
type RemoteFilter struct {
	ID     string
	Locale string
	Slug   string
}

// RemoteClient is the remote CRUD contract consumed by the editor core.
//
// Implementations report domain failures with the error types of the remote
// package (field validation, duplicate key, update conflict); every other
// error is treated as unclassified.
type RemoteClient interface {
	Create(ctx context.Context, resource string, doc RemoteDocument) (string, error)
	Read(ctx context.Context, resource string, filter RemoteFilter) ([]RemoteDocument, error)
	Update(ctx context.Context, resource string, doc RemoteDocument) (bool, error)
	Delete(ctx context.Context, resource string, key string) (bool, error)
}
