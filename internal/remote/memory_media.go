package remote

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-editor/internal/identity"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// MemoryThumbnailStore keeps thumbnail registrations in memory. Size strings
// are unique per media id.
type MemoryThumbnailStore struct {
	mu      sync.RWMutex
	byMedia map[string][]interfaces.ThumbnailRecord
}

// NewMemoryThumbnailStore constructs an empty store.
func NewMemoryThumbnailStore() *MemoryThumbnailStore {
	return &MemoryThumbnailStore{byMedia: map[string][]interfaces.ThumbnailRecord{}}
}

var _ interfaces.ThumbnailStore = (*MemoryThumbnailStore)(nil)

func (s *MemoryThumbnailStore) CreateThumbnail(ctx context.Context, record interfaces.ThumbnailRecord) (interfaces.ThumbnailRecord, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.ThumbnailRecord{}, err
	}
	record.MediaID = strings.TrimSpace(record.MediaID)
	record.Size = strings.ToLower(strings.TrimSpace(record.Size))
	if record.MediaID == "" || record.Size == "" {
		return interfaces.ThumbnailRecord{}, &FieldValidationError{Fields: map[string]string{"size": "required"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byMedia[record.MediaID] {
		if existing.Size == record.Size {
			return interfaces.ThumbnailRecord{}, &DuplicateKeyError{Field: "size", Value: record.Size}
		}
	}
	if record.Key == "" {
		record.Key = identity.ThumbnailKey(record.MediaID, record.Size)
	}
	s.byMedia[record.MediaID] = append(s.byMedia[record.MediaID], record)
	return record, nil
}

func (s *MemoryThumbnailStore) DeleteThumbnail(ctx context.Context, mediaID, size string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	mediaID = strings.TrimSpace(mediaID)
	size = strings.ToLower(strings.TrimSpace(size))

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.byMedia[mediaID]
	for i, existing := range list {
		if existing.Size == size {
			s.byMedia[mediaID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryThumbnailStore) ListThumbnails(ctx context.Context, mediaID string) ([]interfaces.ThumbnailRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byMedia[strings.TrimSpace(mediaID)]
	out := make([]interfaces.ThumbnailRecord, len(list))
	copy(out, list)
	return out, nil
}
