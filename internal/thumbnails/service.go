package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cms-editor/internal/identity"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

var (
	// ErrStoreRequired indicates the service was built without a store.
	ErrStoreRequired = errors.New("thumbnails: store is required")
	// ErrMediaIDRequired indicates a blank media id.
	ErrMediaIDRequired = errors.New("thumbnails: media id is required")
	// ErrLimitReached indicates the media item already has the configured maximum of thumbnails.
	ErrLimitReached = errors.New("thumbnails: thumbnail limit reached")
)

// DuplicateSizeError reports that the media item already has a thumbnail with
// the same size string. It is a domain error and is never retried.
type DuplicateSizeError struct {
	MediaID string
	Size    string
}

func (e *DuplicateSizeError) Error() string {
	return fmt.Sprintf("thumbnails: media %s already has size %s", e.MediaID, e.Size)
}

// Service registers and removes thumbnails through a ThumbnailStore.
type Service struct {
	store       interfaces.ThumbnailStore
	logger      interfaces.Logger
	maxPerMedia int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxPerMedia caps the number of thumbnails per media item. Zero means
// unlimited.
func WithMaxPerMedia(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.maxPerMedia = limit
		}
	}
}

// NewService constructs a service.
func NewService(store interfaces.ThumbnailStore, opts ...ServiceOption) *Service {
	s := &Service{store: store, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create registers spec for mediaID and returns it with its key filled in.
// The spec is conformed to the source resolution of the media item first.
func (s *Service) Create(ctx context.Context, mediaID string, spec Spec, source Dimensions) (Spec, error) {
	if s.store == nil {
		return Spec{}, ErrStoreRequired
	}
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return Spec{}, ErrMediaIDRequired
	}
	spec, err := Conform(spec, source)
	if err != nil {
		return Spec{}, err
	}

	size := spec.Size()
	logger := logging.WithMediaContext(s.logger, mediaID, size)

	if s.maxPerMedia > 0 {
		existing, err := s.store.ListThumbnails(ctx, mediaID)
		if err != nil {
			return Spec{}, err
		}
		if len(existing) >= s.maxPerMedia {
			logger.Warn("thumbnails.create.limit_reached", "limit", s.maxPerMedia)
			return Spec{}, ErrLimitReached
		}
	}

	if spec.Key == "" {
		spec.Key = identity.ThumbnailKey(mediaID, size)
	}
	_, err = s.store.CreateThumbnail(ctx, interfaces.ThumbnailRecord{
		Key:     spec.Key,
		MediaID: mediaID,
		Size:    size,
		Type:    string(spec.Type),
		Width:   spec.Width,
		Height:  spec.Height,
	})
	if err != nil {
		var dup *remote.DuplicateKeyError
		if errors.As(err, &dup) {
			logger.Info("thumbnails.create.duplicate")
			return Spec{}, &DuplicateSizeError{MediaID: mediaID, Size: size}
		}
		logger.Error("thumbnails.create.failed", "error", err)
		return Spec{}, err
	}
	logger.Debug("thumbnails.create.succeeded", "key", spec.Key)
	return spec, nil
}

// Delete removes the thumbnail identified by size. It reports whether a
// thumbnail was removed.
func (s *Service) Delete(ctx context.Context, mediaID, size string) (bool, error) {
	if s.store == nil {
		return false, ErrStoreRequired
	}
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return false, ErrMediaIDRequired
	}
	if _, _, err := ParseSize(size); err != nil {
		return false, err
	}
	deleted, err := s.store.DeleteThumbnail(ctx, mediaID, strings.ToLower(strings.TrimSpace(size)))
	if err != nil {
		return false, err
	}
	logging.WithMediaContext(s.logger, mediaID, size).Debug("thumbnails.delete", "deleted", deleted)
	return deleted, nil
}

// List loads the registered thumbnails of mediaID. Stored crop thumbnails
// come back unchained; fit thumbnails chained.
func (s *Service) List(ctx context.Context, mediaID string) (List, error) {
	if s.store == nil {
		return List{}, ErrStoreRequired
	}
	records, err := s.store.ListThumbnails(ctx, strings.TrimSpace(mediaID))
	if err != nil {
		return List{}, err
	}
	specs := make([]Spec, 0, len(records))
	for _, record := range records {
		t, dims, err := ParseSize(record.Size)
		if err != nil {
			continue
		}
		specs = append(specs, Spec{
			Key:     record.Key,
			Type:    t,
			Width:   dims.Width,
			Height:  dims.Height,
			Chained: t == TypeFit,
		})
	}
	return NewList(specs...), nil
}
