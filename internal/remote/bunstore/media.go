package bunstore

import (
	"context"
	"fmt"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-editor/internal/identity"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

func (s *Store) CreateThumbnail(ctx context.Context, record interfaces.ThumbnailRecord) (interfaces.ThumbnailRecord, error) {
	record.MediaID = strings.TrimSpace(record.MediaID)
	record.Size = strings.ToLower(strings.TrimSpace(record.Size))
	if record.MediaID == "" || record.Size == "" {
		return interfaces.ThumbnailRecord{}, &remote.FieldValidationError{Fields: map[string]string{"size": "required"}}
	}

	existing, err := s.findThumbnail(ctx, record.MediaID, record.Size)
	if err != nil {
		return interfaces.ThumbnailRecord{}, err
	}
	if existing != nil {
		return interfaces.ThumbnailRecord{}, &remote.DuplicateKeyError{Field: "size", Value: record.Size}
	}

	if record.Key == "" {
		record.Key = identity.ThumbnailKey(record.MediaID, record.Size)
	}
	id, err := uuid.Parse(record.Key)
	if err != nil {
		id = identity.UUID("go-cms-editor:thumbnail-key:" + record.Key)
	}
	row := &ThumbnailRow{
		ID:        id,
		MediaID:   record.MediaID,
		Size:      record.Size,
		Type:      record.Type,
		Width:     record.Width,
		Height:    record.Height,
		CreatedAt: s.now(),
	}
	if _, err := s.thumbnails.Create(ctx, row); err != nil {
		return interfaces.ThumbnailRecord{}, fmt.Errorf("thumbnail repository error: %w", err)
	}
	logging.WithMediaContext(s.logger, record.MediaID, record.Size).Debug("bunstore.thumbnail.created")
	return record, nil
}

func (s *Store) DeleteThumbnail(ctx context.Context, mediaID, size string) (bool, error) {
	existing, err := s.findThumbnail(ctx, strings.TrimSpace(mediaID), strings.ToLower(strings.TrimSpace(size)))
	if err != nil || existing == nil {
		return false, err
	}
	if err := s.thumbnails.Delete(ctx, existing); err != nil {
		return false, fmt.Errorf("thumbnail repository error: %w", err)
	}
	return true, nil
}

func (s *Store) ListThumbnails(ctx context.Context, mediaID string) ([]interfaces.ThumbnailRecord, error) {
	rows, _, err := s.thumbnails.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.media_id = ?", strings.TrimSpace(mediaID)).
				OrderExpr("?TableAlias.created_at ASC, ?TableAlias.size ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("thumbnail repository error: %w", err)
	}
	out := make([]interfaces.ThumbnailRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, interfaces.ThumbnailRecord{
			Key:     row.ID.String(),
			MediaID: row.MediaID,
			Size:    row.Size,
			Type:    row.Type,
			Width:   row.Width,
			Height:  row.Height,
		})
	}
	return out, nil
}

func (s *Store) findThumbnail(ctx context.Context, mediaID, size string) (*ThumbnailRow, error) {
	rows, _, err := s.thumbnails.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.media_id = ?", mediaID).
				Where("?TableAlias.size = ?", size).
				Limit(1)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("thumbnail repository error: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
