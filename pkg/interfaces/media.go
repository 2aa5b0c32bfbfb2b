package interfaces

import "context"

// ThumbnailRecord describes a derived image size registered for a media item.
type ThumbnailRecord struct {
	Key     string `json:"key"`
	MediaID string `json:"media_id"`
	Size    string `json:"size"`
	Type    string `json:"type"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ThumbnailStore is the media storage contract. The store is the source of
// truth for which size strings already exist for a media id.
type ThumbnailStore interface {
	CreateThumbnail(ctx context.Context, record ThumbnailRecord) (ThumbnailRecord, error)
	DeleteThumbnail(ctx context.Context, mediaID, size string) (bool, error)
	ListThumbnails(ctx context.Context, mediaID string) ([]ThumbnailRecord, error)
}
