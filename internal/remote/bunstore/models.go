package bunstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordRow is the header of a translatable record.
type RecordRow struct {
	bun.BaseModel `bun:"table:editor_records,alias:er"`

	ID        uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	Resource  string    `bun:"resource,notnull"             json:"resource"`
	Version   int       `bun:"version,notnull,default:1"    json:"version"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// TranslationRow stores one locale of a record.
type TranslationRow struct {
	bun.BaseModel `bun:"table:editor_translations,alias:et"`

	ID       uuid.UUID      `bun:",pk,type:uuid"         json:"id"`
	RecordID uuid.UUID      `bun:"record_id,notnull,type:uuid" json:"record_id"`
	Resource string         `bun:"resource,notnull"      json:"resource"`
	Locale   string         `bun:"locale,notnull"        json:"locale"`
	Slug     string         `bun:"slug"                  json:"slug"`
	Position int            `bun:"position,notnull,default:0" json:"position"`
	Values   map[string]any `bun:"payload,type:jsonb"    json:"values"`
}

// ThumbnailRow registers a derived size for a media item.
type ThumbnailRow struct {
	bun.BaseModel `bun:"table:editor_thumbnails,alias:eth"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	MediaID   string    `bun:"media_id,notnull"   json:"media_id"`
	Size      string    `bun:"size,notnull"       json:"size"`
	Type      string    `bun:"type,notnull"       json:"type"`
	Width     int       `bun:"width,notnull"      json:"width"`
	Height    int       `bun:"height,notnull"     json:"height"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Models lists the tables Migrate creates.
func Models() []any {
	return []any{
		(*RecordRow)(nil),
		(*TranslationRow)(nil),
		(*ThumbnailRow)(nil),
	}
}
