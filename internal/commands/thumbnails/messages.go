package thumbnailscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-cms-editor/internal/thumbnails"
)

const (
	createThumbnailMessageType = "editor.thumbnails.create"
	deleteThumbnailMessageType = "editor.thumbnails.delete"
)

// CreateThumbnailCommand registers a thumbnail size for a media item.
// SourceWidth and SourceHeight are the resolution of the media item; the
// thumbnail may not exceed them.
type CreateThumbnailCommand struct {
	MediaID string `json:"media_id"`
	// Key is optional; the service derives a deterministic key when blank.
	Key          string `json:"key,omitempty"`
	Type         string `json:"type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Chained      bool   `json:"chained"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
}

// Type implements command.Message.
func (CreateThumbnailCommand) Type() string { return createThumbnailMessageType }

// Validate checks the media id, type, dimensions and source resolution.
func (cmd CreateThumbnailCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.MediaID, validation.By(requireText("editor.thumbnails.media_id_required", "media id is required"))),
		validation.Field(&cmd.Type, validation.By(func(value any) error {
			if _, err := thumbnails.ParseType(value.(string)); err != nil {
				return validation.NewError("editor.thumbnails.type_invalid", "type must be fit or crop")
			}
			return nil
		})),
		validation.Field(&cmd.Width, validation.Min(1).ErrorObject(dimensionError)),
		validation.Field(&cmd.Height, validation.Min(1).ErrorObject(dimensionError)),
		validation.Field(&cmd.SourceWidth, validation.Min(1).ErrorObject(sourceError)),
		validation.Field(&cmd.SourceHeight, validation.Min(1).ErrorObject(sourceError)),
	)
}

// Source returns the media item's resolution.
func (cmd CreateThumbnailCommand) Source() thumbnails.Dimensions {
	return thumbnails.Dimensions{Width: cmd.SourceWidth, Height: cmd.SourceHeight}
}

// Spec converts the command into a thumbnail spec. Validate must pass first.
func (cmd CreateThumbnailCommand) Spec() thumbnails.Spec {
	kind, _ := thumbnails.ParseType(cmd.Type)
	return thumbnails.Spec{
		Key:     strings.TrimSpace(cmd.Key),
		Type:    kind,
		Width:   cmd.Width,
		Height:  cmd.Height,
		Chained: cmd.Chained && kind == thumbnails.TypeFit,
	}
}

// DeleteThumbnailCommand removes the thumbnail identified by its size string.
type DeleteThumbnailCommand struct {
	MediaID string `json:"media_id"`
	Size    string `json:"size"`
}

// Type implements command.Message.
func (DeleteThumbnailCommand) Type() string { return deleteThumbnailMessageType }

// Validate checks the media id and the size string format.
func (cmd DeleteThumbnailCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.MediaID, validation.By(requireText("editor.thumbnails.media_id_required", "media id is required"))),
		validation.Field(&cmd.Size, validation.By(func(value any) error {
			if _, _, err := thumbnails.ParseSize(value.(string)); err != nil {
				return validation.NewError("editor.thumbnails.size_invalid", "size must look like fit300x200")
			}
			return nil
		})),
	)
}

var (
	dimensionError = validation.NewError("editor.thumbnails.dimension_invalid", "must be a positive integer")
	sourceError    = validation.NewError("editor.thumbnails.source_invalid", "source resolution must be positive")
)

func requireText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
