package thumbnailscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-editor/internal/commands"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/thumbnails"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

const (
	createOperation = "thumbnails.create"
	deleteOperation = "thumbnails.delete"
)

// ErrThumbnailsFeatureDisabled is returned when thumbnail management is switched off.
var ErrThumbnailsFeatureDisabled = errors.New("thumbnails command: feature disabled")

// ThumbnailService is the subset of thumbnails.Service used by the handlers.
type ThumbnailService interface {
	Create(ctx context.Context, mediaID string, spec thumbnails.Spec, source thumbnails.Dimensions) (thumbnails.Spec, error)
	Delete(ctx context.Context, mediaID, size string) (bool, error)
}

var (
	_ command.Commander[CreateThumbnailCommand] = (*CreateThumbnailHandler)(nil)
	_ command.Commander[DeleteThumbnailCommand] = (*DeleteThumbnailHandler)(nil)
	_ ThumbnailService                          = (*thumbnails.Service)(nil)
)

// CreateThumbnailHandler registers thumbnails through the shared command handler.
type CreateThumbnailHandler struct {
	inner *commands.Handler[CreateThumbnailCommand]
}

// NewCreateThumbnailHandler binds a handler to service.
func NewCreateThumbnailHandler(service ThumbnailService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CreateThumbnailCommand]) *CreateThumbnailHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CreateThumbnailCommand) error {
		if !gates.thumbnailsEnabled() {
			return ErrThumbnailsFeatureDisabled
		}
		created, err := service.Create(ctx, msg.MediaID, msg.Spec(), msg.Source())
		if err != nil {
			return err
		}
		logging.WithMediaContext(baseLogger, msg.MediaID, created.Size()).
			Info("thumbnails.command.create.completed", "key", created.Key)
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateThumbnailCommand]{
		commands.WithLogger[CreateThumbnailCommand](baseLogger),
		commands.WithOperation[CreateThumbnailCommand](createOperation),
		commands.WithMessageFields(func(msg CreateThumbnailCommand) map[string]any {
			return map[string]any{
				"media_id": msg.MediaID,
				"size":     msg.Spec().Size(),
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateThumbnailHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateThumbnailCommand].
func (h *CreateThumbnailHandler) Execute(ctx context.Context, msg CreateThumbnailCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteThumbnailHandler removes thumbnails by size string.
type DeleteThumbnailHandler struct {
	inner *commands.Handler[DeleteThumbnailCommand]
}

// NewDeleteThumbnailHandler binds a handler to service. Deleting a size that
// does not exist is logged and treated as success.
func NewDeleteThumbnailHandler(service ThumbnailService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteThumbnailCommand]) *DeleteThumbnailHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeleteThumbnailCommand) error {
		if !gates.thumbnailsEnabled() {
			return ErrThumbnailsFeatureDisabled
		}
		deleted, err := service.Delete(ctx, msg.MediaID, msg.Size)
		if err != nil {
			return err
		}
		logging.WithMediaContext(baseLogger, msg.MediaID, msg.Size).
			Info("thumbnails.command.delete.completed", "deleted", deleted)
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteThumbnailCommand]{
		commands.WithLogger[DeleteThumbnailCommand](baseLogger),
		commands.WithOperation[DeleteThumbnailCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteThumbnailCommand) map[string]any {
			return map[string]any{
				"media_id": msg.MediaID,
				"size":     msg.Size,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteThumbnailHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteThumbnailCommand].
func (h *DeleteThumbnailHandler) Execute(ctx context.Context, msg DeleteThumbnailCommand) error {
	return h.inner.Execute(ctx, msg)
}
