package thumbnailscmd

import (
	"errors"

	"github.com/goliatone/go-cms-editor/internal/commands"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterThumbnailCommands.
type HandlerSet struct {
	Create *CreateThumbnailHandler
	Delete *DeleteThumbnailHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	createOpts []commands.HandlerOption[CreateThumbnailCommand]
	deleteOpts []commands.HandlerOption[DeleteThumbnailCommand]
}

// WithCreateHandlerOptions forwards options to the create handler.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateThumbnailCommand]) Option {
	return func(cfg *options) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

// WithDeleteHandlerOptions forwards options to the delete handler.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeleteThumbnailCommand]) Option {
	return func(cfg *options) {
		cfg.deleteOpts = append(cfg.deleteOpts, opts...)
	}
}

// RegisterThumbnailCommands builds the thumbnail handlers and registers them
// with reg when it is non-nil.
func RegisterThumbnailCommands(reg CommandRegistry, service ThumbnailService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("thumbnail command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "thumbnails")
	set := &HandlerSet{
		Create: NewCreateThumbnailHandler(service, logger, gates, cfg.createOpts...),
		Delete: NewDeleteThumbnailHandler(service, logger, gates, cfg.deleteOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Create); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Delete); err != nil {
			return nil, err
		}
	}
	return set, nil
}
