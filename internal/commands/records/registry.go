package recordscmd

import (
	"github.com/goliatone/go-cms-editor/internal/commands"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterRecordCommands. Import is
// nil when no post syncer was supplied.
type HandlerSet struct {
	Delete *DeleteRecordHandler
	Import *ImportMarkdownPostHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	posts      PostSyncer
	deleteOpts []commands.HandlerOption[DeleteRecordCommand]
	importOpts []commands.HandlerOption[ImportMarkdownPostCommand]
}

// WithPostSyncer enables the markdown import handler.
func WithPostSyncer(syncer PostSyncer) Option {
	return func(cfg *options) {
		cfg.posts = syncer
	}
}

// WithDeleteHandlerOptions forwards options to the delete handler.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeleteRecordCommand]) Option {
	return func(cfg *options) {
		cfg.deleteOpts = append(cfg.deleteOpts, opts...)
	}
}

// WithImportHandlerOptions forwards options to the import handler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportMarkdownPostCommand]) Option {
	return func(cfg *options) {
		cfg.importOpts = append(cfg.importOpts, opts...)
	}
}

// RegisterRecordCommands builds record handlers and registers them with reg
// when it is non-nil.
func RegisterRecordCommands(reg CommandRegistry, deleters map[string]RecordDeleter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "records")
	set := &HandlerSet{
		Delete: NewDeleteRecordHandler(deleters, logger, cfg.deleteOpts...),
	}
	if cfg.posts != nil {
		set.Import = NewImportMarkdownPostHandler(cfg.posts, logger, gates, cfg.importOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Delete); err != nil {
			return nil, err
		}
		if set.Import != nil {
			if err := reg.RegisterCommand(set.Import); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
