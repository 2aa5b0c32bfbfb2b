package recordscmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-editor/internal/commands"
	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

const (
	deleteOperation = "records.delete"
	importOperation = "records.import_markdown_post"
)

var (
	// ErrUnknownResource is returned when no deleter is registered for a resource.
	ErrUnknownResource = errors.New("records command: unknown resource")
	// ErrMarkdownImportDisabled is returned when markdown import is switched off.
	ErrMarkdownImportDisabled = errors.New("records command: markdown import disabled")
	// ErrImportLocaleRequired is returned when neither the document nor the command names a locale.
	ErrImportLocaleRequired = errors.New("records command: import locale required")
	// ErrAmbiguousSlug is returned when more than one record carries the imported slug.
	ErrAmbiguousSlug = errors.New("records command: slug matches several records")
)

// RecordDeleter removes records of one resource.
type RecordDeleter interface {
	Delete(ctx context.Context, id string) error
}

// PostSyncer is the subset of remote.RecordSync[records.Post] used by the import handler.
type PostSyncer interface {
	Submit(ctx context.Context, id string, record records.Record[records.Post]) (string, error)
	Fetch(ctx context.Context, id string) (records.Record[records.Post], error)
	FindBySlug(ctx context.Context, locale, slug string) ([]string, error)
}

var (
	_ command.Commander[DeleteRecordCommand]       = (*DeleteRecordHandler)(nil)
	_ command.Commander[ImportMarkdownPostCommand] = (*ImportMarkdownPostHandler)(nil)
	_ PostSyncer                                   = (*remote.RecordSync[records.Post])(nil)
	_ RecordDeleter                                = (*remote.RecordSync[records.Category])(nil)
)

// DeleteRecordHandler deletes records through the deleter registered for
// the command's resource.
type DeleteRecordHandler struct {
	inner *commands.Handler[DeleteRecordCommand]
}

// NewDeleteRecordHandler binds a handler to deleters keyed by resource name.
func NewDeleteRecordHandler(deleters map[string]RecordDeleter, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteRecordCommand]) *DeleteRecordHandler {
	baseLogger := commands.EnsureLogger(logger)
	bound := make(map[string]RecordDeleter, len(deleters))
	for resource, deleter := range deleters {
		if deleter != nil {
			bound[strings.TrimSpace(resource)] = deleter
		}
	}

	exec := func(ctx context.Context, msg DeleteRecordCommand) error {
		resource := strings.TrimSpace(msg.Resource)
		deleter, ok := bound[resource]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
		}
		if err := deleter.Delete(ctx, strings.TrimSpace(msg.RecordID)); err != nil {
			return err
		}
		logging.WithRecordContext(baseLogger, resource, msg.RecordID, "").Info("records.command.delete.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteRecordCommand]{
		commands.WithLogger[DeleteRecordCommand](baseLogger),
		commands.WithOperation[DeleteRecordCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteRecordCommand) map[string]any {
			return map[string]any{
				"resource":  msg.Resource,
				"record_id": msg.RecordID,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteRecordHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteRecordCommand].
func (h *DeleteRecordHandler) Execute(ctx context.Context, msg DeleteRecordCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportMarkdownPostHandler converts Markdown documents into post translations.
type ImportMarkdownPostHandler struct {
	inner *commands.Handler[ImportMarkdownPostCommand]
}

// NewImportMarkdownPostHandler binds a handler to the post syncer.
func NewImportMarkdownPostHandler(syncer PostSyncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportMarkdownPostCommand]) *ImportMarkdownPostHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportMarkdownPostCommand) error {
		if !gates.markdownImportEnabled() {
			return ErrMarkdownImportDisabled
		}

		post, locale, err := records.PostFromMarkdown(msg.Source)
		if err != nil {
			return err
		}
		if locale == "" {
			locale = locales.Canonical(msg.Locale)
		}
		if locale == "" {
			return ErrImportLocaleRequired
		}
		if err := post.Validate(); err != nil {
			return commands.WrapValidationError(err)
		}

		id := strings.TrimSpace(msg.RecordID)
		if id == "" {
			matches, err := syncer.FindBySlug(ctx, locale, post.Slug)
			if err != nil {
				return err
			}
			switch len(matches) {
			case 0:
			case 1:
				id = matches[0]
			default:
				return fmt.Errorf("%w: %s/%s", ErrAmbiguousSlug, locale, post.Slug)
			}
		}

		record := records.New[records.Post]()
		if id != "" {
			record, err = syncer.Fetch(ctx, id)
			if err != nil {
				return err
			}
		}
		if record.Has(locale) {
			record, err = records.Replace(record, locale, post)
		} else {
			record, err = records.Add(record, locale, post)
		}
		if err != nil {
			return err
		}

		savedID, err := syncer.Submit(ctx, id, record)
		if err != nil {
			return err
		}
		logging.WithRecordContext(baseLogger, "posts", savedID, locale).
			Info("records.command.import_markdown_post.completed", "created", id == "")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportMarkdownPostCommand]{
		commands.WithLogger[ImportMarkdownPostCommand](baseLogger),
		commands.WithOperation[ImportMarkdownPostCommand](importOperation),
		commands.WithMessageFields(func(msg ImportMarkdownPostCommand) map[string]any {
			fields := map[string]any{"source_bytes": len(msg.Source)}
			if msg.RecordID != "" {
				fields["record_id"] = msg.RecordID
			}
			if msg.Locale != "" {
				fields["locale"] = msg.Locale
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportMarkdownPostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportMarkdownPostCommand].
func (h *ImportMarkdownPostHandler) Execute(ctx context.Context, msg ImportMarkdownPostCommand) error {
	return h.inner.Execute(ctx, msg)
}
