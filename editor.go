package editor

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	recordscmd "github.com/goliatone/go-cms-editor/internal/commands/records"
	thumbnailscmd "github.com/goliatone/go-cms-editor/internal/commands/thumbnails"
	"github.com/goliatone/go-cms-editor/internal/di"
	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/internal/session"
	"github.com/goliatone/go-cms-editor/internal/thumbnails"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// ErrCommandsDisabled is returned by command shortcuts when Features.Commands is off.
var ErrCommandsDisabled = errors.New("editor: commands feature is disabled")

// Category is the localized payload of a category.
type Category = records.Category

// Post is the localized payload of a blog post.
type Post = records.Post

// CategoryRecord maps locale ids to category payloads.
type CategoryRecord = records.Record[records.Category]

// PostRecord maps locale ids to post payloads.
type PostRecord = records.Record[records.Post]

// CategorySession edits one category record.
type CategorySession = session.Session[records.Category]

// PostSession edits one post record.
type PostSession = session.Session[records.Post]

type (
	LocaleSet        = locales.Set
	LocaleDescriptor = interfaces.LocaleDescriptor
	SubmitResult     = session.Result
	Outcome          = session.Outcome
	ErrorTree        = session.ErrorTree
	ThumbnailSpec    = thumbnails.Spec
	ThumbnailList    = thumbnails.List
	Dimensions       = thumbnails.Dimensions

	ImportMarkdownPostCommand = recordscmd.ImportMarkdownPostCommand
	DeleteRecordCommand       = recordscmd.DeleteRecordCommand
	CreateThumbnailCommand    = thumbnailscmd.CreateThumbnailCommand
	DeleteThumbnailCommand    = thumbnailscmd.DeleteThumbnailCommand
)

const (
	OutcomeSaved     = session.OutcomeSaved
	OutcomeBlocked   = session.OutcomeBlocked
	OutcomeRejected  = session.OutcomeRejected
	OutcomeDeferred  = session.OutcomeDeferred
	OutcomeUnchanged = session.OutcomeUnchanged
	OutcomeDiscarded = session.OutcomeDiscarded
	OutcomeFailed    = session.OutcomeFailed
)

// Option customises module wiring.
type Option = di.Option

// WithLoggerProvider overrides the logger provider chosen from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithBunDB supplies the database used by the bun storage provider.
func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

// WithLocaleRegistry replaces the locale registry built from configuration.
func WithLocaleRegistry(registry interfaces.LocaleRegistry) Option {
	return di.WithLocaleRegistry(registry)
}

// WithRemoteClient replaces the record backend.
func WithRemoteClient(client interfaces.RemoteClient) Option {
	return di.WithRemoteClient(client)
}

// WithThumbnailStore replaces the thumbnail backend.
func WithThumbnailStore(store interfaces.ThumbnailStore) Option {
	return di.WithThumbnailStore(store)
}

// WithCommandRegistry registers the command handlers with registry.
func WithCommandRegistry(registry di.CommandRegistry) Option {
	return di.WithCommandRegistry(registry)
}

// Module represents the top level editor runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an editor module using the provided configuration.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}

// Locales returns the registry's current locale set.
func (m *Module) Locales(ctx context.Context) (LocaleSet, error) {
	return locales.Load(ctx, m.container.LocaleRegistry())
}

// NewCategory opens a session for a new category seeded with one blank
// translation. An empty seed uses the first known locale.
func (m *Module) NewCategory(ctx context.Context, seed string) (*CategorySession, error) {
	return openNew(ctx, m, m.container.CategorySync(), seed)
}

// EditCategory loads the stored category id into a session.
func (m *Module) EditCategory(ctx context.Context, id string) (*CategorySession, error) {
	return openStored(ctx, m, m.container.CategorySync(), id)
}

// NewPost opens a session for a new post.
func (m *Module) NewPost(ctx context.Context, seed string) (*PostSession, error) {
	return openNew(ctx, m, m.container.PostSync(), seed)
}

// EditPost loads the stored post id into a session.
func (m *Module) EditPost(ctx context.Context, id string) (*PostSession, error) {
	return openStored(ctx, m, m.container.PostSync(), id)
}

// Thumbnails returns the thumbnail service.
func (m *Module) Thumbnails() *thumbnails.Service {
	return m.container.ThumbnailService()
}

// ImportMarkdownPost runs the markdown import command.
func (m *Module) ImportMarkdownPost(ctx context.Context, cmd ImportMarkdownPostCommand) error {
	set := m.container.RecordCommands()
	if set == nil || set.Import == nil {
		return ErrCommandsDisabled
	}
	return set.Import.Execute(ctx, cmd)
}

// DeleteRecord runs the delete record command.
func (m *Module) DeleteRecord(ctx context.Context, cmd DeleteRecordCommand) error {
	set := m.container.RecordCommands()
	if set == nil {
		return ErrCommandsDisabled
	}
	return set.Delete.Execute(ctx, cmd)
}

// CreateThumbnail runs the create thumbnail command.
func (m *Module) CreateThumbnail(ctx context.Context, cmd CreateThumbnailCommand) error {
	set := m.container.ThumbnailCommands()
	if set == nil {
		return ErrCommandsDisabled
	}
	return set.Create.Execute(ctx, cmd)
}

// DeleteThumbnail runs the delete thumbnail command.
func (m *Module) DeleteThumbnail(ctx context.Context, cmd DeleteThumbnailCommand) error {
	set := m.container.ThumbnailCommands()
	if set == nil {
		return ErrCommandsDisabled
	}
	return set.Delete.Execute(ctx, cmd)
}

// SeedThumbnail proposes a half resolution, chained fit thumbnail for source.
func SeedThumbnail(key string, source Dimensions) (ThumbnailSpec, error) {
	return thumbnails.Seed(key, source)
}

// SetThumbnailWidth applies a raw width input, recomputing the height when chained.
func SetThumbnailWidth(spec ThumbnailSpec, raw string, source Dimensions) (ThumbnailSpec, error) {
	return thumbnails.SetDimension(spec, thumbnails.AxisWidth, raw, source)
}

// SetThumbnailHeight applies a raw height input, recomputing the width when chained.
func SetThumbnailHeight(spec ThumbnailSpec, raw string, source Dimensions) (ThumbnailSpec, error) {
	return thumbnails.SetDimension(spec, thumbnails.AxisHeight, raw, source)
}

func newSession[T records.Translation[T]](ctx context.Context, m *Module, syncer *remote.RecordSync[T], opts ...session.Option[T]) (*session.Session[T], error) {
	base := []session.Option[T]{
		session.WithLogger[T](logging.SessionLogger(m.container.LoggerProvider())),
		session.WithResource[T](syncer.Resource()),
	}
	s := session.New[T](syncer, append(base, opts...)...)
	if err := s.Bind(ctx, m.container.LocaleRegistry()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openNew[T records.Translation[T]](ctx context.Context, m *Module, syncer *remote.RecordSync[T], seed string) (*session.Session[T], error) {
	s, err := newSession(ctx, m, syncer)
	if err != nil {
		return nil, err
	}
	if err := s.Open(seed); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openStored[T records.Translation[T]](ctx context.Context, m *Module, syncer *remote.RecordSync[T], id string) (*session.Session[T], error) {
	record, err := syncer.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	s, err := newSession(ctx, m, syncer, session.WithRecordID[T](id))
	if err != nil {
		return nil, err
	}
	if err := s.Load(id, record); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
