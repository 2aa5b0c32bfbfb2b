package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	recordscmd "github.com/goliatone/go-cms-editor/internal/commands/records"
	thumbnailscmd "github.com/goliatone/go-cms-editor/internal/commands/thumbnails"
	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/logging/console"
	"github.com/goliatone/go-cms-editor/internal/logging/gologger"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/internal/remote/bunstore"
	"github.com/goliatone/go-cms-editor/internal/runtimeconfig"
	"github.com/goliatone/go-cms-editor/internal/thumbnails"
	"github.com/goliatone/go-cms-editor/internal/validation"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

const (
	// ResourceCategories names the category resource on the remote service.
	ResourceCategories = "categories"
	// ResourcePosts names the post resource on the remote service.
	ResourcePosts = "posts"
)

// CommandRegistry is the registration contract for command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	localeRegistry interfaces.LocaleRegistry
	remoteClient   interfaces.RemoteClient
	thumbnailStore interfaces.ThumbnailStore
	metaValidator  *validation.MetaValidator

	thumbnailSvc *thumbnails.Service
	categorySync *remote.RecordSync[records.Category]
	postSync     *remote.RecordSync[records.Post]

	commandRegistry   CommandRegistry
	recordCommands    *recordscmd.HandlerSet
	thumbnailCommands *thumbnailscmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database for the bun storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLocaleRegistry replaces the configured locale registry.
func WithLocaleRegistry(registry interfaces.LocaleRegistry) Option {
	return func(c *Container) {
		c.localeRegistry = registry
	}
}

// WithRemoteClient replaces the configured remote client.
func WithRemoteClient(client interfaces.RemoteClient) Option {
	return func(c *Container) {
		c.remoteClient = client
	}
}

// WithThumbnailStore replaces the configured thumbnail store.
func WithThumbnailStore(store interfaces.ThumbnailStore) Option {
	return func(c *Container) {
		c.thumbnailStore = store
	}
}

// WithCommandRegistry registers command handlers with registry.
func WithCommandRegistry(registry CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = registry
	}
}

// NewContainer validates cfg and builds every collaborator it names.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMetaValidator(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(ctx); err != nil {
		return nil, err
	}
	if err := c.configureLocales(ctx); err != nil {
		return nil, err
	}
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "editor").Info("editor.container.ready",
		"storage", cfg.StorageProvider(),
		"locales", len(cfg.Locales),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = nopProvider{}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureMetaValidator() error {
	validator, err := validation.NewMetaValidator(c.Config.Posts.MetaSchema)
	if err != nil {
		return fmt.Errorf("post meta schema: %w", err)
	}
	c.metaValidator = validator
	return nil
}

func (c *Container) documentValidators() map[string][]remote.DocumentValidator {
	return map[string][]remote.DocumentValidator{
		ResourceCategories: {remote.PayloadValidator(records.CategoryFromValues)},
		ResourcePosts: {
			remote.PayloadValidator(records.PostFromValues),
			remote.MetaSchemaValidator(c.metaValidator),
		},
	}
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.remoteClient != nil && c.thumbnailStore != nil {
		return nil
	}

	logger := logging.RemoteLogger(c.loggerProvider)
	validators := c.documentValidators()

	if c.Config.StorageProvider() != runtimeconfig.StorageBun {
		memoryOpts := make([]remote.MemoryOption, 0, len(validators))
		for resource, list := range validators {
			memoryOpts = append(memoryOpts, remote.WithValidators(resource, list...))
		}
		if c.remoteClient == nil {
			c.remoteClient = remote.NewMemoryClient(memoryOpts...)
		}
		if c.thumbnailStore == nil {
			c.thumbnailStore = remote.NewMemoryThumbnailStore()
		}
		return nil
	}

	if c.bunDB == nil {
		db, err := bunstore.Open(c.Config.Storage.Dialect, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.Config.Storage.Migrate {
		if err := bunstore.Migrate(ctx, c.bunDB); err != nil {
			return err
		}
		if err := locales.Migrate(ctx, c.bunDB); err != nil {
			return err
		}
	}

	c.configureCacheDefaults()

	storeOpts := []bunstore.Option{bunstore.WithLogger(logger)}
	if c.cacheService != nil {
		storeOpts = append(storeOpts, bunstore.WithCache(c.cacheService, c.keySerializer))
	}
	for resource, list := range validators {
		storeOpts = append(storeOpts, bunstore.WithValidators(resource, list...))
	}
	store := bunstore.New(c.bunDB, storeOpts...)
	if c.remoteClient == nil {
		c.remoteClient = store
	}
	if c.thumbnailStore == nil {
		c.thumbnailStore = store
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if ttl := c.Config.Cache.DefaultTTL; ttl > 0 {
			cfg.TTL = ttl
		} else {
			cfg.TTL = time.Minute
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureLocales(ctx context.Context) error {
	if c.localeRegistry != nil {
		return nil
	}

	descriptors := make([]locales.Descriptor, 0, len(c.Config.Locales))
	for _, locale := range c.Config.Locales {
		desc, err := locales.NewDescriptor(locale.Code, locale.DisplayName)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, desc)
	}
	if len(descriptors) == 0 {
		desc, err := locales.NewDescriptor(c.Config.DefaultLocale, "")
		if err != nil {
			return err
		}
		descriptors = append(descriptors, desc)
	}

	if c.bunDB != nil {
		registry := locales.NewBunRegistry(c.bunDB)
		if err := registry.Seed(ctx, descriptors...); err != nil {
			return fmt.Errorf("seed locales: %w", err)
		}
		c.localeRegistry = registry
		return nil
	}
	c.localeRegistry = locales.NewMemoryRegistry(descriptors...)
	return nil
}

func (c *Container) configureServices() {
	logger := logging.RemoteLogger(c.loggerProvider)
	c.categorySync = remote.NewRecordSync(c.remoteClient, ResourceCategories, records.CategoryFromValues, remote.WithSyncLogger(logger))
	c.postSync = remote.NewRecordSync(c.remoteClient, ResourcePosts, records.PostFromValues, remote.WithSyncLogger(logger))

	c.thumbnailSvc = thumbnails.NewService(c.thumbnailStore,
		thumbnails.WithLogger(logging.ThumbnailsLogger(c.loggerProvider)),
		thumbnails.WithMaxPerMedia(c.Config.Thumbnails.MaxPerMedia),
	)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}

	features := c.Config.Features
	deleters := map[string]recordscmd.RecordDeleter{
		ResourceCategories: c.categorySync,
		ResourcePosts:      c.postSync,
	}
	recordSet, err := recordscmd.RegisterRecordCommands(c.commandRegistry, deleters, c.loggerProvider,
		recordscmd.FeatureGates{
			MarkdownImportEnabled: func() bool { return features.MarkdownImport },
		},
		recordscmd.WithPostSyncer(c.postSync),
	)
	if err != nil {
		return fmt.Errorf("register record commands: %w", err)
	}
	c.recordCommands = recordSet

	thumbnailSet, err := thumbnailscmd.RegisterThumbnailCommands(c.commandRegistry, c.thumbnailSvc, c.loggerProvider,
		thumbnailscmd.FeatureGates{
			ThumbnailsEnabled: func() bool { return features.Thumbnails },
		},
	)
	if err != nil {
		return fmt.Errorf("register thumbnail commands: %w", err)
	}
	c.thumbnailCommands = thumbnailSet
	return nil
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		return c.bunDB.Close()
	}
	return nil
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// LocaleRegistry returns the locale registry sessions bind to.
func (c *Container) LocaleRegistry() interfaces.LocaleRegistry {
	return c.localeRegistry
}

// RemoteClient returns the backend behind the record syncers.
func (c *Container) RemoteClient() interfaces.RemoteClient {
	return c.remoteClient
}

// ThumbnailStore returns the backend behind the thumbnail service.
func (c *Container) ThumbnailStore() interfaces.ThumbnailStore {
	return c.thumbnailStore
}

// CategorySync returns the category syncer.
func (c *Container) CategorySync() *remote.RecordSync[records.Category] {
	return c.categorySync
}

// PostSync returns the post syncer.
func (c *Container) PostSync() *remote.RecordSync[records.Post] {
	return c.postSync
}

// ThumbnailService returns the thumbnail service.
func (c *Container) ThumbnailService() *thumbnails.Service {
	return c.thumbnailSvc
}

// RecordCommands returns the record command handlers, or nil when commands are disabled.
func (c *Container) RecordCommands() *recordscmd.HandlerSet {
	return c.recordCommands
}

// ThumbnailCommands returns the thumbnail command handlers, or nil when commands are disabled.
func (c *Container) ThumbnailCommands() *thumbnailscmd.HandlerSet {
	return c.thumbnailCommands
}

type nopProvider struct{}

func (nopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
