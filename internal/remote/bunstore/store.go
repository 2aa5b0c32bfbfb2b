package bunstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cms-editor/internal/identity"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// Store implements the remote CRUD and thumbnail contracts on a bun database.
type Store struct {
	db           *bun.DB
	records      repository.Repository[*RecordRow]
	translations repository.Repository[*TranslationRow]
	thumbnails   repository.Repository[*ThumbnailRow]
	validators   map[string][]remote.DocumentValidator
	logger       interfaces.Logger
	now          func() time.Time
}

var (
	_ interfaces.RemoteClient   = (*Store)(nil)
	_ interfaces.ThumbnailStore = (*Store)(nil)
)

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	validators    map[string][]remote.DocumentValidator
	logger        interfaces.Logger
	now           func() time.Time
}

// WithCache wraps the record repository with a read cache.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(cfg *storeConfig) {
		cfg.cacheService = service
		cfg.keySerializer = serializer
	}
}

// WithValidators registers document validators for resource.
func WithValidators(resource string, validators ...remote.DocumentValidator) Option {
	return func(cfg *storeConfig) {
		cfg.validators[resource] = append(cfg.validators[resource], validators...)
	}
}

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(cfg *storeConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(cfg *storeConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// New constructs a store. Tables must exist, see Migrate.
func New(db *bun.DB, opts ...Option) *Store {
	cfg := storeConfig{
		validators: map[string][]remote.DocumentValidator{},
		logger:     logging.NoOp(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	records := newRecordRepository(db)
	if cfg.cacheService != nil && cfg.keySerializer != nil {
		records = repositorycache.New(records, cfg.cacheService, cfg.keySerializer)
	}

	return &Store{
		db:           db,
		records:      records,
		translations: newTranslationRepository(db),
		thumbnails:   newThumbnailRepository(db),
		validators:   cfg.validators,
		logger:       cfg.logger,
		now:          cfg.now,
	}
}

func newRecordRepository(db *bun.DB) repository.Repository[*RecordRow] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*RecordRow]{
		NewRecord: func() *RecordRow { return &RecordRow{} },
		GetID: func(r *RecordRow) uuid.UUID {
			return r.ID
		},
		SetID: func(r *RecordRow, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *RecordRow) string {
			return r.ID.String()
		},
	})
}

func newTranslationRepository(db *bun.DB) repository.Repository[*TranslationRow] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationRow]{
		NewRecord: func() *TranslationRow { return &TranslationRow{} },
		GetID: func(t *TranslationRow) uuid.UUID {
			return t.ID
		},
		SetID: func(t *TranslationRow, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *TranslationRow) string {
			return t.ID.String()
		},
	})
}

func newThumbnailRepository(db *bun.DB) repository.Repository[*ThumbnailRow] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ThumbnailRow]{
		NewRecord: func() *ThumbnailRow { return &ThumbnailRow{} },
		GetID: func(t *ThumbnailRow) uuid.UUID {
			return t.ID
		},
		SetID: func(t *ThumbnailRow, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *ThumbnailRow) string {
			return t.ID.String()
		},
	})
}

func (s *Store) Create(ctx context.Context, resource string, doc interfaces.RemoteDocument) (string, error) {
	if err := remote.ValidateDocument(doc, s.validators[resource]...); err != nil {
		return "", err
	}
	id := uuid.New()
	if trimmed := strings.TrimSpace(doc.ID); trimmed != "" {
		parsed, err := uuid.Parse(trimmed)
		if err != nil {
			return "", &remote.FieldValidationError{Fields: map[string]string{"id": "must be a uuid"}}
		}
		id = parsed
	}
	if err := s.checkSlugs(ctx, resource, id, doc); err != nil {
		return "", err
	}

	now := s.now()
	if _, err := s.records.Create(ctx, &RecordRow{
		ID:        id,
		Resource:  resource,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return "", fmt.Errorf("%s repository error: %w", resource, err)
	}
	if err := s.replaceTranslations(ctx, resource, id, doc); err != nil {
		return "", err
	}
	logging.WithRecordContext(s.logger, resource, id.String(), "").Debug("bunstore.record.created")
	return id.String(), nil
}

func (s *Store) Read(ctx context.Context, resource string, filter interfaces.RemoteFilter) ([]interfaces.RemoteDocument, error) {
	var rows []*RecordRow
	switch {
	case filter.ID != "":
		row, err := s.getRecord(ctx, resource, filter.ID)
		if err != nil {
			if remote.Classify(err) == remote.KindNotFound {
				return nil, nil
			}
			return nil, err
		}
		rows = []*RecordRow{row}
	default:
		list, _, err := s.records.List(ctx,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.resource = ?", resource).
					OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC")
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("%s repository error: %w", resource, err)
		}
		rows = list
	}

	out := make([]interfaces.RemoteDocument, 0, len(rows))
	for _, row := range rows {
		doc, err := s.document(ctx, row)
		if err != nil {
			return nil, err
		}
		if !matchesFilter(doc, filter) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, resource string, doc interfaces.RemoteDocument) (bool, error) {
	row, err := s.getRecord(ctx, resource, doc.ID)
	if err != nil {
		if remote.Classify(err) == remote.KindNotFound {
			return false, nil
		}
		return false, err
	}
	if doc.Version != 0 && doc.Version != row.Version {
		return false, remote.ErrUpdateConflict
	}
	if err := remote.ValidateDocument(doc, s.validators[resource]...); err != nil {
		return false, err
	}
	if err := s.checkSlugs(ctx, resource, row.ID, doc); err != nil {
		return false, err
	}

	row.Version++
	row.UpdatedAt = s.now()
	if _, err := s.records.Update(ctx, row); err != nil {
		return false, fmt.Errorf("%s repository error: %w", resource, err)
	}
	if err := s.replaceTranslations(ctx, resource, row.ID, doc); err != nil {
		return false, err
	}
	logging.WithRecordContext(s.logger, resource, row.ID.String(), "").Debug("bunstore.record.updated", "version", row.Version)
	return true, nil
}

func (s *Store) Delete(ctx context.Context, resource string, key string) (bool, error) {
	row, err := s.getRecord(ctx, resource, key)
	if err != nil {
		if remote.Classify(err) == remote.KindNotFound {
			return false, nil
		}
		return false, err
	}
	if err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TranslationRow)(nil)).
			Where("?TableAlias.record_id = ?", row.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete translations: %w", err)
		}
		return nil
	}); err != nil {
		return false, err
	}
	if err := s.records.Delete(ctx, row); err != nil {
		return false, fmt.Errorf("%s repository error: %w", resource, err)
	}
	return true, nil
}

func (s *Store) getRecord(ctx context.Context, resource, id string) (*RecordRow, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s", remote.ErrNotFound, resource, id)
	}
	row, err := s.records.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, mapRepositoryError(err, resource, id)
	}
	if row.Resource != resource {
		return nil, fmt.Errorf("%w: %s %s", remote.ErrNotFound, resource, id)
	}
	return row, nil
}

func (s *Store) document(ctx context.Context, row *RecordRow) (interfaces.RemoteDocument, error) {
	translations, _, err := s.translations.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.record_id = ?", row.ID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	if err != nil {
		return interfaces.RemoteDocument{}, fmt.Errorf("%s translations: %w", row.Resource, err)
	}
	doc := interfaces.RemoteDocument{
		ID:           row.ID.String(),
		Version:      row.Version,
		Translations: make(map[string]map[string]any, len(translations)),
	}
	for _, tr := range translations {
		values := make(map[string]any, len(tr.Values))
		for key, value := range tr.Values {
			values[key] = value
		}
		doc.Translations[tr.Locale] = values
	}
	return doc, nil
}

func (s *Store) replaceTranslations(ctx context.Context, resource string, recordID uuid.UUID, doc interfaces.RemoteDocument) error {
	locales := make([]string, 0, len(doc.Translations))
	for locale := range doc.Translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TranslationRow)(nil)).
			Where("?TableAlias.record_id = ?", recordID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete translations: %w", err)
		}
		for position, locale := range locales {
			values := doc.Translations[locale]
			row := &TranslationRow{
				ID:       identity.TranslationUUID(recordID, locale),
				RecordID: recordID,
				Resource: resource,
				Locale:   locale,
				Slug:     slugOf(values),
				Position: position,
				Values:   values,
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return fmt.Errorf("insert %s translation: %w", locale, err)
			}
		}
		return nil
	})
}

func (s *Store) checkSlugs(ctx context.Context, resource string, recordID uuid.UUID, doc interfaces.RemoteDocument) error {
	locales := make([]string, 0, len(doc.Translations))
	for locale := range doc.Translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		slug := slugOf(doc.Translations[locale])
		if slug == "" {
			continue
		}
		clashes, _, err := s.translations.List(ctx,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.resource = ?", resource).
					Where("?TableAlias.locale = ?", locale).
					Where("?TableAlias.slug = ?", slug).
					Where("?TableAlias.record_id != ?", recordID).
					Limit(1)
			}),
		)
		if err != nil {
			return fmt.Errorf("%s slug lookup: %w", resource, err)
		}
		if len(clashes) > 0 {
			return &remote.DuplicateKeyError{Locale: locale, Field: "slug", Value: slug}
		}
	}
	return nil
}

func matchesFilter(doc interfaces.RemoteDocument, filter interfaces.RemoteFilter) bool {
	if filter.Locale == "" && filter.Slug == "" {
		return true
	}
	for locale, values := range doc.Translations {
		if filter.Locale != "" && locale != filter.Locale {
			continue
		}
		if filter.Slug != "" && slugOf(values) != filter.Slug {
			continue
		}
		return true
	}
	return false
}

func slugOf(values map[string]any) string {
	slug, _ := values["slug"].(string)
	return strings.TrimSpace(slug)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s %s", remote.ErrNotFound, resource, key)
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
