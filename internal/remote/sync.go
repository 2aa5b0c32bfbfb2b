package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// RecordSync adapts a RemoteClient to one translatable resource. It tracks
// the last version seen per record so updates carry optimistic concurrency
// tokens.
type RecordSync[T records.Translation[T]] struct {
	client   interfaces.RemoteClient
	resource string
	decode   Decoder[T]
	logger   interfaces.Logger

	mu       sync.Mutex
	versions map[string]int
}

// SyncOption configures a RecordSync.
type SyncOption func(*syncConfig)

type syncConfig struct {
	logger interfaces.Logger
}

// WithSyncLogger overrides the no-op logger.
func WithSyncLogger(logger interfaces.Logger) SyncOption {
	return func(cfg *syncConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewRecordSync constructs a syncer for resource (for example "categories").
func NewRecordSync[T records.Translation[T]](client interfaces.RemoteClient, resource string, decode Decoder[T], opts ...SyncOption) *RecordSync[T] {
	cfg := syncConfig{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &RecordSync[T]{
		client:   client,
		resource: strings.TrimSpace(resource),
		decode:   decode,
		logger:   cfg.logger,
		versions: map[string]int{},
	}
}

// Resource returns the remote resource name.
func (s *RecordSync[T]) Resource() string { return s.resource }

// Submit creates the record when id is empty and updates it otherwise. It
// returns the id the service knows the record by.
func (s *RecordSync[T]) Submit(ctx context.Context, id string, record records.Record[T]) (string, error) {
	logger := logging.WithRecordContext(s.logger, s.resource, id, "")
	doc := ToDocument(id, s.version(id), record)

	if id == "" {
		created, err := s.client.Create(ctx, s.resource, doc)
		if err != nil {
			logger.Debug("remote.create.failed", "error", err, "kind", Classify(err).String())
			return "", wrapUnclassified(err, "create")
		}
		s.remember(created, 1)
		logger.Debug("remote.create.succeeded", "record_id", created, "locales", record.Len())
		return created, nil
	}

	updated, err := s.client.Update(ctx, s.resource, doc)
	if err != nil {
		logger.Debug("remote.update.failed", "error", err, "kind", Classify(err).String())
		return "", wrapUnclassified(err, "update")
	}
	if !updated {
		return "", fmt.Errorf("%w: %s %s", ErrNotFound, s.resource, id)
	}
	if doc.Version > 0 {
		s.remember(id, doc.Version+1)
	}
	logger.Debug("remote.update.succeeded", "locales", record.Len())
	return id, nil
}

// Fetch reads a record by id.
func (s *RecordSync[T]) Fetch(ctx context.Context, id string) (records.Record[T], error) {
	docs, err := s.client.Read(ctx, s.resource, interfaces.RemoteFilter{ID: id})
	if err != nil {
		return records.Record[T]{}, wrapUnclassified(err, "read")
	}
	if len(docs) == 0 {
		return records.Record[T]{}, fmt.Errorf("%w: %s %s", ErrNotFound, s.resource, id)
	}
	s.remember(docs[0].ID, docs[0].Version)
	return FromDocument(docs[0], s.decode)
}

// FindBySlug returns the ids of records whose locale translation carries slug.
func (s *RecordSync[T]) FindBySlug(ctx context.Context, locale, slug string) ([]string, error) {
	docs, err := s.client.Read(ctx, s.resource, interfaces.RemoteFilter{Locale: locale, Slug: slug})
	if err != nil {
		return nil, wrapUnclassified(err, "read")
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// Delete removes the record. A missing record yields ErrNotFound.
func (s *RecordSync[T]) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Delete(ctx, s.resource, id)
	if err != nil {
		return wrapUnclassified(err, "delete")
	}
	if !deleted {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.resource, id)
	}
	s.mu.Lock()
	delete(s.versions, id)
	s.mu.Unlock()
	logging.WithRecordContext(s.logger, s.resource, id, "").Debug("remote.delete.succeeded")
	return nil
}

func (s *RecordSync[T]) version(id string) int {
	if id == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[id]
}

func (s *RecordSync[T]) remember(id string, version int) {
	if id == "" || version <= 0 {
		return
	}
	s.mu.Lock()
	s.versions[id] = version
	s.mu.Unlock()
}

func sortedLocales(translations map[string]map[string]any) []string {
	out := make([]string, 0, len(translations))
	for locale := range translations {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}
