package remote_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/internal/validation"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

func categoryRecord(entries ...records.Entry[records.Category]) records.Record[records.Category] {
	return records.FromEntries(entries...)
}

func entry(locale, title, slug string) records.Entry[records.Category] {
	return records.Entry[records.Category]{Locale: locale, Payload: records.Category{Title: title, Slug: slug}}
}

func newCategorySync(client interfaces.RemoteClient) *remote.RecordSync[records.Category] {
	return remote.NewRecordSync(client, "categories", records.CategoryFromValues)
}

func TestRecordSyncCreateThenFetch(t *testing.T) {
	client := remote.NewMemoryClient()
	syncer := newCategorySync(client)
	ctx := context.Background()

	record := categoryRecord(entry("en", "Hello", "hello"), entry("fr", "Bonjour", "bonjour"))
	id, err := syncer.Submit(ctx, "", record)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	fetched, err := syncer.Fetch(ctx, id)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !fetched.Equal(record) {
		t.Fatalf("expected fetched record to equal submitted one")
	}

	ids, err := syncer.FindBySlug(ctx, "fr", "bonjour")
	if err != nil || len(ids) != 1 || ids[0] != id {
		t.Fatalf("expected slug lookup to find %s, got %v (%v)", id, ids, err)
	}
}

func TestRecordSyncDuplicateSlugAcrossRecords(t *testing.T) {
	client := remote.NewMemoryClient()
	syncer := newCategorySync(client)
	ctx := context.Background()

	if _, err := syncer.Submit(ctx, "", categoryRecord(entry("fr", "Bonjour", "bonjour"))); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := syncer.Submit(ctx, "", categoryRecord(entry("en", "Hi", "hi"), entry("fr", "Salut", "bonjour")))
	var dup *remote.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if dup.Locale != "fr" || dup.Field != "slug" || dup.Value != "bonjour" {
		t.Fatalf("unexpected duplicate details %+v", dup)
	}
	if remote.Classify(err) != remote.KindDuplicateKey {
		t.Fatalf("expected duplicate classification, got %s", remote.Classify(err))
	}
}

func TestRecordSyncStaleVersionConflicts(t *testing.T) {
	client := remote.NewMemoryClient()
	first := newCategorySync(client)
	second := newCategorySync(client)
	ctx := context.Background()

	id, err := first.Submit(ctx, "", categoryRecord(entry("en", "Hello", "hello")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := second.Fetch(ctx, id); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := first.Submit(ctx, id, categoryRecord(entry("en", "Hello again", "hello"))); err != nil {
		t.Fatalf("first update: %v", err)
	}
	_, err = second.Submit(ctx, id, categoryRecord(entry("en", "Stale", "hello")))
	if !errors.Is(err, remote.ErrUpdateConflict) {
		t.Fatalf("expected update conflict, got %v", err)
	}
}

func TestRecordSyncPayloadValidation(t *testing.T) {
	client := remote.NewMemoryClient(
		remote.WithValidators("categories", remote.PayloadValidator(records.CategoryFromValues)),
	)
	syncer := newCategorySync(client)

	_, err := syncer.Submit(context.Background(), "", categoryRecord(entry("en", "", "hello")))
	var fieldErr *remote.FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected field validation error, got %v", err)
	}
	if _, ok := fieldErr.Fields["translations.en.title"]; !ok {
		t.Fatalf("expected translations.en.title path, got %v", fieldErr.Fields)
	}

	_, err = syncer.Submit(context.Background(), "", categoryRecord())
	if !errors.As(err, &fieldErr) || fieldErr.Fields["translations"] != "required" {
		t.Fatalf("expected translations required, got %v", err)
	}
}

func TestMetaSchemaValidatorPaths(t *testing.T) {
	metaValidator, err := validation.NewMetaValidator(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reading_time": map[string]any{"type": "integer"},
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	client := remote.NewMemoryClient(remote.WithValidators("posts", remote.MetaSchemaValidator(metaValidator)))
	syncer := remote.NewRecordSync(client, "posts", records.PostFromValues)

	post := records.Post{Title: "Hi", Slug: "hi", Meta: map[string]any{"reading_time": "soon"}}
	_, err = syncer.Submit(context.Background(), "", records.FromEntries(records.Entry[records.Post]{Locale: "en", Payload: post}))
	var fieldErr *remote.FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected field validation error, got %v", err)
	}
	if _, ok := fieldErr.Fields["translations.en.meta.reading_time"]; !ok {
		t.Fatalf("expected meta path, got %v", fieldErr.Fields)
	}
}

type failingClient struct {
	remote.MemoryClient
	err error
}

func (c *failingClient) Create(context.Context, string, interfaces.RemoteDocument) (string, error) {
	return "", c.err
}

func TestRecordSyncWrapsUnclassifiedErrors(t *testing.T) {
	cause := errors.New("connection reset")
	syncer := newCategorySync(&failingClient{err: cause})

	_, err := syncer.Submit(context.Background(), "", categoryRecord(entry("en", "Hello", "hello")))
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	if !goerrors.IsWrapped(err) {
		t.Fatalf("expected go-errors wrapper, got %T", err)
	}
	if remote.Classify(err) != remote.KindUnclassified {
		t.Fatalf("expected unclassified kind")
	}
}

func TestRecordSyncDeleteMissing(t *testing.T) {
	syncer := newCategorySync(remote.NewMemoryClient())
	err := syncer.Delete(context.Background(), "missing")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryThumbnailStoreRejectsDuplicateSize(t *testing.T) {
	store := remote.NewMemoryThumbnailStore()
	ctx := context.Background()

	created, err := store.CreateThumbnail(ctx, interfaces.ThumbnailRecord{MediaID: "m1", Size: "fit600x400"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Key == "" {
		t.Fatalf("expected derived key")
	}
	_, err = store.CreateThumbnail(ctx, interfaces.ThumbnailRecord{MediaID: "m1", Size: "FIT600x400"})
	var dup *remote.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Field != "size" {
		t.Fatalf("expected duplicate size, got %v", err)
	}
	if _, err := store.CreateThumbnail(ctx, interfaces.ThumbnailRecord{MediaID: "m2", Size: "fit600x400"}); err != nil {
		t.Fatalf("same size on other media should pass: %v", err)
	}

	deleted, err := store.DeleteThumbnail(ctx, "m1", "fit600x400")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	list, _ := store.ListThumbnails(ctx, "m1")
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestValidateDocumentMergesWrappedFieldErrors(t *testing.T) {
	doc := interfaces.RemoteDocument{Translations: map[string]map[string]any{"en": {"title": "Hello"}}}
	wrapped := func(interfaces.RemoteDocument) error {
		return fmt.Errorf("meta check: %w", &remote.FieldValidationError{Fields: map[string]string{"translations.en.meta": "invalid"}})
	}

	err := remote.ValidateDocument(doc, wrapped)
	var fieldErr *remote.FieldValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected merged field validation error, got %v", err)
	}
	if fieldErr.Fields["translations.en.meta"] != "invalid" {
		t.Fatalf("unexpected fields %v", fieldErr.Fields)
	}
}
