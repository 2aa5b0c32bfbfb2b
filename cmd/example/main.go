package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	editor "github.com/goliatone/go-cms-editor"
)

func main() {
	storage := flag.String("storage", editor.StorageMemory, "Record backend: memory or bun")
	dsn := flag.String("dsn", "file:editor_example?mode=memory&cache=shared", "Database DSN for the bun backend")
	dialect := flag.String("dialect", "sqlite", "Database dialect for the bun backend")
	logProvider := flag.String("log", "console", "Logger provider: console or gologger")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := editor.DefaultConfig()
	cfg.Locales = []editor.LocaleConfig{{Code: "en"}, {Code: "fr"}, {Code: "es"}}
	cfg.Features.Logger = true
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = "info"
	cfg.Storage.Provider = *storage
	cfg.Storage.DSN = *dsn
	cfg.Storage.Dialect = *dialect
	cfg.Storage.Migrate = true
	cfg.Cache.Enabled = *storage == editor.StorageBun
	cfg.Thumbnails.MaxPerMedia = 8
	cfg.Posts.MetaSchema = map[string]any{
		"fields": []any{
			map[string]any{"name": "reading_time", "type": "integer"},
			map[string]any{"name": "canonical_url", "type": "string"},
		},
	}

	module, err := editor.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initialise editor: %v", err)
	}
	defer module.Close()

	if err := runCategoryScenario(ctx, module); err != nil {
		log.Fatalf("category scenario: %v", err)
	}
	if err := runPostScenario(ctx, module); err != nil {
		log.Fatalf("post scenario: %v", err)
	}
	if err := runThumbnailScenario(ctx, module); err != nil {
		log.Fatalf("thumbnail scenario: %v", err)
	}
}

func runCategoryScenario(ctx context.Context, module *editor.Module) error {
	set, err := module.Locales(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Known locales: %v\n", set.IDs())

	s, err := module.NewCategory(ctx, "en")
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.AddLocale("fr"); err != nil {
		return err
	}
	for _, edit := range []struct{ locale, field, value string }{
		{"en", "title", "Hello"},
		{"en", "slug", "bonjour"},
		{"fr", "title", "Bonjour"},
		{"fr", "slug", "bonjour"},
	} {
		if err := s.EditField(edit.locale, edit.field, edit.value); err != nil {
			return err
		}
	}

	result, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("First submit: %s, fr.slug=%q\n", result.Outcome, result.Errors.Get("fr", "slug"))

	if err := s.EditField("en", "slug", "hello"); err != nil {
		return err
	}
	result, err = s.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Second submit: %s, id=%s, unsaved changes=%t\n", result.Outcome, result.RecordID, s.HasChanges())

	if err := s.SwitchLocale("fr", "es"); err != nil {
		return err
	}
	fmt.Printf("After switching fr to es: %v, available: %v\n", s.Working().Keys(), s.Available().IDs())
	s.Cancel()
	return nil
}

func runPostScenario(ctx context.Context, module *editor.Module) error {
	doc := `---
title: Editing in three languages
tags: [editor, i18n]
locale: en
meta:
  reading_time: 4
---
# Editing in three languages

Every post keeps one translation per locale.
`
	if err := module.ImportMarkdownPost(ctx, editor.ImportMarkdownPostCommand{Source: []byte(doc)}); err != nil {
		return err
	}

	ids, err := module.Container().PostSync().FindBySlug(ctx, "en", "editing-in-three-languages")
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("imported post not found")
	}

	s, err := module.EditPost(ctx, ids[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.EditField("en", "meta", map[string]any{"reading_time": "four"}); err != nil {
		return err
	}
	result, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Post submit with bad meta: %s, errors=%v\n", result.Outcome, result.Errors)

	if err := s.EditField("en", "meta", map[string]any{"reading_time": 5}); err != nil {
		return err
	}
	result, err = s.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Post submit fixed: %s\n", result.Outcome)
	return nil
}

func runThumbnailScenario(ctx context.Context, module *editor.Module) error {
	source := editor.Dimensions{Width: 1200, Height: 800}
	spec, err := editor.SeedThumbnail("", source)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded thumbnail: %s chained=%t\n", spec.Size(), spec.Chained)

	spec, err = editor.SetThumbnailWidth(spec, "300", source)
	if err != nil {
		return err
	}
	created, err := module.Thumbnails().Create(ctx, "media-hero", spec, source)
	if err != nil {
		return err
	}
	fmt.Printf("Created thumbnail %s (%s)\n", created.Size(), created.Key)

	err = module.CreateThumbnail(ctx, editor.CreateThumbnailCommand{
		MediaID:      "media-hero",
		Type:         "fit",
		Width:        300,
		Height:       200,
		Chained:      true,
		SourceWidth:  source.Width,
		SourceHeight: source.Height,
	})
	fmt.Printf("Duplicate size rejected: %v\n", err != nil)

	list, err := module.Thumbnails().List(ctx, "media-hero")
	if err != nil {
		return err
	}
	fmt.Printf("Thumbnails for media-hero: %d\n", list.Len())
	return nil
}
