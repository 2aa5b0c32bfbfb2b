package records_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/pkg/testsupport"
)

func category(title, slug string) records.Category {
	return records.Category{Title: title, Slug: slug}
}

func seedRecord(t *testing.T) records.Record[records.Category] {
	t.Helper()
	return records.FromEntries(
		records.Entry[records.Category]{Locale: "en", Payload: category("Hello", "hello")},
		records.Entry[records.Category]{Locale: "fr", Payload: category("Bonjour", "bonjour")},
	)
}

func TestAddThenRemoveRestoresRecord(t *testing.T) {
	r := seedRecord(t)

	added, err := records.Add(r, "de", category("Hallo", "hallo"))
	require.NoError(t, err)
	require.Equal(t, []string{"en", "fr", "de"}, added.Keys())
	require.Equal(t, 2, r.Len(), "input record must not change")

	removed := records.Remove(added, "de")
	require.True(t, removed.Equal(r))
	require.Equal(t, r.Keys(), removed.Keys())
}

func TestAddRejectsPresentLocale(t *testing.T) {
	r := seedRecord(t)
	_, err := records.Add(r, "en", category("Other", "other"))
	require.ErrorIs(t, err, records.ErrAlreadyPresent)

	_, err = records.Add(r, "  ", category("Other", "other"))
	require.ErrorIs(t, err, records.ErrLocaleRequired)
}

func TestAddCanonicalisesLocale(t *testing.T) {
	r, err := records.Add(records.New[records.Category](), "en_us", category("Hi", "hi"))
	require.NoError(t, err)
	require.True(t, r.Has("en-US"))
	require.Equal(t, []string{"en-US"}, r.Keys())
}

func TestAddNextPicksFirstUnusedLocale(t *testing.T) {
	set, err := locales.ParseSet("en", "fr", "de")
	require.NoError(t, err)

	r := seedRecord(t)
	next, locale, err := records.AddNext(r, set, records.Category{})
	require.NoError(t, err)
	require.Equal(t, "de", locale)
	require.Equal(t, []string{"en", "fr", "de"}, next.Keys())

	_, _, err = records.AddNext(next, set, records.Category{})
	require.ErrorIs(t, err, records.ErrNoLocaleAvailable)
}

func TestRemoveAbsentLocaleReturnsSameRecord(t *testing.T) {
	r := seedRecord(t)
	out := records.Remove(r, "de")
	require.True(t, out.Equal(r))

	empty := records.Remove(records.Remove(r, "en"), "fr")
	require.Equal(t, 0, empty.Len())
}

func TestRekeyMovesPayloadAndKeepsPosition(t *testing.T) {
	r := seedRecord(t)
	out, err := records.Rekey(r, "en", "de")
	require.NoError(t, err)
	require.Equal(t, []string{"de", "fr"}, out.Keys())

	moved, ok := out.Get("de")
	require.True(t, ok)
	require.Equal(t, "hello", moved.Slug)
	require.False(t, out.Has("en"))
}

func TestRekeyOntoPresentLocaleOverwrites(t *testing.T) {
	r := seedRecord(t)
	out, err := records.Rekey(r, "en", "fr")
	require.NoError(t, err)

	want, _ := r.Get("en")
	got, ok := out.Get("fr")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, []string{"fr"}, out.Keys())
}

func TestRekeyMissingSource(t *testing.T) {
	_, err := records.Rekey(seedRecord(t), "de", "fr")
	require.ErrorIs(t, err, records.ErrSourceMissing)
}

func TestEditDoesNotAliasInput(t *testing.T) {
	r := seedRecord(t)
	out, err := records.Edit(r, "fr", records.FieldTitle, "Salut")
	require.NoError(t, err)

	before, _ := r.Get("fr")
	after, _ := out.Get("fr")
	require.Equal(t, "Bonjour", before.Title)
	require.Equal(t, "Salut", after.Title)
	require.False(t, out.Equal(r))

	_, err = records.Edit(r, "de", records.FieldTitle, "x")
	require.ErrorIs(t, err, records.ErrLocaleMissing)

	_, err = records.Edit(r, "en", "colour", "x")
	require.ErrorIs(t, err, records.ErrUnknownField)
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := seedRecord(t)
	b := records.FromEntries(
		records.Entry[records.Category]{Locale: "fr", Payload: category("Bonjour", "bonjour")},
		records.Entry[records.Category]{Locale: "en", Payload: category("Hello", "hello")},
	)
	require.True(t, a.Equal(b))
}

func TestValidateSlugsFlagsAllButFirstOccurrence(t *testing.T) {
	r := records.FromEntries(
		records.Entry[records.Category]{Locale: "en", Payload: category("Hello", "bonjour")},
		records.Entry[records.Category]{Locale: "fr", Payload: category("Bonjour", "bonjour")},
		records.Entry[records.Category]{Locale: "de", Payload: category("Hallo", "")},
		records.Entry[records.Category]{Locale: "es", Payload: category("Hola", " bonjour ")},
		records.Entry[records.Category]{Locale: "it", Payload: category("Ciao", "")},
	)

	conflicts := records.ValidateSlugs(r)
	require.Equal(t, []records.SlugConflict{
		{Locale: "fr", Slug: "bonjour"},
		{Locale: "es", Slug: "bonjour"},
	}, conflicts)

	require.Empty(t, records.ValidateSlugs(seedRecord(t)))
}

func TestCategoryValidate(t *testing.T) {
	require.NoError(t, category("Hello", "hello").Validate())

	fields := records.FieldMessages(records.Category{Slug: "Not A Slug"}.Validate())
	require.Contains(t, fields, "title")
	require.Contains(t, fields, "slug")
}

func TestPostCloneIsIndependent(t *testing.T) {
	post := records.Post{
		Title: "Hello",
		Slug:  "hello",
		Tags:  []string{"go"},
		Meta:  map[string]any{"seo": map[string]any{"title": "Hi"}},
	}
	clone := post.Clone()
	clone.Tags[0] = "rust"
	clone.Meta["seo"].(map[string]any)["title"] = "Changed"

	require.Equal(t, "go", post.Tags[0])
	require.Equal(t, "Hi", post.Meta["seo"].(map[string]any)["title"])
	require.False(t, post.Equal(clone))
	require.True(t, post.Equal(post.Clone()))
}

func TestPostWithFieldTags(t *testing.T) {
	post, err := records.Post{}.WithField(records.FieldTags, "go, cms ,,editor")
	require.NoError(t, err)
	require.Equal(t, []string{"go", "cms", "editor"}, post.Tags)

	_, err = records.Post{}.WithField(records.FieldMeta, "nope")
	require.True(t, errors.Is(err, records.ErrFieldType))
}

func TestPostFromValuesRoundTrip(t *testing.T) {
	post := records.Post{Title: "Hello", Slug: "hello", Content: "<p>x</p>", Tags: []string{"a"}, Meta: map[string]any{"k": "v"}}
	decoded, err := records.PostFromValues(post.Values())
	require.NoError(t, err)
	require.True(t, post.Equal(decoded))
}

func TestPostFromMarkdown(t *testing.T) {
	source := []byte(`---
title: Hello World
locale: en_gb
tags:
  - go
  - cms
meta:
  summary: short
---
# Heading

Some *body* text.
`)
	post, locale, err := records.PostFromMarkdown(source)
	require.NoError(t, err)
	require.Equal(t, "en-GB", locale)
	require.Equal(t, "Hello World", post.Title)
	require.Equal(t, "hello-world", post.Slug)
	require.Equal(t, []string{"go", "cms"}, post.Tags)
	require.Equal(t, "short", post.Meta["summary"])
	require.Contains(t, post.Content, "<em>body</em>")
	require.Contains(t, post.Content, "<h1")
}

func TestPostFromMarkdownGolden(t *testing.T) {
	source := testsupport.LoadFixture(t, filepath.Join("testdata", "release_notes.md"))

	var want struct {
		Locale string       `json:"locale"`
		Post   records.Post `json:"post"`
	}
	require.NoError(t, testsupport.LoadGolden(filepath.Join("testdata", "release_notes.golden.json"), &want))

	post, locale, err := records.PostFromMarkdown(source)
	require.NoError(t, err)
	require.Equal(t, want.Locale, locale)
	require.Equal(t, want.Post, post)
}
