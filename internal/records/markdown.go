package records

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type postFrontMatter struct {
	Title  string         `yaml:"title"`
	Slug   string         `yaml:"slug"`
	Tags   []string       `yaml:"tags"`
	Meta   map[string]any `yaml:"meta"`
	Locale string         `yaml:"locale"`
}

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// PostFromMarkdown seeds a post translation from a Markdown document with
// YAML front matter. The body is rendered to HTML. The returned locale is
// the front matter "locale" value, canonicalised, or "" when absent.
// A missing slug is derived from the title.
func PostFromMarkdown(source []byte) (Post, string, error) {
	var meta postFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Post{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert(body, &buf); err != nil {
		return Post{}, "", fmt.Errorf("markdown render: %w", err)
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		if derived, err := NormalizeSlug(meta.Title); err == nil {
			slug = derived
		}
	}
	tags, _ := tagsValue(meta.Tags)

	post := Post{
		Title:   strings.TrimSpace(meta.Title),
		Slug:    slug,
		Content: buf.String(),
		Tags:    tags,
		Meta:    cloneMeta(meta.Meta),
	}
	return post, normalizeLocale(meta.Locale), nil
}
