package records

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Post is the localized payload of a blog post. Content holds the HTML
// produced by the rich-text editor.
type Post struct {
	Title   string         `json:"title"`
	Slug    string         `json:"slug"`
	Content string         `json:"content"`
	Tags    []string       `json:"tags"`
	Meta    map[string]any `json:"meta"`
}

var _ Translation[Post] = Post{}

func (p Post) SlugValue() string { return p.Slug }

func (p Post) Clone() Post {
	p.Tags = slices.Clone(p.Tags)
	p.Meta = cloneMeta(p.Meta)
	return p
}

func (p Post) Equal(other Post) bool {
	return p.Title == other.Title &&
		p.Slug == other.Slug &&
		p.Content == other.Content &&
		slices.Equal(p.Tags, other.Tags) &&
		metaEqual(p.Meta, other.Meta)
}

// WithField sets title, slug, content, tags or meta.
func (p Post) WithField(field string, value any) (Post, error) {
	out := p.Clone()
	switch field {
	case FieldTitle, FieldSlug, FieldContent:
		s, err := stringValue(field, value)
		if err != nil {
			return p, err
		}
		switch field {
		case FieldTitle:
			out.Title = s
		case FieldSlug:
			out.Slug = s
		default:
			out.Content = s
		}
	case FieldTags:
		tags, err := tagsValue(value)
		if err != nil {
			return p, err
		}
		out.Tags = tags
	case FieldMeta:
		switch meta := value.(type) {
		case nil:
			out.Meta = nil
		case map[string]any:
			out.Meta = cloneMeta(meta)
		default:
			return p, fmt.Errorf("%w: meta expects an object, got %T", ErrFieldType, value)
		}
	default:
		return p, ErrUnknownField
	}
	return out, nil
}

func (p Post) Values() map[string]any {
	tags := make([]any, len(p.Tags))
	for i, tag := range p.Tags {
		tags[i] = tag
	}
	return map[string]any{
		FieldTitle:   p.Title,
		FieldSlug:    p.Slug,
		FieldContent: p.Content,
		FieldTags:    tags,
		FieldMeta:    cloneMeta(p.Meta),
	}
}

// Validate requires a title and a well-formed slug. Content may be empty
// while drafting.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Slug, validation.Required, slugRule),
		validation.Field(&p.Tags, validation.Each(validation.Length(1, 64))),
	)
}

// PostFromValues decodes a remote translation map.
func PostFromValues(values map[string]any) (Post, error) {
	var p Post
	for _, field := range []string{FieldTitle, FieldSlug, FieldContent, FieldTags, FieldMeta} {
		raw, ok := values[field]
		if !ok {
			continue
		}
		next, err := p.WithField(field, raw)
		if err != nil {
			return Post{}, err
		}
		p = next
	}
	return p, nil
}

func cloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for key, value := range meta {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMeta(typed)
		case []any:
			out[key] = slices.Clone(typed)
		default:
			out[key] = value
		}
	}
	return out
}

// metaEqual treats nil and empty meta as equal.
func metaEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return maps.EqualFunc(a, b, func(x, y any) bool { return reflect.DeepEqual(x, y) })
}
