package records

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category is the localized payload of a blog category.
type Category struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

var _ Translation[Category] = Category{}

func (c Category) SlugValue() string { return c.Slug }

func (c Category) Clone() Category { return c }

func (c Category) Equal(other Category) bool { return c == other }

// WithField sets title, slug or description.
func (c Category) WithField(field string, value any) (Category, error) {
	s, err := stringValue(field, value)
	if err != nil {
		return c, err
	}
	switch field {
	case FieldTitle:
		c.Title = s
	case FieldSlug:
		c.Slug = s
	case FieldDescription:
		c.Description = s
	default:
		return c, ErrUnknownField
	}
	return c, nil
}

func (c Category) Values() map[string]any {
	return map[string]any{
		FieldTitle:       c.Title,
		FieldSlug:        c.Slug,
		FieldDescription: c.Description,
	}
}

// Validate requires a title and a well-formed slug.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Slug, validation.Required, slugRule),
	)
}

// CategoryFromValues decodes a remote translation map.
func CategoryFromValues(values map[string]any) (Category, error) {
	var c Category
	for _, field := range []string{FieldTitle, FieldSlug, FieldDescription} {
		raw, ok := values[field]
		if !ok {
			continue
		}
		next, err := c.WithField(field, raw)
		if err != nil {
			return Category{}, err
		}
		c = next
	}
	return c, nil
}
