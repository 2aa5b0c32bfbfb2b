package records

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrUnknownField indicates WithField was called with a field the payload lacks.
	ErrUnknownField = errors.New("records: unknown field")
	// ErrFieldType indicates WithField received a value of the wrong type.
	ErrFieldType = errors.New("records: invalid field value")
)

const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldTags        = "tags"
	FieldMeta        = "meta"
)

// slugRule accepts blank values (Required reports those) and otherwise
// demands the go-slug format.
var slugRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" || IsValidSlug(s) {
		return nil
	}
	return validation.NewError("validation_is_slug", "must be a valid slug")
})

// FieldMessages flattens an ozzo validation error into field → message.
// Errors that are not field-scoped are reported under the "" key.
func FieldMessages(err error) map[string]string {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr == nil {
			continue
		}
		out[field] = fieldErr.Error()
	}
	return out
}

func stringValue(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrFieldType, field, value)
	}
}

func tagsValue(value any) ([]string, error) {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: tags expects strings, got %T", ErrFieldType, item)
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil, fmt.Errorf("%w: tags expects a list, got %T", ErrFieldType, value)
	}
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags, nil
}
