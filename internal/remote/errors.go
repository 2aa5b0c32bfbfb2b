package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const remoteCallFailedCode = "REMOTE_CALL_FAILED"

// ErrUpdateConflict reports that the remote copy changed since it was read.
// Callers treat it as a silent no-op.
var ErrUpdateConflict = errors.New("remote: update conflict")

// ErrNotFound reports that the addressed record does not exist remotely.
var ErrNotFound = errors.New("remote: record not found")

// FieldValidationError carries messages keyed by field path, for example
// "translations.fr.title" or "fr.slug". A path without a locale segment is
// record-level.
type FieldValidationError struct {
	Fields map[string]string
}

func (e *FieldValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "remote: field validation failed"
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", path, e.Fields[path]))
	}
	return "remote: field validation failed: " + strings.Join(parts, "; ")
}

// DuplicateKeyError reports a value that already exists remotely. Locale is
// empty when the service did not say which translation collided.
type DuplicateKeyError struct {
	Locale string
	Field  string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	if e == nil {
		return "remote: duplicate key"
	}
	if e.Locale == "" {
		return fmt.Sprintf("remote: duplicate %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("remote: duplicate %s %q for locale %s", e.Field, e.Value, e.Locale)
}

// Kind classifies remote failures.
type Kind int

const (
	KindNone Kind = iota
	KindFieldValidation
	KindDuplicateKey
	KindUpdateConflict
	KindNotFound
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFieldValidation:
		return "field_validation"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindUpdateConflict:
		return "update_conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "unclassified"
	}
}

// Classify maps err onto the remote error taxonomy.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return KindFieldValidation
	}
	var dupErr *DuplicateKeyError
	if errors.As(err, &dupErr) {
		return KindDuplicateKey
	}
	if errors.Is(err, ErrUpdateConflict) {
		return KindUpdateConflict
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindUnclassified
}

// wrapUnclassified tags errors outside the taxonomy so callers can surface
// them unmodified.
func wrapUnclassified(err error, operation string) error {
	if err == nil || Classify(err) != KindUnclassified {
		return err
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "remote "+operation+" failed").
		WithTextCode(remoteCallFailedCode)
}
