package session

import (
	"strings"

	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// Option configures a Session.
type Option[T records.Translation[T]] func(*Session[T])

// WithLocales sets the known locales.
func WithLocales[T records.Translation[T]](set locales.Set) Option[T] {
	return func(s *Session[T]) {
		s.locales = set
	}
}

// WithLogger overrides the no-op logger.
func WithLogger[T records.Translation[T]](logger interfaces.Logger) Option[T] {
	return func(s *Session[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBlank sets the factory for payloads of newly added locales. The zero
// value of T is used otherwise.
func WithBlank[T records.Translation[T]](blank func() T) Option[T] {
	return func(s *Session[T]) {
		if blank != nil {
			s.blank = blank
		}
	}
}

// WithResource names the remote resource, used for log context.
func WithResource[T records.Translation[T]](resource string) Option[T] {
	return func(s *Session[T]) {
		s.resource = strings.TrimSpace(resource)
	}
}

// WithRecordID marks the session as editing a stored record.
func WithRecordID[T records.Translation[T]](id string) Option[T] {
	return func(s *Session[T]) {
		s.id = strings.TrimSpace(id)
	}
}
