package session

import (
	"errors"
	"maps"
	"sort"
)

var (
	// ErrClosed indicates the session was cancelled or closed.
	ErrClosed = errors.New("session: closed")
	// ErrNotReady indicates the session has not been opened or loaded yet.
	ErrNotReady = errors.New("session: not ready")
	// ErrAlreadyOpen indicates Open or Load was called twice.
	ErrAlreadyOpen = errors.New("session: already open")
	// ErrSyncerRequired indicates the session has no remote syncer.
	ErrSyncerRequired = errors.New("session: syncer is required")
	// ErrNoLocales indicates no locale is known to seed a record with.
	ErrNoLocales = errors.New("session: no locales available")
	// ErrLocaleUnknown indicates a locale outside the known set.
	ErrLocaleUnknown = errors.New("session: locale is not known")
	// ErrLocaleInUse indicates the working record already holds the locale.
	ErrLocaleInUse = errors.New("session: locale already in use")
	// ErrLocaleMissing indicates the working record does not hold the locale.
	ErrLocaleMissing = errors.New("session: locale missing from record")
	// ErrNotPersisted indicates an operation that needs a stored record.
	ErrNotPersisted = errors.New("session: record is not persisted")
)

const (
	// RecordLevel is the locale key of messages that belong to no locale.
	RecordLevel = ""

	MessageRequired  = "required"
	MessageDuplicate = "duplicate"
)

// ErrorTree maps locale → field → message. Record-level messages use the
// RecordLevel key.
type ErrorTree map[string]map[string]string

// Get returns the message for locale and field.
func (t ErrorTree) Get(locale, field string) string {
	return t[locale][field]
}

// Has reports whether locale has at least one message.
func (t ErrorTree) Has(locale string) bool {
	return len(t[locale]) > 0
}

// Empty reports whether the tree holds no messages.
func (t ErrorTree) Empty() bool {
	for _, fields := range t {
		if len(fields) > 0 {
			return false
		}
	}
	return true
}

// Locales returns the locale keys holding messages, sorted.
func (t ErrorTree) Locales() []string {
	out := make([]string, 0, len(t))
	for locale, fields := range t {
		if len(fields) > 0 {
			out = append(out, locale)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (t ErrorTree) Clone() ErrorTree {
	out := make(ErrorTree, len(t))
	for locale, fields := range t {
		out[locale] = maps.Clone(fields)
	}
	return out
}

func (t ErrorTree) set(locale, field, message string) {
	fields, ok := t[locale]
	if !ok {
		fields = map[string]string{}
		t[locale] = fields
	}
	fields[field] = message
}
