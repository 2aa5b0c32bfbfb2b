package records

import (
	"errors"
	"slices"
	"strings"

	"github.com/goliatone/go-cms-editor/internal/locales"
)

var (
	// ErrAlreadyPresent indicates Add was called with a locale already in the record.
	ErrAlreadyPresent = errors.New("records: locale already present")
	// ErrSourceMissing indicates Rekey was called with an absent source locale.
	ErrSourceMissing = errors.New("records: source locale missing")
	// ErrLocaleMissing indicates an edit targeted a locale the record does not hold.
	ErrLocaleMissing = errors.New("records: locale missing")
	// ErrLocaleRequired indicates an operation was called with a blank locale id.
	ErrLocaleRequired = errors.New("records: locale id is required")
	// ErrNoLocaleAvailable indicates every known locale is already used.
	ErrNoLocaleAvailable = errors.New("records: no unused locale available")
)

// Translation is the contract localized payloads satisfy. Implementations are
// value types; every method returns fresh values and never aliases the
// receiver's slices or maps.
type Translation[T any] interface {
	// SlugValue returns the slug compared across locales, or "" when the
	// payload carries none.
	SlugValue() string
	// WithField returns a copy with field set to value.
	WithField(field string, value any) (T, error)
	// Values flattens the payload for the remote service.
	Values() map[string]any
	Clone() T
	Equal(other T) bool
	Validate() error
}

// Record maps locale ids to localized payloads, preserving insertion order.
// The zero value is an empty record. Operations never modify their input.
type Record[T Translation[T]] struct {
	order   []string
	entries map[string]T
}

// Entry pairs a locale with its payload.
type Entry[T Translation[T]] struct {
	Locale  string
	Payload T
}

// New returns an empty record.
func New[T Translation[T]]() Record[T] {
	return Record[T]{}
}

// FromEntries builds a record in entry order. Later duplicates overwrite the
// payload of the first occurrence.
func FromEntries[T Translation[T]](entries ...Entry[T]) Record[T] {
	out := Record[T]{entries: make(map[string]T, len(entries))}
	for _, entry := range entries {
		locale := normalizeLocale(entry.Locale)
		if locale == "" {
			continue
		}
		if _, ok := out.entries[locale]; !ok {
			out.order = append(out.order, locale)
		}
		out.entries[locale] = entry.Payload.Clone()
	}
	return out
}

// Len returns the number of locales.
func (r Record[T]) Len() int { return len(r.order) }

// Keys returns the locale ids in insertion order.
func (r Record[T]) Keys() []string { return slices.Clone(r.order) }

// Has reports whether locale is a key.
func (r Record[T]) Has(locale string) bool {
	_, ok := r.entries[normalizeLocale(locale)]
	return ok
}

// Get returns a copy of the payload stored for locale.
func (r Record[T]) Get(locale string) (T, bool) {
	payload, ok := r.entries[normalizeLocale(locale)]
	if !ok {
		var zero T
		return zero, false
	}
	return payload.Clone(), true
}

// Entries returns copies of all entries in order.
func (r Record[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, len(r.order))
	for _, locale := range r.order {
		out = append(out, Entry[T]{Locale: locale, Payload: r.entries[locale].Clone()})
	}
	return out
}

// Clone returns a structurally independent copy.
func (r Record[T]) Clone() Record[T] {
	return FromEntries(r.Entries()...)
}

// Equal compares keys and payloads; order is not significant.
func (r Record[T]) Equal(other Record[T]) bool {
	if len(r.entries) != len(other.entries) {
		return false
	}
	for locale, payload := range r.entries {
		theirs, ok := other.entries[locale]
		if !ok || !payload.Equal(theirs) {
			return false
		}
	}
	return true
}

// Add returns a record with payload appended under locale.
func Add[T Translation[T]](r Record[T], locale string, payload T) (Record[T], error) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return r, ErrLocaleRequired
	}
	if r.Has(locale) {
		return r, ErrAlreadyPresent
	}
	out := r.Clone()
	if out.entries == nil {
		out.entries = map[string]T{}
	}
	out.order = append(out.order, locale)
	out.entries[locale] = payload.Clone()
	return out, nil
}

// AddNext adds payload under the first locale of set not yet used by r.
func AddNext[T Translation[T]](r Record[T], set locales.Set, payload T) (Record[T], string, error) {
	next, ok := set.NextUnused(r.Keys())
	if !ok {
		return r, "", ErrNoLocaleAvailable
	}
	out, err := Add(r, next.ID, payload)
	return out, next.ID, err
}

// Remove returns a record without locale. An absent locale returns r as is.
func Remove[T Translation[T]](r Record[T], locale string) Record[T] {
	locale = normalizeLocale(locale)
	if !r.Has(locale) {
		return r
	}
	entries := r.Entries()
	entries = slices.DeleteFunc(entries, func(e Entry[T]) bool { return e.Locale == locale })
	return FromEntries(entries...)
}

// Rekey moves the payload of from to to, keeping the position of from. When
// to is already present its payload is overwritten by the moved one.
func Rekey[T Translation[T]](r Record[T], from, to string) (Record[T], error) {
	from, to = normalizeLocale(from), normalizeLocale(to)
	if !r.Has(from) {
		return r, ErrSourceMissing
	}
	if to == "" {
		return r, ErrLocaleRequired
	}
	if from == to {
		return r, nil
	}
	entries := make([]Entry[T], 0, r.Len())
	for _, entry := range r.Entries() {
		switch entry.Locale {
		case to:
			continue
		case from:
			entry.Locale = to
		}
		entries = append(entries, entry)
	}
	return FromEntries(entries...), nil
}

// Edit returns a record where field of locale's payload is set to value.
func Edit[T Translation[T]](r Record[T], locale, field string, value any) (Record[T], error) {
	locale = normalizeLocale(locale)
	current, ok := r.entries[locale]
	if !ok {
		return r, ErrLocaleMissing
	}
	updated, err := current.WithField(field, value)
	if err != nil {
		return r, err
	}
	return Replace(r, locale, updated)
}

// Replace swaps locale's payload for payload.
func Replace[T Translation[T]](r Record[T], locale string, payload T) (Record[T], error) {
	locale = normalizeLocale(locale)
	if !r.Has(locale) {
		return r, ErrLocaleMissing
	}
	out := r.Clone()
	out.entries[locale] = payload.Clone()
	return out, nil
}

func normalizeLocale(locale string) string {
	return locales.Canonical(strings.TrimSpace(locale))
}
