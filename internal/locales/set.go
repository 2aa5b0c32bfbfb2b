package locales

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

var (
	// ErrLocaleIDRequired indicates a descriptor was supplied without an id.
	ErrLocaleIDRequired = errors.New("locales: locale id is required")
	// ErrLocaleInvalid indicates the id is not a well-formed BCP 47 tag.
	ErrLocaleInvalid = errors.New("locales: locale id is not a valid language tag")
)

// Descriptor is an immutable locale entry.
type Descriptor = interfaces.LocaleDescriptor

// Canonical normalises a locale id to its BCP 47 form ("en_us" becomes
// "en-US"). Ids that cannot be parsed are returned trimmed.
func Canonical(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return trimmed
	}
	return tag.String()
}

// NewDescriptor validates id and fills in an English display name when none
// is given.
func NewDescriptor(id, displayName string) (Descriptor, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Descriptor{}, ErrLocaleIDRequired
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return Descriptor{}, ErrLocaleInvalid
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = display.English.Tags().Name(tag)
	}
	if name == "" {
		name = tag.String()
	}
	return Descriptor{ID: tag.String(), DisplayName: name}, nil
}

// Set is an ordered, immutable collection of locale descriptors.
type Set struct {
	items []Descriptor
}

// NewSet builds a Set from registry output. Ids are canonicalised, blank ids
// are dropped and duplicates keep their first occurrence.
func NewSet(descriptors ...Descriptor) Set {
	items := make([]Descriptor, 0, len(descriptors))
	seen := make(map[string]struct{}, len(descriptors))
	for _, desc := range descriptors {
		id := Canonical(desc.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		name := strings.TrimSpace(desc.DisplayName)
		if name == "" {
			if normalized, err := NewDescriptor(id, ""); err == nil {
				name = normalized.DisplayName
			} else {
				name = id
			}
		}
		items = append(items, Descriptor{ID: id, DisplayName: name})
	}
	return Set{items: items}
}

// ParseSet builds a Set from raw ids, failing on the first invalid tag.
func ParseSet(ids ...string) (Set, error) {
	descriptors := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		desc, err := NewDescriptor(id, "")
		if err != nil {
			return Set{}, err
		}
		descriptors = append(descriptors, desc)
	}
	return NewSet(descriptors...), nil
}

// Len returns the number of locales in the set.
func (s Set) Len() int { return len(s.items) }

// Empty reports whether the set has no locales.
func (s Set) Empty() bool { return len(s.items) == 0 }

// Descriptors returns a copy of the ordered descriptors.
func (s Set) Descriptors() []Descriptor { return slices.Clone(s.items) }

// IDs returns the ordered locale ids.
func (s Set) IDs() []string {
	ids := make([]string, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

// Has reports membership of id.
func (s Set) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Get returns the descriptor for id.
func (s Set) Get(id string) (Descriptor, bool) {
	id = Canonical(id)
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Descriptor{}, false
}

// First returns the first locale in list order.
func (s Set) First() (Descriptor, bool) {
	if len(s.items) == 0 {
		return Descriptor{}, false
	}
	return s.items[0], true
}

// NextUnused returns the first locale in list order that is not in used.
func (s Set) NextUnused(used []string) (Descriptor, bool) {
	taken := toLookup(used)
	for _, item := range s.items {
		if _, ok := taken[item.ID]; !ok {
			return item, true
		}
	}
	return Descriptor{}, false
}

// Without returns the locales not present in used, preserving order.
func (s Set) Without(used []string) Set {
	taken := toLookup(used)
	items := make([]Descriptor, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := taken[item.ID]; !ok {
			items = append(items, item)
		}
	}
	return Set{items: items}
}

// Equal reports whether both sets hold the same descriptors in the same order.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.items, other.items)
}

func toLookup(ids []string) map[string]struct{} {
	lookup := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		lookup[Canonical(id)] = struct{}{}
	}
	return lookup
}
