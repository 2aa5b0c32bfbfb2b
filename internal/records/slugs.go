package records

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugConflict flags a locale whose slug repeats one used by an earlier locale.
type SlugConflict struct {
	Locale string
	Slug   string
}

// ValidateSlugs returns a conflict for every occurrence of a slug except the
// first, in record order. Blank slugs are ignored.
func ValidateSlugs[T Translation[T]](r Record[T]) []SlugConflict {
	var conflicts []SlugConflict
	seen := make(map[string]struct{}, r.Len())
	for _, locale := range r.order {
		value := strings.TrimSpace(r.entries[locale].SlugValue())
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			conflicts = append(conflicts, SlugConflict{Locale: locale, Slug: value})
			continue
		}
		seen[value] = struct{}{}
	}
	return conflicts
}

// NormalizeSlug applies the default go-slug rules.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
