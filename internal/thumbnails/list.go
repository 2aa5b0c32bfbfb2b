package thumbnails

import (
	"errors"
	"slices"
)

var (
	// ErrDuplicateKey reports a list entry whose key is already used.
	ErrDuplicateKey = errors.New("thumbnails: key already in list")
	// ErrSpecMissing reports a Replace for a key the list does not hold.
	ErrSpecMissing = errors.New("thumbnails: key not in list")
)

// List is the ordered set of thumbnails being edited for one media item.
// Operations return new lists.
type List struct {
	specs []Spec
}

// NewList builds a list, dropping later entries that repeat a key.
func NewList(specs ...Spec) List {
	out := List{}
	for _, spec := range specs {
		if out.index(spec.Key) >= 0 {
			continue
		}
		out.specs = append(out.specs, spec)
	}
	return out
}

func (l List) Len() int { return len(l.specs) }

// Specs returns the entries in insertion order.
func (l List) Specs() []Spec { return slices.Clone(l.specs) }

func (l List) Get(key string) (Spec, bool) {
	if i := l.index(key); i >= 0 {
		return l.specs[i], true
	}
	return Spec{}, false
}

// Add appends spec.
func (l List) Add(spec Spec) (List, error) {
	if l.index(spec.Key) >= 0 {
		return l, ErrDuplicateKey
	}
	return List{specs: append(slices.Clone(l.specs), spec)}, nil
}

// Remove drops the entry for key. Unknown keys return the list unchanged.
func (l List) Remove(key string) List {
	i := l.index(key)
	if i < 0 {
		return l
	}
	return List{specs: slices.Delete(slices.Clone(l.specs), i, i+1)}
}

// Replace swaps the entry sharing spec's key.
func (l List) Replace(spec Spec) (List, error) {
	i := l.index(spec.Key)
	if i < 0 {
		return l, ErrSpecMissing
	}
	specs := slices.Clone(l.specs)
	specs[i] = spec
	return List{specs: specs}, nil
}

// DuplicateSizes returns the keys whose size string repeats an earlier entry.
func (l List) DuplicateSizes() []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, spec := range l.specs {
		size := spec.Size()
		if _, ok := seen[size]; ok {
			keys = append(keys, spec.Key)
			continue
		}
		seen[size] = struct{}{}
	}
	return keys
}

func (l List) index(key string) int {
	return slices.IndexFunc(l.specs, func(s Spec) bool { return s.Key == key })
}
