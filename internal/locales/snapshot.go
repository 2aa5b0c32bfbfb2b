package locales

import "sync/atomic"

// Snapshot holds the latest Set and can be read from any goroutine. Writers
// replace the value atomically; readers never observe a partial update.
type Snapshot struct {
	current atomic.Pointer[Set]
}

// NewSnapshot constructs a snapshot seeded with set.
func NewSnapshot(set Set) *Snapshot {
	s := &Snapshot{}
	s.Store(set)
	return s
}

// Load returns the current set; a nil snapshot yields an empty set.
func (s *Snapshot) Load() Set {
	if s == nil {
		return Set{}
	}
	if set := s.current.Load(); set != nil {
		return *set
	}
	return Set{}
}

// Store replaces the current set.
func (s *Snapshot) Store(set Set) {
	if s == nil {
		return
	}
	s.current.Store(&set)
}
