package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/logging"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/pkg/interfaces"
)

// Syncer persists records remotely. remote.RecordSync satisfies it.
type Syncer[T records.Translation[T]] interface {
	Submit(ctx context.Context, id string, record records.Record[T]) (string, error)
	Delete(ctx context.Context, id string) error
}

// Session edits one locale-keyed record. All mutations are synchronous and
// copy-on-write; the lock is released while a submission is in flight, so
// several submissions may overlap and the last response to arrive wins.
type Session[T records.Translation[T]] struct {
	mu sync.Mutex

	syncer   Syncer[T]
	logger   interfaces.Logger
	blank    func() T
	resource string
	locales  locales.Set

	state         State
	id            string
	original      records.Record[T]
	working       records.Record[T]
	active        string
	errors        ErrorTree
	inflight      int
	generation    uint64
	localeUpdates uint64
	unbind        func()
}

// New constructs a session in the Loading state.
func New[T records.Translation[T]](syncer Syncer[T], opts ...Option[T]) *Session[T] {
	s := &Session[T]{
		syncer: syncer,
		logger: logging.NoOp(),
		blank:  zeroPayload[T],
		state:  StateLoading,
		errors: ErrorTree{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open starts a new record holding one blank entry for seed. An empty seed
// uses the first known locale.
func (s *Session[T]) Open(seed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireState(StateLoading); err != nil {
		return err
	}

	seed = locales.Canonical(seed)
	if seed == "" {
		first, ok := s.locales.First()
		if !ok {
			return ErrNoLocales
		}
		seed = first.ID
	} else if !s.locales.Empty() && !s.locales.Has(seed) {
		return ErrLocaleUnknown
	}

	working, err := records.Add(records.New[T](), seed, s.blank())
	if err != nil {
		return err
	}
	s.working = working
	s.original = working.Clone()
	s.active = seed
	s.state = StateReady
	s.log().Debug("session.opened", "locale", seed)
	return nil
}

// Load starts editing a stored record. Stale locales outside the known set
// are kept.
func (s *Session[T]) Load(id string, record records.Record[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireState(StateLoading); err != nil {
		return err
	}
	s.id = strings.TrimSpace(id)
	s.original = record.Clone()
	s.working = record.Clone()
	s.active = ""
	if keys := record.Keys(); len(keys) > 0 {
		s.active = keys[0]
	}
	s.state = StateReady
	s.log().Debug("session.loaded", "locales", record.Len())
	return nil
}

func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ID returns the remote id, empty until the record is first saved.
func (s *Session[T]) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Working returns a copy of the edited record.
func (s *Session[T]) Working() records.Record[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Original returns a copy of the last saved or loaded record.
func (s *Session[T]) Original() records.Record[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.Clone()
}

func (s *Session[T]) ActiveLocale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Errors returns a copy of the error tree of the last failed submission.
func (s *Session[T]) Errors() ErrorTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

// Locales returns the known locale set.
func (s *Session[T]) Locales() locales.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locales
}

// Available returns the known locales the working record does not use.
func (s *Session[T]) Available() locales.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locales.Without(s.working.Keys())
}

// HasChanges reports whether the working record differs from the original.
func (s *Session[T]) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.working.Equal(s.original)
}

// SetActiveLocale selects the locale shown for editing.
func (s *Session[T]) SetActiveLocale(locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireEditable(); err != nil {
		return err
	}
	locale = locales.Canonical(locale)
	if !s.working.Has(locale) {
		return ErrLocaleMissing
	}
	s.active = locale
	return nil
}

// EditField sets one field of locale's working payload.
func (s *Session[T]) EditField(locale, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireEditable(); err != nil {
		return err
	}
	locale = locales.Canonical(locale)
	next, err := records.Edit(s.working, locale, field, value)
	if err != nil {
		if errors.Is(err, records.ErrLocaleMissing) {
			return ErrLocaleMissing
		}
		return err
	}
	s.working = next
	return nil
}

// AddLocale adds a blank entry for locale and activates it. An empty locale
// picks the first known locale not yet used.
func (s *Session[T]) AddLocale(locale string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireEditable(); err != nil {
		return "", err
	}

	locale = locales.Canonical(locale)
	if locale == "" {
		next, ok := s.locales.NextUnused(s.working.Keys())
		if !ok {
			return "", ErrNoLocales
		}
		locale = next.ID
	}
	if !s.locales.Has(locale) {
		return "", ErrLocaleUnknown
	}
	if s.working.Has(locale) {
		return "", ErrLocaleInUse
	}
	next, err := records.Add(s.working, locale, s.blank())
	if err != nil {
		return "", err
	}
	s.working = next
	s.active = locale
	s.log().Debug("session.locale.added", "locale", locale)
	return locale, nil
}

// RemoveLocale drops locale from the working record. When the active locale
// is removed the first remaining one becomes active.
func (s *Session[T]) RemoveLocale(locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireEditable(); err != nil {
		return err
	}
	locale = locales.Canonical(locale)
	if !s.working.Has(locale) {
		return ErrLocaleMissing
	}
	s.working = records.Remove(s.working, locale)
	if s.active == locale {
		s.active = ""
		if keys := s.working.Keys(); len(keys) > 0 {
			s.active = keys[0]
		}
	}
	s.log().Debug("session.locale.removed", "locale", locale)
	return nil
}

// SwitchLocale moves the payload of from to to. The target must be known and
// not already used by another entry.
func (s *Session[T]) SwitchLocale(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireEditable(); err != nil {
		return err
	}
	from, to = locales.Canonical(from), locales.Canonical(to)
	if !s.working.Has(from) {
		return ErrLocaleMissing
	}
	if from == to {
		return nil
	}
	if !s.locales.Has(to) {
		return ErrLocaleUnknown
	}
	if s.working.Has(to) {
		return ErrLocaleInUse
	}
	next, err := records.Rekey(s.working, from, to)
	if err != nil {
		return err
	}
	s.working = next
	if s.active == from {
		s.active = to
	}
	s.log().Debug("session.locale.switched", "from", from, "to", to)
	return nil
}

// Cancel discards the working record and closes the session.
func (s *Session[T]) Cancel() {
	s.mu.Lock()
	s.working = s.original.Clone()
	s.mu.Unlock()
	s.Close()
}

// Close ends the session. Responses of submissions still in flight are
// discarded.
func (s *Session[T]) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.generation++
	unbind := s.unbind
	s.unbind = nil
	s.mu.Unlock()

	if unbind != nil {
		unbind()
	}
	s.log().Debug("session.closed")
}

// Bind keeps the known locales in sync with registry until ctx is done or the
// session closes. Empty emissions are ignored; edits on the working record
// survive set changes. The subscription is opened before the current list is
// read, and that list is dropped if an emission was applied in between.
func (s *Session[T]) Bind(ctx context.Context, registry interfaces.LocaleRegistry) error {
	s.mu.Lock()
	seen := s.localeUpdates
	s.mu.Unlock()

	unbind, err := locales.Watch(ctx, registry, s.applyLocales)
	if err != nil {
		return err
	}
	current, err := locales.Load(ctx, registry)
	if err != nil {
		unbind()
		return err
	}

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		unbind()
		return ErrClosed
	}
	previous := s.unbind
	s.unbind = unbind
	if !current.Empty() && s.localeUpdates == seen {
		s.locales = current
	}
	s.mu.Unlock()

	if previous != nil {
		previous()
	}
	return nil
}

func (s *Session[T]) applyLocales(set locales.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.locales = set
	s.localeUpdates++
	s.log().Debug("session.locales.updated", "locales", set.Len())
}

// Delete removes the stored record and closes the session.
func (s *Session[T]) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.syncer == nil {
		s.mu.Unlock()
		return ErrSyncerRequired
	}
	id := s.id
	s.mu.Unlock()

	if id == "" {
		return ErrNotPersisted
	}
	if err := s.syncer.Delete(ctx, id); err != nil {
		s.log().Error("session.delete.failed", "error", err)
		return err
	}
	s.log().Info("session.deleted")
	s.Close()
	return nil
}

func (s *Session[T]) requireState(want State) error {
	switch {
	case s.state == want:
		return nil
	case s.state == StateClosed:
		return ErrClosed
	case want == StateLoading:
		return ErrAlreadyOpen
	default:
		return ErrNotReady
	}
}

func (s *Session[T]) requireEditable() error {
	switch s.state {
	case StateReady, StateSubmitting, StateError:
		return nil
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotReady
	}
}

func (s *Session[T]) log() interfaces.Logger {
	return logging.WithRecordContext(s.logger, s.resource, "", "")
}

func zeroPayload[T any]() T {
	var zero T
	return zero
}

var _ Syncer[records.Category] = (*remote.RecordSync[records.Category])(nil)
