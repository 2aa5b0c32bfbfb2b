package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
)

// Submit validates the working record locally and sends it to the remote
// service. Domain failures are reported through the Result and the error
// tree; the returned error is non-nil only for unclassified remote failures
// (returned unmodified) and for misuse of the session.
func (s *Session[T]) Submit(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if err := s.requireEditable(); err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	if s.syncer == nil {
		s.mu.Unlock()
		return Result{}, ErrSyncerRequired
	}

	s.errors = ErrorTree{}
	logger := s.log()

	if s.working.Len() == 0 {
		s.errors.set(RecordLevel, "translations", MessageRequired)
		s.settleLocked()
		result := s.resultLocked(OutcomeBlocked)
		s.mu.Unlock()
		logger.Debug("session.submit.blocked", "reason", "no_translations")
		return result, nil
	}
	if s.id != "" && s.working.Equal(s.original) {
		result := s.resultLocked(OutcomeUnchanged)
		s.mu.Unlock()
		return result, nil
	}
	if conflicts := records.ValidateSlugs(s.working); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			s.errors.set(conflict.Locale, records.FieldSlug, MessageDuplicate)
		}
		s.settleLocked()
		result := s.resultLocked(OutcomeBlocked)
		s.mu.Unlock()
		logger.Debug("session.submit.blocked", "reason", "duplicate_slug", "conflicts", len(conflicts))
		return result, nil
	}

	snapshot := s.working.Clone()
	id := s.id
	generation := s.generation
	s.inflight++
	s.state = StateSubmitting
	s.mu.Unlock()

	newID, err := s.syncer.Submit(ctx, id, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if generation != s.generation || s.state == StateClosed {
		logger.Debug("session.submit.discarded")
		return Result{Outcome: OutcomeDiscarded, RecordID: id}, nil
	}

	switch remote.Classify(err) {
	case remote.KindNone:
		if newID != "" {
			s.id = newID
		}
		s.original = snapshot
		s.errors = ErrorTree{}
		s.settleLocked()
		logger.Info("session.submit.saved", "record_id", s.id, "locales", snapshot.Len())
		return s.resultLocked(OutcomeSaved), nil

	case remote.KindFieldValidation:
		var fields map[string]string
		var fieldErr *remote.FieldValidationError
		if errors.As(err, &fieldErr) && fieldErr != nil {
			fields = fieldErr.Fields
		}
		s.errors = distributeFieldErrors(fields, snapshot.Keys())
		s.settleLocked()
		logger.Debug("session.submit.rejected", "reason", "field_validation", "fields", len(fields))
		return s.resultLocked(OutcomeRejected), nil

	case remote.KindDuplicateKey:
		locale, field := RecordLevel, records.FieldSlug
		var dupErr *remote.DuplicateKeyError
		if errors.As(err, &dupErr) && dupErr != nil {
			locale = locateDuplicate(dupErr, snapshot)
			if dupErr.Field != "" {
				field = dupErr.Field
			}
		}
		s.errors = ErrorTree{}
		s.errors.set(locale, field, MessageDuplicate)
		s.settleLocked()
		logger.Debug("session.submit.rejected", "reason", "duplicate_key", "field", field)
		return s.resultLocked(OutcomeRejected), nil

	case remote.KindUpdateConflict:
		s.settleLocked()
		logger.Debug("session.submit.deferred")
		return s.resultLocked(OutcomeDeferred), nil

	default:
		s.state = StateError
		logger.Error("session.submit.failed", "error", err)
		return s.resultLocked(OutcomeFailed), err
	}
}

// settleLocked leaves Submitting once no submission is in flight.
func (s *Session[T]) settleLocked() {
	if s.inflight > 0 {
		s.state = StateSubmitting
		return
	}
	s.state = StateReady
}

func (s *Session[T]) resultLocked(outcome Outcome) Result {
	return Result{Outcome: outcome, RecordID: s.id, Errors: s.errors.Clone()}
}

// distributeFieldErrors routes path-keyed messages to their locale. Paths
// look like "translations.<locale>.<field>" or "<locale>.<field>"; anything
// not naming a submitted locale is record-level.
func distributeFieldErrors(fields map[string]string, submitted []string) ErrorTree {
	known := make(map[string]struct{}, len(submitted))
	for _, locale := range submitted {
		known[locale] = struct{}{}
	}

	tree := ErrorTree{}
	for path, message := range fields {
		trimmed := strings.TrimPrefix(strings.TrimSpace(path), "translations.")
		head, rest, _ := strings.Cut(trimmed, ".")
		locale := locales.Canonical(head)
		if _, ok := known[locale]; ok {
			tree.set(locale, rest, message)
			continue
		}
		tree.set(RecordLevel, path, message)
	}
	return tree
}

// locateDuplicate returns the locale the duplicate belongs to, searching the
// snapshot by value when the service omitted the locale.
func locateDuplicate[T records.Translation[T]](dup *remote.DuplicateKeyError, snapshot records.Record[T]) string {
	if locale := locales.Canonical(dup.Locale); locale != "" && snapshot.Has(locale) {
		return locale
	}
	for _, entry := range snapshot.Entries() {
		value, ok := entry.Payload.Values()[dup.Field]
		if !ok {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(value)) == strings.TrimSpace(dup.Value) {
			return entry.Locale
		}
	}
	return RecordLevel
}
