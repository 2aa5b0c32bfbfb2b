package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-cms-editor/internal/locales"
	"github.com/goliatone/go-cms-editor/internal/records"
	"github.com/goliatone/go-cms-editor/internal/remote"
	"github.com/goliatone/go-cms-editor/internal/session"
)

type stubSyncer struct {
	mu      sync.Mutex
	calls   int
	sent    []records.Record[records.Category]
	deleted []string
	submit  func(ctx context.Context, id string, record records.Record[records.Category]) (string, error)
}

func (s *stubSyncer) Submit(ctx context.Context, id string, record records.Record[records.Category]) (string, error) {
	s.mu.Lock()
	s.calls++
	s.sent = append(s.sent, record)
	fn := s.submit
	s.mu.Unlock()
	if fn == nil {
		if id == "" {
			return "cat-1", nil
		}
		return id, nil
	}
	return fn(ctx, id, record)
}

func (s *stubSyncer) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubSyncer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func mustLocales(t *testing.T, ids ...string) locales.Set {
	t.Helper()
	set, err := locales.ParseSet(ids...)
	if err != nil {
		t.Fatalf("parse locales: %v", err)
	}
	return set
}

func newCategorySession(t *testing.T, syncer session.Syncer[records.Category], ids ...string) *session.Session[records.Category] {
	t.Helper()
	if len(ids) == 0 {
		ids = []string{"en", "fr", "de"}
	}
	return session.New(syncer,
		session.WithLocales[records.Category](mustLocales(t, ids...)),
		session.WithResource[records.Category]("categories"),
	)
}

func TestOpenSeedsFirstLocaleWithoutChanges(t *testing.T) {
	s := newCategorySession(t, &stubSyncer{})
	if err := s.Open(""); err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.State() != session.StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}
	if got := s.Working().Keys(); len(got) != 1 || got[0] != "en" {
		t.Fatalf("expected [en], got %v", got)
	}
	if s.ActiveLocale() != "en" {
		t.Fatalf("expected active en, got %q", s.ActiveLocale())
	}
	if s.HasChanges() {
		t.Fatalf("expected no changes after open")
	}
	if err := s.Open("fr"); !errors.Is(err, session.ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestOpenRejectsUnknownSeed(t *testing.T) {
	s := newCategorySession(t, &stubSyncer{})
	if err := s.Open("it"); !errors.Is(err, session.ErrLocaleUnknown) {
		t.Fatalf("expected ErrLocaleUnknown, got %v", err)
	}
	empty := session.New[records.Category](&stubSyncer{})
	if err := empty.Open(""); !errors.Is(err, session.ErrNoLocales) {
		t.Fatalf("expected ErrNoLocales, got %v", err)
	}
}

func TestEditThenSubmitClearsChanges(t *testing.T) {
	syncer := &stubSyncer{}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EditField("en", records.FieldTitle, "Hello"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.EditField("en", records.FieldSlug, "hello"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !s.HasChanges() {
		t.Fatalf("expected changes after edit")
	}
	if original, _ := s.Original().Get("en"); original.Title != "" {
		t.Fatalf("edits must not reach the original, got %q", original.Title)
	}

	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != session.OutcomeSaved || result.RecordID != "cat-1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if s.HasChanges() {
		t.Fatalf("expected no changes after successful submit")
	}
	if s.ID() != "cat-1" || s.State() != session.StateReady {
		t.Fatalf("unexpected id %q state %s", s.ID(), s.State())
	}

	result, err = s.Submit(context.Background())
	if err != nil || result.Outcome != session.OutcomeUnchanged {
		t.Fatalf("expected unchanged, got %+v %v", result, err)
	}
	if syncer.callCount() != 1 {
		t.Fatalf("expected one remote call, got %d", syncer.callCount())
	}
}

func TestSubmitBlocksDuplicateSlugs(t *testing.T) {
	syncer := &stubSyncer{}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldTitle, "Hello")
	mustEdit(t, s, "en", records.FieldSlug, "bonjour")
	if _, err := s.AddLocale("fr"); err != nil {
		t.Fatalf("add fr: %v", err)
	}
	mustEdit(t, s, "fr", records.FieldTitle, "Bonjour")
	mustEdit(t, s, "fr", records.FieldSlug, "bonjour")

	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != session.OutcomeBlocked {
		t.Fatalf("expected blocked, got %s", result.Outcome)
	}
	if got := s.Errors().Get("fr", "slug"); got != "duplicate" {
		t.Fatalf("expected errors.fr.slug duplicate, got %q", got)
	}
	if s.Errors().Has("en") {
		t.Fatalf("first occurrence must not be flagged")
	}
	if syncer.callCount() != 0 {
		t.Fatalf("expected no remote call")
	}
	if s.State() != session.StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}

	mustEdit(t, s, "fr", records.FieldSlug, "bonjour-fr")
	result, err = s.Submit(context.Background())
	if err != nil || result.Outcome != session.OutcomeSaved {
		t.Fatalf("expected saved, got %+v %v", result, err)
	}
	if !s.Errors().Empty() {
		t.Fatalf("expected errors cleared, got %v", s.Errors())
	}
}

func TestSubmitWithoutTranslationsIsBlocked(t *testing.T) {
	s := newCategorySession(t, &stubSyncer{})
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.RemoveLocale("en"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.ActiveLocale() != "" {
		t.Fatalf("expected no active locale")
	}
	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != session.OutcomeBlocked || result.Errors.Get(session.RecordLevel, "translations") != "required" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSubmitDistributesRemoteFieldErrors(t *testing.T) {
	client := remote.NewMemoryClient(
		remote.WithValidators("categories", remote.PayloadValidator(records.CategoryFromValues)),
	)
	syncer := remote.NewRecordSync(client, "categories", records.CategoryFromValues)
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldSlug, "hello")

	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != session.OutcomeRejected {
		t.Fatalf("expected rejected, got %s", result.Outcome)
	}
	if s.Errors().Get("en", "title") == "" {
		t.Fatalf("expected en.title message, got %v", s.Errors())
	}
	if !s.HasChanges() {
		t.Fatalf("rejected submissions keep the working record dirty")
	}
}

func TestSubmitFieldErrorPaths(t *testing.T) {
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		return "", &remote.FieldValidationError{Fields: map[string]string{
			"translations.en.title": "cannot be blank",
			"en.slug":               "must be a valid slug",
			"translations.it.title": "cannot be blank",
			"name":                  "taken",
		}}
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	tree := s.Errors()
	if tree.Get("en", "title") != "cannot be blank" || tree.Get("en", "slug") != "must be a valid slug" {
		t.Fatalf("unexpected en messages %v", tree["en"])
	}
	if tree.Get(session.RecordLevel, "translations.it.title") != "cannot be blank" {
		t.Fatalf("unknown locale should be record-level, got %v", tree)
	}
	if tree.Get(session.RecordLevel, "name") != "taken" {
		t.Fatalf("expected record-level name, got %v", tree)
	}
}

func TestSubmitLocatesDuplicateByValue(t *testing.T) {
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		return "", &remote.DuplicateKeyError{Field: "slug", Value: "salut"}
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldSlug, "hello")
	if _, err := s.AddLocale(""); err != nil {
		t.Fatalf("add next: %v", err)
	}
	if s.ActiveLocale() != "fr" {
		t.Fatalf("expected fr active, got %q", s.ActiveLocale())
	}
	mustEdit(t, s, "fr", records.FieldSlug, "salut")

	result, err := s.Submit(context.Background())
	if err != nil || result.Outcome != session.OutcomeRejected {
		t.Fatalf("expected rejected, got %+v %v", result, err)
	}
	if s.Errors().Get("fr", "slug") != "duplicate" {
		t.Fatalf("expected fr.slug duplicate, got %v", s.Errors())
	}
}

func TestSubmitConflictIsDeferred(t *testing.T) {
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		return "", remote.ErrUpdateConflict
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldTitle, "Hello")
	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("conflict must be silent, got %v", err)
	}
	if result.Outcome != session.OutcomeDeferred || !result.Errors.Empty() {
		t.Fatalf("unexpected result %+v", result)
	}
	if s.State() != session.StateReady || !s.HasChanges() {
		t.Fatalf("expected ready with pending changes")
	}
}

func TestSubmitUnclassifiedErrorIsReturnedUnmodified(t *testing.T) {
	cause := errors.New("gateway timeout")
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		return "", cause
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	result, err := s.Submit(context.Background())
	if err != cause {
		t.Fatalf("expected the original error, got %v", err)
	}
	if result.Outcome != session.OutcomeFailed || s.State() != session.StateError {
		t.Fatalf("unexpected result %+v state %s", result, s.State())
	}

	syncer.mu.Lock()
	syncer.submit = nil
	syncer.mu.Unlock()
	if result, err := s.Submit(context.Background()); err != nil || result.Outcome != session.OutcomeSaved {
		t.Fatalf("expected retry from error state to save, got %+v %v", result, err)
	}
}

func TestSubmitToleratesNilTypedRemoteErrors(t *testing.T) {
	var fieldErr *remote.FieldValidationError
	var dupErr *remote.DuplicateKeyError
	responses := []error{fieldErr, dupErr}

	for _, response := range responses {
		syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
			return "", response
		}}
		s := newCategorySession(t, syncer)
		if err := s.Open("en"); err != nil {
			t.Fatalf("open: %v", err)
		}
		result, err := s.Submit(context.Background())
		if err != nil {
			t.Fatalf("expected rejection without error, got %v", err)
		}
		if result.Outcome != session.OutcomeRejected || s.State() != session.StateReady {
			t.Fatalf("unexpected result %+v state %s", result, s.State())
		}
	}
}

func TestBlockedSubmitFromErrorStateReturnsToReady(t *testing.T) {
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		return "", errors.New("connection reset")
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldSlug, "hello")
	if _, err := s.Submit(context.Background()); err == nil || s.State() != session.StateError {
		t.Fatalf("expected error state, got %s (%v)", s.State(), err)
	}

	if _, err := s.AddLocale("fr"); err != nil {
		t.Fatalf("add fr: %v", err)
	}
	mustEdit(t, s, "fr", records.FieldSlug, "hello")
	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("blocked submit must not error, got %v", err)
	}
	if result.Outcome != session.OutcomeBlocked || s.State() != session.StateReady {
		t.Fatalf("expected blocked in ready, got %+v state %s", result, s.State())
	}
	if syncer.callCount() != 1 {
		t.Fatalf("blocked submit must not reach the remote, got %d calls", syncer.callCount())
	}
}

func TestLateResponseAfterCloseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	syncer := &stubSyncer{submit: func(context.Context, string, records.Record[records.Category]) (string, error) {
		close(started)
		<-release
		return "cat-9", nil
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldTitle, "Hello")

	done := make(chan session.Result, 1)
	go func() {
		result, _ := s.Submit(context.Background())
		done <- result
	}()
	<-started
	if s.State() != session.StateSubmitting {
		t.Fatalf("expected submitting, got %s", s.State())
	}
	s.Cancel()
	close(release)

	select {
	case result := <-done:
		if result.Outcome != session.OutcomeDiscarded {
			t.Fatalf("expected discarded, got %s", result.Outcome)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("submit did not return")
	}
	if s.ID() != "" {
		t.Fatalf("late response must not assign an id")
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, session.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestLastResponseWins(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	startedFirst := make(chan struct{})
	startedSecond := make(chan struct{})
	var n int
	var nMu sync.Mutex
	syncer := &stubSyncer{submit: func(_ context.Context, _ string, _ records.Record[records.Category]) (string, error) {
		nMu.Lock()
		n++
		call := n
		nMu.Unlock()
		if call == 1 {
			close(startedFirst)
			<-first
			return "", remote.ErrUpdateConflict
		}
		close(startedSecond)
		<-second
		return "cat-2", nil
	}}
	s := newCategorySession(t, syncer)
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldTitle, "One")

	results := make(chan session.Result, 2)
	go func() { r, _ := s.Submit(context.Background()); results <- r }()
	<-startedFirst
	mustEdit(t, s, "en", records.FieldTitle, "Two")
	go func() { r, _ := s.Submit(context.Background()); results <- r }()
	<-startedSecond

	close(second)
	if r := <-results; r.Outcome != session.OutcomeSaved {
		t.Fatalf("expected second submission saved, got %s", r.Outcome)
	}
	if s.State() != session.StateSubmitting {
		t.Fatalf("expected submitting while the first call is in flight, got %s", s.State())
	}
	close(first)
	if r := <-results; r.Outcome != session.OutcomeDeferred {
		t.Fatalf("expected first submission deferred, got %s", r.Outcome)
	}
	if s.State() != session.StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}
	saved, _ := s.Original().Get("en")
	if saved.Title != "Two" || s.HasChanges() {
		t.Fatalf("expected the saved snapshot to be the second one, got %q", saved.Title)
	}
}

func TestLocaleOperations(t *testing.T) {
	s := newCategorySession(t, &stubSyncer{})
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AddLocale("it"); !errors.Is(err, session.ErrLocaleUnknown) {
		t.Fatalf("expected ErrLocaleUnknown, got %v", err)
	}
	if _, err := s.AddLocale("en"); !errors.Is(err, session.ErrLocaleInUse) {
		t.Fatalf("expected ErrLocaleInUse, got %v", err)
	}
	if _, err := s.AddLocale("fr"); err != nil {
		t.Fatalf("add fr: %v", err)
	}
	mustEdit(t, s, "fr", records.FieldTitle, "Bonjour")

	if err := s.SwitchLocale("fr", "en"); !errors.Is(err, session.ErrLocaleInUse) {
		t.Fatalf("expected ErrLocaleInUse, got %v", err)
	}
	if err := s.SwitchLocale("fr", "de"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if s.ActiveLocale() != "de" {
		t.Fatalf("expected active to follow the switch, got %q", s.ActiveLocale())
	}
	moved, ok := s.Working().Get("de")
	if !ok || moved.Title != "Bonjour" {
		t.Fatalf("expected payload moved to de, got %+v", moved)
	}
	if got := s.Available().IDs(); len(got) != 1 || got[0] != "fr" {
		t.Fatalf("expected fr available, got %v", got)
	}

	if err := s.SetActiveLocale("fr"); !errors.Is(err, session.ErrLocaleMissing) {
		t.Fatalf("expected ErrLocaleMissing, got %v", err)
	}
	if err := s.RemoveLocale("de"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.ActiveLocale() != "en" {
		t.Fatalf("expected en active after removing de, got %q", s.ActiveLocale())
	}
	if err := s.EditField("de", records.FieldTitle, "x"); !errors.Is(err, session.ErrLocaleMissing) {
		t.Fatalf("expected ErrLocaleMissing, got %v", err)
	}
}

func TestLoadedRecordTracksChanges(t *testing.T) {
	record := records.FromEntries(
		records.Entry[records.Category]{Locale: "en", Payload: records.Category{Title: "Hello", Slug: "hello"}},
		records.Entry[records.Category]{Locale: "pt", Payload: records.Category{Title: "Ola", Slug: "ola"}},
	)
	syncer := &stubSyncer{}
	s := newCategorySession(t, syncer)
	if err := s.Load("cat-7", record); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.HasChanges() {
		t.Fatalf("expected no changes after load")
	}
	if !s.Working().Has("pt") {
		t.Fatalf("stale locales must be kept")
	}
	mustEdit(t, s, "en", records.FieldTitle, "Hello")
	if s.HasChanges() {
		t.Fatalf("setting the same value is not a change")
	}
	mustEdit(t, s, "en", records.FieldDescription, "Greetings")
	result, err := s.Submit(context.Background())
	if err != nil || result.Outcome != session.OutcomeSaved || result.RecordID != "cat-7" {
		t.Fatalf("unexpected result %+v %v", result, err)
	}

	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(syncer.deleted) != 1 || syncer.deleted[0] != "cat-7" {
		t.Fatalf("expected cat-7 deleted, got %v", syncer.deleted)
	}
	if s.State() != session.StateClosed {
		t.Fatalf("expected closed after delete")
	}
}

func TestDeleteRequiresPersistedRecord(t *testing.T) {
	s := newCategorySession(t, &stubSyncer{})
	if err := s.Open("en"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Delete(context.Background()); !errors.Is(err, session.ErrNotPersisted) {
		t.Fatalf("expected ErrNotPersisted, got %v", err)
	}
}

func TestBindFollowsRegistry(t *testing.T) {
	en, _ := locales.NewDescriptor("en", "")
	fr, _ := locales.NewDescriptor("fr", "")
	registry := locales.NewMemoryRegistry(en)

	s := session.New[records.Category](&stubSyncer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Bind(ctx, registry); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := s.Open(""); err != nil {
		t.Fatalf("open: %v", err)
	}
	mustEdit(t, s, "en", records.FieldTitle, "Hello")

	registry.Add(fr)
	waitFor(t, func() bool { return s.Locales().Has("fr") })
	if _, err := s.AddLocale("fr"); err != nil {
		t.Fatalf("add fr after registry update: %v", err)
	}

	registry.Replace()
	registry.Replace(fr)
	waitFor(t, func() bool { return !s.Locales().Has("en") })
	if s.Locales().Len() != 1 {
		t.Fatalf("expected empty emission to be ignored, got %v", s.Locales().IDs())
	}
	if got, _ := s.Working().Get("en"); got.Title != "Hello" {
		t.Fatalf("edits must survive locale changes, got %+v", got)
	}

	s.Close()
	registry.Replace(en, fr)
	time.Sleep(20 * time.Millisecond)
	if s.Locales().Has("en") {
		t.Fatalf("closed session must stop following the registry")
	}
}

type addOnReadRegistry struct {
	*locales.MemoryRegistry
	once  sync.Once
	extra locales.Descriptor
}

func (r *addOnReadRegistry) Current(ctx context.Context) ([]locales.Descriptor, error) {
	list, err := r.MemoryRegistry.Current(ctx)
	r.once.Do(func() { r.MemoryRegistry.Add(r.extra) })
	return list, err
}

func TestBindKeepsChangeMadeWhileLoading(t *testing.T) {
	en, _ := locales.NewDescriptor("en", "")
	fr, _ := locales.NewDescriptor("fr", "")
	registry := &addOnReadRegistry{MemoryRegistry: locales.NewMemoryRegistry(en), extra: fr}

	s := session.New[records.Category](&stubSyncer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Bind(ctx, registry); err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer s.Close()

	waitFor(t, func() bool { return s.Locales().Has("fr") })
}

type pendingRegistry struct {
	current []locales.Descriptor
	pending []locales.Descriptor
}

func (r pendingRegistry) Current(context.Context) ([]locales.Descriptor, error) {
	return r.current, nil
}

func (r pendingRegistry) Subscribe(ctx context.Context) (<-chan []locales.Descriptor, error) {
	ch := make(chan []locales.Descriptor, 1)
	ch <- r.pending
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func TestBindDoesNotOverwriteNewerEmission(t *testing.T) {
	en, _ := locales.NewDescriptor("en", "")
	fr, _ := locales.NewDescriptor("fr", "")
	registry := pendingRegistry{
		current: []locales.Descriptor{en},
		pending: []locales.Descriptor{en, fr},
	}

	for i := 0; i < 200; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		s := session.New[records.Category](&stubSyncer{})
		if err := s.Bind(ctx, registry); err != nil {
			cancel()
			t.Fatalf("bind: %v", err)
		}
		waitFor(t, func() bool { return s.Locales().Has("fr") })
		s.Close()
		cancel()
	}
}

func mustEdit(t *testing.T, s *session.Session[records.Category], locale, field string, value any) {
	t.Helper()
	if err := s.EditField(locale, field, value); err != nil {
		t.Fatalf("edit %s.%s: %v", locale, field, err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
