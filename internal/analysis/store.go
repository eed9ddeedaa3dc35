package analysis

import (
	"sync"
	"time"

	"github.com/gauravorbit07-glitch/brandpulse/internal/storage"
)

// DefaultErrorTTL is how long a transient trigger-failure message stays
// visible before the store clears it on its own.
const DefaultErrorTTL = 5 * time.Second

// Store is the analysis lifecycle store.
//
// All mutations are synchronous: by the time StartAnalysis returns, the new
// snapshot is installed, persisted, and every subscriber has been notified.
// Subscribers run without the store lock held and may read the snapshot;
// their invocation order is unspecified.
//
// Design decision: Store is constructor-created with injected dependencies
// (medium, clock) instead of process-wide state. Every test instantiates its
// own store over its own medium, so nothing leaks across tests or across
// the store and the credential vault sharing one database.
type Store struct {
	mu sync.Mutex

	// medium persists per-user lifecycle records.
	medium storage.Medium

	// scope derives the per-user storage keys.
	scope *storage.Scope

	// clock stamps trigger times; replaced in tests.
	clock Clock

	// errorTTL is how long a transient error stays before auto-clearing.
	errorTTL time.Duration

	// snapshot is the current state. The same pointer is returned from
	// Snapshot until the next mutation installs a new one.
	snapshot *State

	// lastError is the transient trigger-failure message, "" when none.
	lastError string

	// errorTimer clears lastError after errorTTL; nil when no error is up.
	errorTimer *time.Timer

	// subscribers keyed by registration id for O(1) unsubscribe.
	subscribers map[int]func()
	nextSubID   int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the clock used to stamp trigger times.
func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithErrorTTL sets how long a transient trigger-failure message stays
// before the store clears it. Must be positive.
func WithErrorTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.errorTTL = ttl
		}
	}
}

// NewStore creates a Store persisting to medium.
// The initial snapshot is loaded from the record of whichever user the
// medium's stored identity resolves to, so a restarted client resumes an
// in-flight run without an explicit SetUserID call.
func NewStore(medium storage.Medium, opts ...StoreOption) *Store {
	s := &Store{
		medium:      medium,
		scope:       storage.NewScope(medium),
		clock:       SystemClock{},
		errorTTL:    DefaultErrorTTL,
		subscribers: make(map[int]func()),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.snapshot = s.load()
	return s
}

// Subscribe registers fn to run after every state change and returns the
// matching unsubscribe function. Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state. The pointer is stable until the next
// mutation, supporting reference-equality change detection.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// LastError returns the transient trigger-failure message, or "" when none
// is active.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// StartAnalysis records a run for resourceID triggered now, persists it,
// and notifies subscribers. Always succeeds; a repeated call simply
// overwrites the trigger time and resource. Starting a run also clears the
// completion-announced marker so the next completion is announced afresh.
func (s *Store) StartAnalysis(resourceID string) {
	s.mu.Lock()
	s.snapshot = activeState(resourceID, s.clock.Now())
	s.persistLocked(s.snapshot)
	s.medium.Delete(s.scope.ScopedKey(storage.KeyAnalysisAnnounced))
	s.clearErrorLocked()
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// CompleteAnalysis resets to idle and persists the idle record.
// Safe to call when already idle.
func (s *Store) CompleteAnalysis() {
	s.mu.Lock()
	s.snapshot = idleState()
	s.persistLocked(s.snapshot)
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// ClearState resets to idle and removes the persisted record entirely.
// Used on stale-state recovery and when tearing down an account.
func (s *Store) ClearState() {
	s.mu.Lock()
	s.snapshot = idleState()
	s.medium.Delete(s.scope.ScopedKey(storage.KeyAnalysisState))
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// FailAnalysis reverts a failed trigger to idle, removes the persisted
// record, and raises a transient error message that auto-clears after the
// configured TTL. The store must never stay stuck "analyzing" behind a
// trigger call that the backend rejected.
func (s *Store) FailAnalysis(message string) {
	s.mu.Lock()
	s.snapshot = idleState()
	s.medium.Delete(s.scope.ScopedKey(storage.KeyAnalysisState))
	s.setErrorLocked(message)
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// ClearError drops the transient error immediately, if one is active.
func (s *Store) ClearError() {
	s.mu.Lock()
	changed := s.lastError != ""
	s.clearErrorLocked()
	subs := s.subscriberList()
	s.mu.Unlock()

	if changed {
		notify(subs)
	}
}

// SetUserID re-scopes the store to id and reloads that user's persisted
// record. This is a reload, not a reset: a genuinely in-flight run started
// by the same user before logout is resumed.
func (s *Store) SetUserID(id string) {
	s.mu.Lock()
	s.scope.SetUserID(id)
	s.snapshot = s.load()
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// ClearUserID forgets the scoping identity and resets the in-memory
// snapshot to idle without touching the persisted record, so the same user
// can resume on next login.
func (s *Store) ClearUserID() {
	s.mu.Lock()
	s.scope.SetUserID("")
	s.snapshot = idleState()
	subs := s.subscriberList()
	s.mu.Unlock()

	notify(subs)
}

// IsNewerThan reports whether data stamped at epoch-milliseconds ts
// postdates the recorded trigger. True when no trigger is recorded (there
// is nothing to be stale against) or when ts is strictly greater than the
// trigger time; false otherwise, meaning the data predates the current run.
func (s *Store) IsNewerThan(ts int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.TriggeredAt == nil {
		return true
	}
	return ts > *s.snapshot.TriggeredAt
}

// FirstAnalysisPending reports whether the user has yet to watch the
// analysis timeline to completion. Defaults to false when no flag exists.
func (s *Store) FirstAnalysisPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.medium.Get(s.scope.ScopedKey(storage.KeyFirstAnalysis))
	return ok && v == "1"
}

// SetFirstAnalysisPending records whether the first-run timeline is still
// owed to the user ("1") or has been seen ("0").
func (s *Store) SetFirstAnalysisPending(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := "0"
	if pending {
		v = "1"
	}
	s.medium.Set(s.scope.ScopedKey(storage.KeyFirstAnalysis), v)
}

// CompletionAnnounced reports whether the current run's completion has
// already been announced to the user.
func (s *Store) CompletionAnnounced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.medium.Get(s.scope.ScopedKey(storage.KeyAnalysisAnnounced))
	return ok && v == "1"
}

// MarkCompletionAnnounced records that the current run's completion has
// been announced, so it is not announced twice.
func (s *Store) MarkCompletionAnnounced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medium.Set(s.scope.ScopedKey(storage.KeyAnalysisAnnounced), "1")
}

// load reads the persisted record for the current scope, substituting idle
// for anything missing or malformed. Callers must hold s.mu.
func (s *Store) load() *State {
	raw, ok := s.medium.Get(s.scope.ScopedKey(storage.KeyAnalysisState))
	if !ok {
		return idleState()
	}
	return unmarshalState(raw)
}

// persistLocked writes the snapshot under the current scope's key.
// Serialization failures degrade to in-memory-only state for this mutation.
func (s *Store) persistLocked(state *State) {
	raw, ok := marshalState(state)
	if !ok {
		return
	}
	s.medium.Set(s.scope.ScopedKey(storage.KeyAnalysisState), raw)
}

// setErrorLocked installs a transient error and arms its auto-clear timer,
// replacing any timer already pending.
func (s *Store) setErrorLocked(message string) {
	if s.errorTimer != nil {
		s.errorTimer.Stop()
	}
	s.lastError = message
	s.errorTimer = time.AfterFunc(s.errorTTL, s.ClearError)
}

// clearErrorLocked drops the transient error and disarms its timer.
func (s *Store) clearErrorLocked() {
	if s.errorTimer != nil {
		s.errorTimer.Stop()
		s.errorTimer = nil
	}
	s.lastError = ""
}

// subscriberList copies the current subscribers for invocation outside the
// lock. Callers must hold s.mu.
func (s *Store) subscriberList() []func() {
	subs := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// notify invokes each subscriber in turn.
func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
