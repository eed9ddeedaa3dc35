package storage

import "sync"

// Canonical base keys for all client state.
// Per-user records are never written under these names directly; they go
// through Scope.ScopedKey so that each logged-in account gets its own copy.
// The bare names double as the legacy plaintext locations consumed by the
// one-time credential migration.
const (
	// KeyAnalysisState holds the JSON analysis lifecycle record.
	KeyAnalysisState = "analysis_state"

	// KeyFirstAnalysis holds the "1"/"0" flag that is "1" until the user has
	// watched the analysis progress timeline to completion once.
	KeyFirstAnalysis = "first_analysis"

	// KeyAnalysisAnnounced marks that the completion of the current analysis
	// run has already been announced to the user.
	KeyAnalysisAnnounced = "analysis_announced"

	// KeyAccessToken holds the short-lived bearer credential (session scope).
	KeyAccessToken = "access_token"

	// KeySessionID holds the backend session identifier.
	KeySessionID = "session_id"

	// KeyUserID holds the account identifier that scopes all other records.
	KeyUserID = "user_id"

	// KeyApplicationID holds the active application identifier.
	KeyApplicationID = "application_id"

	// KeyFirstName holds the account display name.
	KeyFirstName = "first_name"

	// KeyApplications holds the JSON array of the account's applications.
	KeyApplications = "applications"

	// KeyProducts holds the JSON array of the account's products.
	KeyProducts = "products"
)

// Scope derives storage keys that isolate per-user data inside a medium
// shared by every account that has used this machine profile.
//
// The scoping identity resolves in priority order: an explicit override set
// with SetUserID, then a lookup of a plaintext user-id record in the
// persistent medium. The fallback reads the medium directly, so callers
// that keep the user id encrypted must pass the decrypted id to SetUserID.
// When neither yields an id the bare base key is used, which is the correct
// behavior for the anonymous pre-login state.
//
// Design decision: Scope is an explicit object with an injected Medium
// rather than package-level state. Each test (and each store) gets its own
// resolver, so scoping behavior never leaks between tests or between a
// store and the vault.
type Scope struct {
	mu sync.RWMutex

	// userID is the cached scoping identity, set at login.
	userID string

	// persistent is consulted as a fallback when no identity is cached.
	// Only a plaintext user-id record is visible here; an encrypted
	// identity has to come in through SetUserID.
	persistent Medium
}

// NewScope creates a Scope that falls back to the given persistent medium
// when no user id has been set explicitly. The medium may be nil, in which
// case only explicitly set ids resolve.
func NewScope(persistent Medium) *Scope {
	return &Scope{persistent: persistent}
}

// SetUserID caches id as the scoping identity. An empty id clears the cache,
// returning the Scope to fallback resolution.
func (s *Scope) SetUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
}

// UserID resolves the active scoping identity.
// Returns "" when no identity is resolvable.
func (s *Scope) UserID() string {
	s.mu.RLock()
	cached := s.userID
	s.mu.RUnlock()

	if cached != "" {
		return cached
	}
	if s.persistent != nil {
		if v, ok := s.persistent.Get(KeyUserID); ok {
			return v
		}
	}
	return ""
}

// ScopedKey returns baseKey + "_" + id when a user id resolves, otherwise
// baseKey unchanged. Pure aside from the identity lookup; never fails.
func (s *Scope) ScopedKey(baseKey string) string {
	return s.ScopedKeyFor(baseKey, "")
}

// ScopedKeyFor is ScopedKey with an explicit user id that takes priority
// over the resolved identity. An empty override falls through to UserID.
func (s *Scope) ScopedKeyFor(baseKey, userID string) string {
	id := userID
	if id == "" {
		id = s.UserID()
	}
	if id == "" {
		return baseKey
	}
	return baseKey + "_" + id
}
