package vault

import (
	"github.com/gauravorbit07-glitch/brandpulse/internal/storage"
)

// EncryptedScope wraps one storage medium with sealing, key hashing, and
// the legacy-plaintext migration. The session and persistent scopes are two
// instances of this one type over different media, not two implementations.
type EncryptedScope struct {
	medium storage.Medium
	cipher *Cipher
}

// NewEncryptedScope creates an EncryptedScope over medium using cipher.
func NewEncryptedScope(medium storage.Medium, cipher *Cipher) *EncryptedScope {
	return &EncryptedScope{medium: medium, cipher: cipher}
}

// Set seals value and writes it under the hashed form of logicalKey.
// Seal failures are swallowed: the value is simply absent on the next read
// and the session behaves as logged-out.
func (s *EncryptedScope) Set(logicalKey, value string) {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return
	}
	s.medium.Set(s.cipher.HashKey(logicalKey), sealed)
}

// Get reads and opens the value stored under logicalKey.
// The read order implements the one-time upgrade from the legacy plaintext
// layout: try the encrypted entry first; on miss, look for a plaintext value
// under the bare logical key, re-write it encrypted, delete the plaintext
// copy, and return it. Absence is "", never an error.
func (s *EncryptedScope) Get(logicalKey string) string {
	if sealed, ok := s.medium.Get(s.cipher.HashKey(logicalKey)); ok {
		if plain, ok := s.cipher.Open(sealed); ok {
			return plain
		}
		// Undecryptable entry (tampered or written with a different
		// secret): treat as absent and fall through to migration.
	}

	legacy, ok := s.medium.Get(logicalKey)
	if !ok {
		return ""
	}
	s.Set(logicalKey, legacy)
	s.medium.Delete(logicalKey)
	return legacy
}

// Delete removes both the encrypted entry and any legacy plaintext copy.
// Tolerant of either being absent.
func (s *EncryptedScope) Delete(logicalKey string) {
	s.medium.Delete(s.cipher.HashKey(logicalKey))
	s.medium.Delete(logicalKey)
}

// sessionKeys are the logical keys stored in the session scope.
// The bearer token must not outlive the process.
var sessionKeys = []string{
	storage.KeyAccessToken,
}

// persistentKeys are the logical keys stored in the persistent scope.
var persistentKeys = []string{
	storage.KeySessionID,
	storage.KeyUserID,
	storage.KeyApplicationID,
	storage.KeyFirstName,
	storage.KeyApplications,
	storage.KeyProducts,
}

// Vault gives named accessors over the two encrypted scopes for the fixed
// set of credential and identity fields. Every getter returns "" when the
// field is absent; no accessor ever fails.
type Vault struct {
	// session holds short-lived bearer credentials.
	session *EncryptedScope

	// persistent holds identity fields that survive restarts.
	persistent *EncryptedScope
}

// New creates a Vault over the given session and persistent media,
// sealing everything with keys derived from secret.
func New(session, persistent storage.Medium, secret string) (*Vault, error) {
	cipher, err := NewCipher(secret)
	if err != nil {
		return nil, err
	}
	return &Vault{
		session:    NewEncryptedScope(session, cipher),
		persistent: NewEncryptedScope(persistent, cipher),
	}, nil
}

// SetAccessToken stores the bearer credential in the session scope.
func (v *Vault) SetAccessToken(token string) { v.session.Set(storage.KeyAccessToken, token) }

// AccessToken returns the bearer credential, or "" when logged out.
func (v *Vault) AccessToken() string { return v.session.Get(storage.KeyAccessToken) }

// SetSessionID stores the backend session identifier.
func (v *Vault) SetSessionID(id string) { v.persistent.Set(storage.KeySessionID, id) }

// SessionID returns the backend session identifier.
func (v *Vault) SessionID() string { return v.persistent.Get(storage.KeySessionID) }

// SetUserID stores the account identifier.
func (v *Vault) SetUserID(id string) { v.persistent.Set(storage.KeyUserID, id) }

// UserID returns the account identifier.
func (v *Vault) UserID() string { return v.persistent.Get(storage.KeyUserID) }

// SetApplicationID stores the active application identifier.
func (v *Vault) SetApplicationID(id string) { v.persistent.Set(storage.KeyApplicationID, id) }

// ApplicationID returns the active application identifier.
func (v *Vault) ApplicationID() string { return v.persistent.Get(storage.KeyApplicationID) }

// SetFirstName stores the account display name.
func (v *Vault) SetFirstName(name string) { v.persistent.Set(storage.KeyFirstName, name) }

// FirstName returns the account display name.
func (v *Vault) FirstName() string { return v.persistent.Get(storage.KeyFirstName) }

// SetApplications stores the JSON array of the account's applications.
func (v *Vault) SetApplications(jsonValue string) { v.persistent.Set(storage.KeyApplications, jsonValue) }

// Applications returns the JSON array of the account's applications.
func (v *Vault) Applications() string { return v.persistent.Get(storage.KeyApplications) }

// SetProducts stores the JSON array of the account's products.
func (v *Vault) SetProducts(jsonValue string) { v.persistent.Set(storage.KeyProducts, jsonValue) }

// Products returns the JSON array of the account's products.
func (v *Vault) Products() string { return v.persistent.Get(storage.KeyProducts) }

// ClearAll removes every credential field from both scopes, including any
// legacy plaintext copies that were never read (and therefore never
// migrated). Tolerant of missing keys; used on logout and on credential
// expiry.
func (v *Vault) ClearAll() {
	for _, key := range sessionKeys {
		v.session.Delete(key)
	}
	for _, key := range persistentKeys {
		v.persistent.Delete(key)
	}
}
