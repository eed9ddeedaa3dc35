package vault

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// ErrEmptySecret is returned when a Cipher is created without a shared secret.
// An empty secret would make every installation's data trivially readable.
var ErrEmptySecret = errors.New("vault: shared secret must not be empty")

// hkdf info labels separate the two derived keys. Changing either label
// invalidates all existing sealed data.
const (
	infoSealKey = "brandpulse/seal/v1"
	infoHashKey = "brandpulse/keyhash/v1"
)

// Cipher seals and opens values with keys derived from one shared secret.
//
// Design decision: We derive two independent keys with HKDF rather than
// using the raw secret for both sealing and key hashing. Reusing one key
// for two primitives is a classic cross-protocol mistake; HKDF makes the
// separation explicit and cheap.
type Cipher struct {
	// sealKey is the 256-bit ChaCha20-Poly1305 key for values.
	sealKey []byte

	// hashKey is the 256-bit HMAC-SHA256 key for logical storage keys.
	hashKey []byte
}

// NewCipher derives a Cipher from the shared secret.
// Returns ErrEmptySecret when secret is empty.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	sealKey, err := deriveKey(secret, infoSealKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive seal key: %w", err)
	}
	hashKey, err := deriveKey(secret, infoHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive hash key: %w", err)
	}

	return &Cipher{sealKey: sealKey, hashKey: hashKey}, nil
}

// deriveKey expands the secret into a 32-byte key bound to the given label.
func deriveKey(secret, info string) ([]byte, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// HashKey returns the physical storage key for a logical key: the
// hex-encoded HMAC-SHA256 of the logical key under the hash key.
// Deterministic, so the same logical key always maps to the same entry.
func (c *Cipher) HashKey(logicalKey string) string {
	mac := hmac.New(sha256.New, c.hashKey)
	mac.Write([]byte(logicalKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// Seal encrypts plaintext and returns a base64 string safe to store in a
// text-valued medium. A fresh random nonce is prepended to the ciphertext.
func (c *Cipher) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(c.sealKey)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
// Any failure (bad base64, truncated data, wrong key, tampered ciphertext)
// reports the value as absent via the ok result rather than an error:
// callers must fall through to their legacy-migration path, never crash on
// foreign storage content.
func (c *Cipher) Open(sealed string) (plaintext string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", false
	}

	aead, err := chacha20poly1305.New(c.sealKey)
	if err != nil {
		return "", false
	}
	if len(raw) < aead.NonceSize() {
		return "", false
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	opened, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", false
	}
	return string(opened), true
}
