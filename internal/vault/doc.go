// Package vault provides encrypted-at-rest persistence for the small fixed
// set of credential and identity fields the BrandPulse client keeps locally.
//
// Values are sealed with ChaCha20-Poly1305; the cipher key and the key-hash
// key are both derived from the configured shared secret via HKDF-SHA256.
// Physical storage keys are HMAC-SHA256 digests of the logical key, so the
// underlying medium exposes neither plaintext keys nor plaintext values.
//
// Earlier client versions stored these fields as plaintext under the bare
// logical keys. Every read transparently migrates such a legacy value: the
// plaintext copy is re-written encrypted and then deleted, so at most one
// representation of a logical value exists going forward.
package vault
