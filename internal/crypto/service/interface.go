// Package service provides the cryptographic services of the privacy engine:
// epoch-based key derivation and caching, AES-256-GCM authenticated
// encryption with explicit nonces, and hashing/anonymization utilities.
package service

import (
	"context"
	"time"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
//
// The nonce is an explicit, mandatory parameter on both operations: the
// cipher never generates one internally, so callers can prove the nonce
// they produced is the nonce that was used.
type AEAD interface {
	// Encrypt seals plaintext under the given nonce and AAD.
	// The returned sealed bytes are ciphertext with the auth tag appended.
	Encrypt(plaintext, nonce, aad []byte) ([]byte, error)

	// Decrypt opens sealed bytes (ciphertext || tag) with the nonce and AAD
	// used at encryption time.
	Decrypt(sealed, nonce, aad []byte) ([]byte, error)
}

// KeyManager derives, caches, rotates, and retires epoch-based encryption keys.
type KeyManager interface {
	// DeriveKey deterministically derives key material for a (keyID, purpose)
	// pair from the master secret. Never random per call.
	DeriveKey(keyID, purpose string) ([]byte, error)

	// CurrentKeyID returns the key id for the epoch containing now.
	CurrentKeyID(now time.Time) string

	// GetOrCreate returns the cached key for (keyID, purpose), deriving and
	// caching on miss. Safe for concurrent use.
	GetOrCreate(keyID, purpose string) ([]byte, error)

	// Rotate advances to the next epoch, pre-derives its keys for every
	// cached purpose, and evicts cache entries older than the retention
	// window. Evicted keys remain re-derivable on demand.
	Rotate(now time.Time) (cryptoDomain.KeyRotation, error)

	// Status reports cache size, the current key id, and rotation settings.
	Status(now time.Time) KeyManagerStatus
}

// KeyManagerStatus is a point-in-time snapshot of the key manager.
type KeyManagerStatus struct {
	Algorithm      cryptoDomain.Algorithm `json:"algorithm"`
	CurrentKeyID   string                 `json:"current_key_id"`
	CachedKeys     int                    `json:"cached_keys"`
	RotationPeriod time.Duration          `json:"rotation_period"`
}

// Hasher provides one-way utilities for pseudonymization and integrity
// checks, independent of the key system.
type Hasher interface {
	// Hash returns the hex SHA-256 digest of data concatenated with salt.
	Hash(data, salt string) string

	// SecureToken returns a hex-encoded random token of n bytes.
	SecureToken(n int) (string, error)

	// ValidateIntegrity recomputes the hash of data and compares it to
	// expected in constant time.
	ValidateIntegrity(data, expected, salt string) bool
}

// Anonymizer removes or pseudonymizes identifying information.
type Anonymizer interface {
	// HashIP pseudonymizes an IP address with a salted hash.
	HashIP(ip string) string

	// HashSession pseudonymizes a session id with a salted hash.
	HashSession(sessionID string) string

	// SanitizeUserAgent masks version numbers in a user agent string.
	SanitizeUserAgent(userAgent string) string

	// AnonymizePII strips direct identifiers from a PII record and
	// pseudonymizes the indirect ones, stamping anonymization metadata.
	AnonymizePII(record *cryptoDomain.PIIRecord) (*cryptoDomain.AnonymizedRecord, error)
}

// KMSService opens a keeper for unwrapping the master secret via an
// external KMS provider.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider key URI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
