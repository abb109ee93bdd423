package domain

import (
	"github.com/saraivavision/privacy/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. Cryptographic failures are
// always fatal to the single operation that raised them; they are never
// downgraded to "treat as valid".
var (
	// ErrKeyDerivation indicates the KDF failed to derive key material.
	//
	// Derivation failures are fatal to the calling encrypt/decrypt operation
	// and are never silently retried with weaker parameters.
	ErrKeyDerivation = errors.Wrap(errors.ErrInternal, "key derivation failed")

	// ErrKeyNotFound indicates the key referenced by an encrypted payload
	// cannot be derived (e.g., malformed key id or rotated master secret).
	// Decryption fails closed when this happens.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "encryption key not found")

	// ErrEmptyPlaintext indicates an encryption request with no payload.
	// Empty input is rejected rather than encrypted as zero-length ciphertext.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext is required")

	// ErrEncryptionFailed indicates an encryption operation failed.
	ErrEncryptionFailed = errors.Wrap(errors.ErrInternal, "encryption failed")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This covers authentication-tag mismatches (tampered ciphertext, wrong
	// AAD/purpose, corrupted nonce) as well as malformed payloads. The
	// specific cause is not disclosed to prevent information leakage.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidKeySize indicates key material is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedAlgorithm indicates a payload references an algorithm
	// this engine does not implement.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeyID indicates a key id is not in the "key_<epoch>" form.
	ErrInvalidKeyID = errors.Wrap(errors.ErrInvalidInput, "invalid key id")

	// ErrAnonymization indicates data anonymization failed.
	ErrAnonymization = errors.Wrap(errors.ErrInternal, "anonymization failed")

	// ErrMasterSecretNotSet indicates MASTER_SECRET is not configured.
	ErrMasterSecretNotSet = errors.New("MASTER_SECRET environment variable is required")

	// ErrInvalidMasterSecretBase64 indicates the master secret is not valid base64.
	ErrInvalidMasterSecretBase64 = errors.New("master secret must be base64-encoded")
)
