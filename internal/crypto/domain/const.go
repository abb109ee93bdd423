// Package domain defines the core cryptographic domain models for the
// privacy engine: epoch-derived encryption keys, self-describing encrypted
// payloads, and typed schemas for PII and medical data.
package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// The engine deliberately supports a single AEAD algorithm so that every
// stored payload is tamper-evident and bound to its processing purpose.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// AES-GCM combines AES encryption with GMAC authentication, providing
	// confidentiality and integrity in a single primitive. This engine uses
	// a 256-bit key, a 16-byte nonce, and a 16-byte authentication tag.
	AESGCM Algorithm = "AES-256-GCM"
)

// Canonical encryption purposes. The purpose doubles as the AAD bound to
// every ciphertext, so a payload encrypted for one purpose cannot be
// decrypted as another.
const (
	// PurposeGeneral is the default purpose for unclassified payloads.
	PurposeGeneral = "general"

	// PurposePII covers directly identifying personal data fields.
	PurposePII = "pii"

	// PurposeMedical covers health data fields, which receive the enhanced
	// protection metadata block required for CFM/LGPD audits.
	PurposeMedical = "medical"
)

const (
	// KeySize is the symmetric key size in bytes (256 bits).
	KeySize = 32

	// NonceSize is the AES-GCM nonce (IV) size in bytes used by this engine.
	NonceSize = 16

	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16
)
