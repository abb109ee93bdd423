package domain

import (
	"fmt"
	"time"
)

// EncryptedPayload is a self-describing encrypted value. It carries
// everything needed to locate the correct key and verify integrity, and is
// immutable once created.
//
// JSON serialization is lossless: Ciphertext, IV, and AuthTag marshal as
// base64 strings, KeyID and Purpose as plain strings.
type EncryptedPayload struct {
	Ciphertext []byte    `json:"ciphertext"`
	IV         []byte    `json:"iv"`
	AuthTag    []byte    `json:"auth_tag"`
	KeyID      string    `json:"key_id"`
	Purpose    string    `json:"purpose"`
	Algorithm  Algorithm `json:"algorithm"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the payload is structurally complete before decryption.
// Returns ErrDecryptionFailed on any malformed field so callers cannot
// distinguish a malformed payload from a tampered one.
func (p *EncryptedPayload) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: missing payload", ErrDecryptionFailed)
	}
	if len(p.Ciphertext) == 0 {
		return fmt.Errorf("%w: empty ciphertext", ErrDecryptionFailed)
	}
	if len(p.IV) != NonceSize {
		return fmt.Errorf("%w: invalid iv length", ErrDecryptionFailed)
	}
	if len(p.AuthTag) != TagSize {
		return fmt.Errorf("%w: invalid auth tag length", ErrDecryptionFailed)
	}
	if p.KeyID == "" {
		return fmt.Errorf("%w: missing key id", ErrDecryptionFailed)
	}
	if p.Purpose == "" {
		return fmt.Errorf("%w: missing purpose", ErrDecryptionFailed)
	}
	if p.Algorithm != AESGCM {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, p.Algorithm)
	}
	return nil
}

// Sealed returns ciphertext with the authentication tag appended, the form
// expected by the AEAD open operation.
func (p *EncryptedPayload) Sealed() []byte {
	sealed := make([]byte, 0, len(p.Ciphertext)+len(p.AuthTag))
	sealed = append(sealed, p.Ciphertext...)
	sealed = append(sealed, p.AuthTag...)
	return sealed
}

// SplitSealed splits an AEAD seal output (ciphertext || tag) into its
// ciphertext and authentication tag parts.
func SplitSealed(sealed []byte) (ciphertext, authTag []byte, err error) {
	if len(sealed) < TagSize {
		return nil, nil, fmt.Errorf("%w: sealed data too short", ErrDecryptionFailed)
	}
	boundary := len(sealed) - TagSize
	return sealed[:boundary], sealed[boundary:], nil
}
