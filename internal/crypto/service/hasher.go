package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SHA256Hasher implements Hasher with SHA-256. These utilities are one-way
// and independent of the key system: no key lookup is required.
type SHA256Hasher struct{}

// NewHasher creates a new SHA256Hasher.
func NewHasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash returns the hex SHA-256 digest of data concatenated with salt.
// Used for session/IP pseudonymization and integrity digests.
func (h *SHA256Hasher) Hash(data, salt string) string {
	sum := sha256.Sum256([]byte(data + salt))
	return hex.EncodeToString(sum[:])
}

// SecureToken returns a hex-encoded cryptographically random token of n bytes.
func (h *SHA256Hasher) SecureToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// ValidateIntegrity recomputes the digest of data and compares it to
// expected in constant time, detecting tampering without decrypting.
func (h *SHA256Hasher) ValidateIntegrity(data, expected, salt string) bool {
	computed := h.Hash(data, salt)
	return hmac.Equal([]byte(computed), []byte(expected))
}
