package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM with a
// 16-byte nonce.
//
// Unlike the usual convenience wrappers, the nonce is an explicit parameter
// on both Encrypt and Decrypt. The engine generates a fresh random nonce per
// encryption and stores it on the payload; passing it through the cipher
// API guarantees the generated nonce is the one actually consumed by the
// cipher construction.
//
// The cipher instance is stateless and safe for concurrent use from
// multiple goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys come from the key
// manager's deterministic derivation, never directly from callers.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext under the provided nonce with the AAD bound into
// the authentication tag. The AAD is authenticated but not encrypted; the
// engine passes the processing purpose here so a ciphertext cannot be
// reinterpreted under a different purpose.
//
// The returned bytes are ciphertext with the 16-byte authentication tag
// appended.
func (a *AESGCMCipher) Encrypt(plaintext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", cryptoDomain.ErrEncryptionFailed, a.aead.NonceSize())
	}

	return a.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Decrypt opens sealed bytes (ciphertext || tag) using the nonce and AAD
// from encryption time. The authentication tag is verified before any
// plaintext is returned; on mismatch no partial plaintext leaks.
func (a *AESGCMCipher) Decrypt(sealed, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := a.aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
