package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
)

// MasterSecret is the root secret every encryption key is derived from.
//
// The secret is never used to encrypt data directly: per-epoch, per-purpose
// keys are derived from it with a slow KDF, so derived keys are recomputable
// rather than persisted. Losing the master secret makes all ciphertext
// unrecoverable; rotating it breaks derivability of old keys, so rotation is
// a migration, not a config change.
type MasterSecret struct {
	secret []byte
}

// NewMasterSecret wraps raw secret material. The material must be 32 bytes.
func NewMasterSecret(secret []byte) (*MasterSecret, error) {
	if len(secret) != KeySize {
		return nil, fmt.Errorf("%w: master secret must be %d bytes, got %d",
			ErrInvalidKeySize, KeySize, len(secret))
	}
	owned := make([]byte, len(secret))
	copy(owned, secret)
	return &MasterSecret{secret: owned}, nil
}

// Bytes returns the raw secret material. Callers must not retain or mutate it.
func (m *MasterSecret) Bytes() []byte {
	return m.secret
}

// Close zeroes the secret material in memory.
func (m *MasterSecret) Close() {
	Zero(m.secret)
	m.secret = nil
}

// KMSKeeper decrypts a wrapped master secret through an external KMS.
// *secrets.Keeper from gocloud.dev implements this.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// LoadMasterSecretFromEnv loads the master secret from the MASTER_SECRET
// environment variable (standard base64, 32 bytes decoded). The temporary
// decoded buffer is zeroed after the secret takes ownership.
func LoadMasterSecretFromEnv() (*MasterSecret, error) {
	raw := os.Getenv("MASTER_SECRET")
	if raw == "" {
		return nil, ErrMasterSecretNotSet
	}

	secret, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
	}
	defer Zero(secret)

	return NewMasterSecret(secret)
}

// UnwrapMasterSecret decrypts a KMS-wrapped master secret. The wrapped
// form comes from the WRAPPED_MASTER_SECRET environment variable (base64)
// and is unwrapped through the configured KMS keeper.
func UnwrapMasterSecret(ctx context.Context, keeper KMSKeeper) (*MasterSecret, error) {
	raw := os.Getenv("WRAPPED_MASTER_SECRET")
	if raw == "" {
		return nil, ErrMasterSecretNotSet
	}

	wrapped, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
	}

	secret, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap master secret: %w", err)
	}
	defer Zero(secret)

	return NewMasterSecret(secret)
}
