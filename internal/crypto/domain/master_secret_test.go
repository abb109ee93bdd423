package domain

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticKeeper struct {
	plaintext []byte
	err       error
}

func (s *staticKeeper) Decrypt(_ context.Context, _ []byte) ([]byte, error) {
	return s.plaintext, s.err
}

func TestNewMasterSecret(t *testing.T) {
	t.Run("CopiesMaterial", func(t *testing.T) {
		raw := make([]byte, KeySize)
		raw[0] = 0x42

		secret, err := NewMasterSecret(raw)
		require.NoError(t, err)

		raw[0] = 0x00
		assert.Equal(t, byte(0x42), secret.Bytes()[0])
	})

	t.Run("RejectsWrongSize", func(t *testing.T) {
		_, err := NewMasterSecret(make([]byte, 16))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})
}

func TestMasterSecretClose(t *testing.T) {
	secret, err := NewMasterSecret(make([]byte, KeySize))
	require.NoError(t, err)

	secret.Close()
	assert.Nil(t, secret.Bytes())
}

func TestLoadMasterSecretFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("MASTER_SECRET", base64.StdEncoding.EncodeToString(make([]byte, KeySize)))

		secret, err := LoadMasterSecretFromEnv()
		require.NoError(t, err)
		assert.Len(t, secret.Bytes(), KeySize)
	})

	t.Run("NotSet", func(t *testing.T) {
		t.Setenv("MASTER_SECRET", "")
		_, err := LoadMasterSecretFromEnv()
		assert.ErrorIs(t, err, ErrMasterSecretNotSet)
	})

	t.Run("InvalidBase64", func(t *testing.T) {
		t.Setenv("MASTER_SECRET", "not-base64!!")
		_, err := LoadMasterSecretFromEnv()
		assert.ErrorIs(t, err, ErrInvalidMasterSecretBase64)
	})

	t.Run("WrongSize", func(t *testing.T) {
		t.Setenv("MASTER_SECRET", base64.StdEncoding.EncodeToString(make([]byte, 16)))
		_, err := LoadMasterSecretFromEnv()
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})
}

func TestUnwrapMasterSecret(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("WRAPPED_MASTER_SECRET", base64.StdEncoding.EncodeToString([]byte("wrapped")))

		keeper := &staticKeeper{plaintext: make([]byte, KeySize)}
		secret, err := UnwrapMasterSecret(context.Background(), keeper)
		require.NoError(t, err)
		assert.Len(t, secret.Bytes(), KeySize)
	})

	t.Run("KeeperFailure", func(t *testing.T) {
		t.Setenv("WRAPPED_MASTER_SECRET", base64.StdEncoding.EncodeToString([]byte("wrapped")))

		keeper := &staticKeeper{err: assert.AnError}
		_, err := UnwrapMasterSecret(context.Background(), keeper)
		assert.Error(t, err)
	})
}
