package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	h := NewHasher()

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, h.Hash("data", "salt"), h.Hash("data", "salt"))
	})

	t.Run("SaltChangesDigest", func(t *testing.T) {
		assert.NotEqual(t, h.Hash("data", "salt-a"), h.Hash("data", "salt-b"))
	})

	t.Run("HexEncoded64Chars", func(t *testing.T) {
		assert.Len(t, h.Hash("data", ""), 64)
	})
}

func TestSecureToken(t *testing.T) {
	h := NewHasher()

	t.Run("LengthAndUniqueness", func(t *testing.T) {
		first, err := h.SecureToken(32)
		require.NoError(t, err)
		second, err := h.SecureToken(32)
		require.NoError(t, err)

		assert.Len(t, first, 64) // hex doubles the byte length
		assert.NotEqual(t, first, second)
	})

	t.Run("RejectsNonPositiveLength", func(t *testing.T) {
		_, err := h.SecureToken(0)
		assert.Error(t, err)
	})
}

func TestValidateIntegrity(t *testing.T) {
	h := NewHasher()
	digest := h.Hash("payload", "salt")

	assert.True(t, h.ValidateIntegrity("payload", digest, "salt"))
	assert.False(t, h.ValidateIntegrity("tampered", digest, "salt"))
	assert.False(t, h.ValidateIntegrity("payload", digest, "wrong-salt"))
}
