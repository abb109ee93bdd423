package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() *EncryptedPayload {
	return &EncryptedPayload{
		Ciphertext: []byte("ciphertext"),
		IV:         make([]byte, NonceSize),
		AuthTag:    make([]byte, TagSize),
		KeyID:      "key_225",
		Purpose:    PurposePII,
		Algorithm:  AESGCM,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestEncryptedPayloadValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validPayload().Validate())
	})

	t.Run("NilPayload", func(t *testing.T) {
		var p *EncryptedPayload
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("EmptyCiphertext", func(t *testing.T) {
		p := validPayload()
		p.Ciphertext = nil
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("ShortIV", func(t *testing.T) {
		p := validPayload()
		p.IV = make([]byte, 12)
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("ShortAuthTag", func(t *testing.T) {
		p := validPayload()
		p.AuthTag = make([]byte, 8)
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("MissingKeyID", func(t *testing.T) {
		p := validPayload()
		p.KeyID = ""
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("MissingPurpose", func(t *testing.T) {
		p := validPayload()
		p.Purpose = ""
		assert.ErrorIs(t, p.Validate(), ErrDecryptionFailed)
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		p := validPayload()
		p.Algorithm = "rot13"
		assert.ErrorIs(t, p.Validate(), ErrUnsupportedAlgorithm)
	})
}

func TestEncryptedPayloadJSONLossless(t *testing.T) {
	original := validPayload()
	original.Ciphertext = []byte{0x00, 0x01, 0xfe, 0xff}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored EncryptedPayload
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, original.Ciphertext, restored.Ciphertext)
	assert.Equal(t, original.IV, restored.IV)
	assert.Equal(t, original.AuthTag, restored.AuthTag)
	assert.Equal(t, original.KeyID, restored.KeyID)
	assert.Equal(t, original.Purpose, restored.Purpose)
	assert.Equal(t, original.Algorithm, restored.Algorithm)
}

func TestSplitSealed(t *testing.T) {
	t.Run("RoundTripThroughSealed", func(t *testing.T) {
		p := validPayload()
		ciphertext, authTag, err := SplitSealed(p.Sealed())
		require.NoError(t, err)
		assert.Equal(t, p.Ciphertext, ciphertext)
		assert.Equal(t, p.AuthTag, authTag)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, _, err := SplitSealed(make([]byte, TagSize-1))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})
}
