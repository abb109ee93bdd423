package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rotationPeriod = 90 * 24 * time.Hour

func TestCurrentKeyID(t *testing.T) {
	t.Run("SameEpochSameID", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(
			t,
			CurrentKeyID(now, rotationPeriod),
			CurrentKeyID(now.Add(time.Hour), rotationPeriod),
		)
	})

	t.Run("NextPeriodChangesID", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		current := CurrentKeyID(now, rotationPeriod)
		next := CurrentKeyID(now.Add(rotationPeriod), rotationPeriod)
		assert.NotEqual(t, current, next)
	})

	t.Run("IDHasKeyPrefix", func(t *testing.T) {
		assert.Contains(t, CurrentKeyID(time.Now(), rotationPeriod), KeyIDPrefix)
	})
}

func TestParseKeyEpoch(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		epoch := EpochForTime(now, rotationPeriod)

		parsed, err := ParseKeyEpoch(KeyIDForEpoch(epoch))
		require.NoError(t, err)
		assert.Equal(t, epoch, parsed)
	})

	t.Run("MissingPrefix", func(t *testing.T) {
		_, err := ParseKeyEpoch("225")
		assert.ErrorIs(t, err, ErrInvalidKeyID)
	})

	t.Run("NonNumericEpoch", func(t *testing.T) {
		_, err := ParseKeyEpoch("key_abc")
		assert.ErrorIs(t, err, ErrInvalidKeyID)
	})

	t.Run("NegativeEpoch", func(t *testing.T) {
		_, err := ParseKeyEpoch("key_-1")
		assert.ErrorIs(t, err, ErrInvalidKeyID)
	})
}

func TestKeyCacheID(t *testing.T) {
	assert.Equal(t, "key_225_pii", KeyCacheID("key_225", "pii"))
}
