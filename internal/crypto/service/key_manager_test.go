package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// Low iteration count keeps derivation fast in tests; determinism does not
// depend on the cost parameter.
func testKeyManager(t *testing.T) *KeyManagerService {
	t.Helper()

	secret, err := cryptoDomain.NewMasterSecret(make([]byte, cryptoDomain.KeySize))
	require.NoError(t, err)
	t.Cleanup(secret.Close)

	km := NewKeyManager(secret, KeyManagerConfig{
		Iterations:      1000,
		RotationPeriod:  90 * 24 * time.Hour,
		RetentionEpochs: 3,
	})
	t.Cleanup(km.Close)
	return km
}

func TestDeriveKey_Deterministic(t *testing.T) {
	km := testKeyManager(t)

	first, err := km.DeriveKey("key_225", "pii")
	require.NoError(t, err)
	second, err := km.DeriveKey("key_225", "pii")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, cryptoDomain.KeySize)
}

func TestDeriveKey_DistinctInputsDistinctKeys(t *testing.T) {
	km := testKeyManager(t)

	base, err := km.DeriveKey("key_225", "pii")
	require.NoError(t, err)

	otherEpoch, err := km.DeriveKey("key_226", "pii")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherEpoch)

	otherPurpose, err := km.DeriveKey("key_225", "medical")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherPurpose)
}

func TestDeriveKey_RejectsMalformedKeyID(t *testing.T) {
	km := testKeyManager(t)

	_, err := km.DeriveKey("not-a-key-id", "pii")
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
}

func TestGetOrCreate_CachesDerivedKey(t *testing.T) {
	km := testKeyManager(t)
	keyID := km.CurrentKeyID(time.Now())

	first, err := km.GetOrCreate(keyID, "pii")
	require.NoError(t, err)
	second, err := km.GetOrCreate(keyID, "pii")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, km.Status(time.Now()).CachedKeys)
}

func TestGetOrCreate_ConcurrentAccess(t *testing.T) {
	km := testKeyManager(t)
	keyID := km.CurrentKeyID(time.Now())

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := km.GetOrCreate(keyID, "medical")
			assert.NoError(t, err)
			results[i] = key
		}(i)
	}
	wg.Wait()

	for _, key := range results[1:] {
		assert.Equal(t, results[0], key)
	}
}

func TestRotate(t *testing.T) {
	km := testKeyManager(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("AdvancesToNextEpoch", func(t *testing.T) {
		rotation, err := km.Rotate(now)
		require.NoError(t, err)

		currentEpoch := cryptoDomain.EpochForTime(now, 90*24*time.Hour)
		assert.Equal(t, cryptoDomain.KeyIDForEpoch(currentEpoch+1), rotation.NewKeyID)
	})

	t.Run("SuccessiveRotationsYieldIncreasingIDs", func(t *testing.T) {
		// Same instant both times: back-to-back rotations must still
		// advance, not recompute the same next epoch from the clock.
		first, err := km.Rotate(now)
		require.NoError(t, err)
		second, err := km.Rotate(now)
		require.NoError(t, err)

		firstEpoch, err := cryptoDomain.ParseKeyEpoch(first.NewKeyID)
		require.NoError(t, err)
		secondEpoch, err := cryptoDomain.ParseKeyEpoch(second.NewKeyID)
		require.NoError(t, err)

		assert.NotEqual(t, first.NewKeyID, second.NewKeyID)
		assert.Greater(t, secondEpoch, firstEpoch)
	})

	t.Run("EvictionLeavesHandedOutMaterialIntact", func(t *testing.T) {
		km := testKeyManager(t)

		currentEpoch := cryptoDomain.EpochForTime(now, 90*24*time.Hour)
		staleKeyID := cryptoDomain.KeyIDForEpoch(currentEpoch - 10)

		held, err := km.GetOrCreate(staleKeyID, "pii")
		require.NoError(t, err)

		_, err = km.Rotate(now)
		require.NoError(t, err)

		// The stale epoch was evicted, but material handed out before the
		// rotation must still match a fresh derivation, not be zeroed.
		rederived, err := km.DeriveKey(staleKeyID, "pii")
		require.NoError(t, err)
		assert.Equal(t, rederived, held)
		assert.NotEqual(t, make([]byte, cryptoDomain.KeySize), held)
	})

	t.Run("EvictsKeysOutsideRetentionWindow", func(t *testing.T) {
		km := testKeyManager(t)

		currentEpoch := cryptoDomain.EpochForTime(now, 90*24*time.Hour)
		staleKeyID := cryptoDomain.KeyIDForEpoch(currentEpoch - 10)
		_, err := km.GetOrCreate(staleKeyID, "pii")
		require.NoError(t, err)

		_, err = km.Rotate(now)
		require.NoError(t, err)

		// The stale epoch is gone from cache but still derivable on demand.
		status := km.Status(now)
		assert.NotZero(t, status.CachedKeys)

		rederived, err := km.GetOrCreate(staleKeyID, "pii")
		require.NoError(t, err)
		assert.Len(t, rederived, cryptoDomain.KeySize)
	})
}

func TestStatus(t *testing.T) {
	km := testKeyManager(t)
	now := time.Now()

	status := km.Status(now)
	assert.Equal(t, cryptoDomain.AESGCM, status.Algorithm)
	assert.Equal(t, km.CurrentKeyID(now), status.CurrentKeyID)
	assert.Equal(t, 0, status.CachedKeys)
	assert.Equal(t, 90*24*time.Hour, status.RotationPeriod)
}
