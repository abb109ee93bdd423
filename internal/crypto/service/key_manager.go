package service

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// KeyManagerService implements KeyManager with deterministic PBKDF2
// derivation from a single master secret.
//
// Key identity is time-based: every rotation period (default 90 days) the
// current key id advances automatically, with no external coordination.
// Derived keys are cached in a concurrent map keyed by (keyID, purpose);
// because derivation is deterministic, a cache miss is always recoverable
// by recomputing, so eviction never makes old ciphertext unreadable.
type KeyManagerService struct {
	masterSecret    *cryptoDomain.MasterSecret
	iterations      int
	rotationPeriod  time.Duration
	retentionEpochs int

	// cache maps cryptoDomain.KeyCacheID(keyID, purpose) to *cryptoDomain.EncryptionKey.
	cache sync.Map

	// lastRotatedEpoch is the highest epoch a Rotate call has advanced to.
	// Successive rotations within one wall-clock epoch keep incrementing
	// from here instead of recomputing the same next epoch.
	lastRotatedEpoch atomic.Int64
}

// KeyManagerConfig tunes derivation cost and rotation cadence.
type KeyManagerConfig struct {
	// Iterations is the PBKDF2 iteration count. Minimum protection target
	// is 100k iterations.
	Iterations int
	// RotationPeriod is the epoch length (default 90 days).
	RotationPeriod time.Duration
	// RetentionEpochs is how many past epochs stay cached after rotation.
	RetentionEpochs int
}

// NewKeyManager creates a KeyManagerService bound to a master secret.
// Zero config fields fall back to 100_000 iterations, 90 days, 3 epochs.
func NewKeyManager(masterSecret *cryptoDomain.MasterSecret, cfg KeyManagerConfig) *KeyManagerService {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 100_000
	}
	if cfg.RotationPeriod <= 0 {
		cfg.RotationPeriod = 90 * 24 * time.Hour
	}
	if cfg.RetentionEpochs <= 0 {
		cfg.RetentionEpochs = 3
	}

	return &KeyManagerService{
		masterSecret:    masterSecret,
		iterations:      cfg.Iterations,
		rotationPeriod:  cfg.RotationPeriod,
		retentionEpochs: cfg.RetentionEpochs,
	}
}

// DeriveKey derives 32 bytes of key material for (keyID, purpose) using
// PBKDF2-SHA256 over the master secret with the pair as salt. The result is
// a pure function of (masterSecret, keyID, purpose).
func (km *KeyManagerService) DeriveKey(keyID, purpose string) ([]byte, error) {
	if _, err := cryptoDomain.ParseKeyEpoch(keyID); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyNotFound, err)
	}
	if km.masterSecret == nil || len(km.masterSecret.Bytes()) == 0 {
		return nil, fmt.Errorf("%w: master secret unavailable", cryptoDomain.ErrKeyDerivation)
	}

	salt := []byte(cryptoDomain.KeyCacheID(keyID, purpose))
	key := pbkdf2.Key(km.masterSecret.Bytes(), salt, km.iterations, cryptoDomain.KeySize, sha256.New)
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrKeyDerivation
	}

	return key, nil
}

// CurrentKeyID returns the key id for the epoch containing now.
func (km *KeyManagerService) CurrentKeyID(now time.Time) string {
	return cryptoDomain.CurrentKeyID(now, km.rotationPeriod)
}

// GetOrCreate returns key material for (keyID, purpose), deriving on a
// cache miss. Concurrent first callers may both derive; derivation is
// idempotent, so whichever entry lands in the map is correct. The caller
// receives its own copy, so cache eviction never invalidates material
// already handed out.
func (km *KeyManagerService) GetOrCreate(keyID, purpose string) ([]byte, error) {
	cacheID := cryptoDomain.KeyCacheID(keyID, purpose)

	if cached, ok := km.cache.Load(cacheID); ok {
		return copyMaterial(cached.(*cryptoDomain.EncryptionKey).Material), nil
	}

	material, err := km.DeriveKey(keyID, purpose)
	if err != nil {
		return nil, err
	}

	entry, _ := km.cache.LoadOrStore(cacheID, &cryptoDomain.EncryptionKey{
		KeyID:     keyID,
		Purpose:   purpose,
		Material:  material,
		CreatedAt: time.Now().UTC(),
	})

	return copyMaterial(entry.(*cryptoDomain.EncryptionKey).Material), nil
}

func copyMaterial(material []byte) []byte {
	out := make([]byte, len(material))
	copy(out, material)
	return out
}

// Rotate advances to the next epoch's key id, pre-derives that key for
// every purpose currently cached, and evicts entries older than the
// retention window. With the default settings ciphertext encrypted up to
// ~270 days ago stays served from cache, and anything older is re-derived
// on demand.
func (km *KeyManagerService) Rotate(now time.Time) (cryptoDomain.KeyRotation, error) {
	currentEpoch := cryptoDomain.EpochForTime(now, km.rotationPeriod)

	// Claim the next epoch past whichever is higher, wall clock or the
	// last rotation, so successive rotations within one epoch still yield
	// strictly increasing key ids.
	var nextEpoch int64
	for {
		last := km.lastRotatedEpoch.Load()
		nextEpoch = currentEpoch + 1
		if last >= currentEpoch {
			nextEpoch = last + 1
		}
		if km.lastRotatedEpoch.CompareAndSwap(last, nextEpoch) {
			break
		}
	}
	newKeyID := cryptoDomain.KeyIDForEpoch(nextEpoch)

	// Collect the purposes in use so the next epoch is warm for all of them.
	purposes := map[string]struct{}{cryptoDomain.PurposeGeneral: {}}
	km.cache.Range(func(_, value any) bool {
		purposes[value.(*cryptoDomain.EncryptionKey).Purpose] = struct{}{}
		return true
	})

	for purpose := range purposes {
		if _, err := km.GetOrCreate(newKeyID, purpose); err != nil {
			return cryptoDomain.KeyRotation{}, err
		}
	}

	km.evictBefore(nextEpoch - int64(km.retentionEpochs))

	return cryptoDomain.KeyRotation{
		NewKeyID:  newKeyID,
		RotatedAt: now.UTC(),
	}, nil
}

// evictBefore removes cached keys from epochs older than minEpoch. The
// material is not zeroed here: a decrypt in flight may still be reading
// it, and it is deterministically re-derivable anyway.
func (km *KeyManagerService) evictBefore(minEpoch int64) {
	km.cache.Range(func(cacheID, value any) bool {
		key := value.(*cryptoDomain.EncryptionKey)
		epoch, err := cryptoDomain.ParseKeyEpoch(key.KeyID)
		if err != nil || epoch >= minEpoch {
			return true
		}

		km.cache.Delete(cacheID)
		return true
	})
}

// Status reports a point-in-time snapshot of the key manager.
func (km *KeyManagerService) Status(now time.Time) KeyManagerStatus {
	cached := 0
	km.cache.Range(func(_, _ any) bool {
		cached++
		return true
	})

	return KeyManagerStatus{
		Algorithm:      cryptoDomain.AESGCM,
		CurrentKeyID:   km.CurrentKeyID(now),
		CachedKeys:     cached,
		RotationPeriod: km.rotationPeriod,
	}
}

// Close zeroes all cached key material. The manager is unusable
// afterwards; callers must ensure no operations are in flight.
func (km *KeyManagerService) Close() {
	km.cache.Range(func(cacheID, value any) bool {
		cryptoDomain.Zero(value.(*cryptoDomain.EncryptionKey).Material)
		km.cache.Delete(cacheID)
		return true
	})
}
