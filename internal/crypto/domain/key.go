package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyIDPrefix is the prefix of every epoch-derived key identifier.
const KeyIDPrefix = "key_"

// EncryptionKey holds derived symmetric key material for a (keyID, purpose)
// pair. The material is deterministic for the lifetime of the master secret,
// so instances are cacheable and always recomputable.
type EncryptionKey struct {
	KeyID     string
	Purpose   string
	Material  []byte
	CreatedAt time.Time
}

// CacheID returns the cache key under which this encryption key is stored.
func (k *EncryptionKey) CacheID() string {
	return KeyCacheID(k.KeyID, k.Purpose)
}

// KeyCacheID builds the cache identifier for a (keyID, purpose) pair.
func KeyCacheID(keyID, purpose string) string {
	return keyID + "_" + purpose
}

// KeyIDForEpoch builds the key identifier for a rotation epoch.
func KeyIDForEpoch(epoch int64) string {
	return fmt.Sprintf("%s%d", KeyIDPrefix, epoch)
}

// EpochForTime computes the rotation epoch containing the given instant.
// Epochs are counted from the Unix epoch in whole rotation periods, so key
// identity changes automatically without external coordination.
func EpochForTime(t time.Time, rotationPeriod time.Duration) int64 {
	return t.UnixMilli() / rotationPeriod.Milliseconds()
}

// CurrentKeyID returns the key identifier for the epoch containing now.
func CurrentKeyID(now time.Time, rotationPeriod time.Duration) string {
	return KeyIDForEpoch(EpochForTime(now, rotationPeriod))
}

// ParseKeyEpoch extracts the rotation epoch from a key identifier.
// Returns ErrInvalidKeyID when the id is not in the "key_<epoch>" form.
func ParseKeyEpoch(keyID string) (int64, error) {
	raw, ok := strings.CutPrefix(keyID, KeyIDPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKeyID, keyID)
	}

	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || epoch < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKeyID, keyID)
	}

	return epoch, nil
}

// KeyRotation describes the outcome of a key rotation.
type KeyRotation struct {
	NewKeyID  string
	RotatedAt time.Time
}
