// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
)

// DecryptResponse carries recovered plaintext, base64-encoded in transit.
type DecryptResponse struct {
	Plaintext []byte `json:"plaintext"`
}

// KeyRotationResponse represents a key rotation outcome in API responses.
type KeyRotationResponse struct {
	NewKeyID  string    `json:"new_key_id"`
	RotatedAt time.Time `json:"rotated_at"`
}

// MapKeyRotation converts a domain key rotation to an API response.
func MapKeyRotation(rotation cryptoDomain.KeyRotation) KeyRotationResponse {
	return KeyRotationResponse{
		NewKeyID:  rotation.NewKeyID,
		RotatedAt: rotation.RotatedAt,
	}
}

// StatusResponse represents the encryption engine status in API responses.
// Key material never appears here, only epoch metadata.
type StatusResponse struct {
	Algorithm           string `json:"algorithm"`
	CurrentKeyID        string `json:"current_key_id"`
	CachedKeys          int    `json:"cached_keys"`
	RotationPeriodHours int    `json:"rotation_period_hours"`
}

// MapStatus converts a key manager status to an API response.
func MapStatus(status cryptoService.KeyManagerStatus) StatusResponse {
	return StatusResponse{
		Algorithm:           string(status.Algorithm),
		CurrentKeyID:        status.CurrentKeyID,
		CachedKeys:          status.CachedKeys,
		RotationPeriodHours: int(status.RotationPeriod.Hours()),
	}
}
