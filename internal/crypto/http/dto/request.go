// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
)

// EncryptRequest contains the parameters for encrypting a payload.
// Plaintext is base64-encoded in transit. An empty purpose defaults to
// general.
type EncryptRequest struct {
	Plaintext []byte `json:"plaintext"`
	Purpose   string `json:"purpose"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
			validation.Length(1, 0),
		),
	)
}

// DecryptRequest contains the encrypted payload to open. Structural
// validation of the payload happens in the engine, which reports any
// malformed field as a decryption failure.
type DecryptRequest struct {
	Payload *cryptoDomain.EncryptedPayload `json:"payload"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload, validation.Required),
	)
}
