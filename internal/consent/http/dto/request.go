// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// ValidateConsentRequest contains the parameters for a consent validation check.
type ValidateConsentRequest struct {
	SessionID   string `json:"session_id"`
	ConsentType string `json:"consent_type"`
	Purpose     string `json:"purpose"`
}

// Validate checks if the consent validation request is valid.
func (r *ValidateConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ConsentType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Purpose, validation.Required, customValidation.NotBlank),
	)
}

// RecordConsentRequest contains the parameters for recording a consent decision.
// The client IP and user agent come from the request itself, not the body.
type RecordConsentRequest struct {
	SessionID   string `json:"session_id"`
	ConsentType string `json:"consent_type"`
	Purpose     string `json:"purpose"`
	Granted     bool   `json:"granted"`
	ConsentText string `json:"consent_text"`
}

// Validate checks if the record consent request is valid.
func (r *RecordConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ConsentType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Purpose, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ConsentText, validation.Required, customValidation.NotBlank),
	)
}

// WithdrawConsentRequest contains the parameters for withdrawing consent.
type WithdrawConsentRequest struct {
	SessionID   string `json:"session_id"`
	ConsentType string `json:"consent_type"`
}

// Validate checks if the withdraw consent request is valid.
func (r *WithdrawConsentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ConsentType, validation.Required, customValidation.NotBlank),
	)
}
