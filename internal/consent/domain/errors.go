package domain

import (
	"github.com/saraivavision/privacy/internal/errors"
)

// Consent error definitions.
var (
	// ErrConsentValidation indicates a consent check could not be completed
	// because the store failed. Processing must not proceed; the caller
	// should re-prompt for consent or retry.
	ErrConsentValidation = errors.Wrap(errors.ErrUnavailable, "failed to validate consent")

	// ErrConsentRecording indicates persisting a consent decision failed.
	// Consent is never assumed granted on this error.
	ErrConsentRecording = errors.Wrap(errors.ErrUnavailable, "failed to record consent")

	// ErrConsentWithdrawal indicates persisting a withdrawal failed.
	ErrConsentWithdrawal = errors.Wrap(errors.ErrUnavailable, "failed to withdraw consent")

	// ErrConsentNotFound indicates no active consent record exists for the
	// session and consent type.
	ErrConsentNotFound = errors.Wrap(errors.ErrNotFound, "consent record not found")

	// ErrInvalidConsentType indicates an unknown consent type value.
	ErrInvalidConsentType = errors.Wrap(errors.ErrInvalidInput, "invalid consent type")

	// ErrInvalidPurpose indicates an unknown processing purpose value.
	ErrInvalidPurpose = errors.Wrap(errors.ErrInvalidInput, "invalid processing purpose")
)
