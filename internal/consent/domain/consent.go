package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConsentRecord is a single consent decision. Records are append-only:
// a change of mind creates a new record, and withdrawal only ever sets
// RevokedAt, so the full history survives for compliance proof.
type ConsentRecord struct {
	ID            uuid.UUID
	SessionID     string
	ConsentType   ConsentType
	Purpose       Purpose
	Granted       bool
	LegalBasis    LegalBasis
	ConsentText   string
	IPAddressHash string
	UserAgent     string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	RevokedAt     *time.Time
}

// IsValid reports whether the record currently authorizes processing:
// granted, not revoked, and not yet expired.
func (c *ConsentRecord) IsValid(now time.Time) bool {
	return c.Granted && c.RevokedAt == nil && now.Before(c.ExpiresAt)
}

// Status returns the record's position in the consent state machine.
func (c *ConsentRecord) Status(now time.Time) ConsentStatus {
	switch {
	case c.RevokedAt != nil:
		return StatusRevoked
	case !c.Granted:
		return StatusNoConsent
	case !now.Before(c.ExpiresAt):
		return StatusExpired
	default:
		return StatusGranted
	}
}

// ValidationResult is the outcome of a consent validation check.
type ValidationResult struct {
	IsValid         bool
	ConsentRequired bool
	Status          ConsentStatus
	LegalBasis      LegalBasis
	ExpiresAt       *time.Time
	Actions         []Action
}

// RecordConsentInput carries a new consent decision from the caller. The
// raw IP address and user agent are pseudonymized before storage.
type RecordConsentInput struct {
	SessionID   string
	ConsentType ConsentType
	Purpose     Purpose
	Granted     bool
	ConsentText string
	IPAddress   string
	UserAgent   string
}

// RecordConsentOutput is returned after a consent record is persisted.
type RecordConsentOutput struct {
	ConsentID  uuid.UUID
	LegalBasis LegalBasis
	ExpiresAt  time.Time
	Rights     UserRightsInfo
}

// WithdrawConsentOutput lists the downstream obligations triggered by a
// withdrawal and when it takes effect.
type WithdrawConsentOutput struct {
	Actions       []Action
	EffectiveDate time.Time
}

// RightSummary describes one data-subject right and its response timeframe.
type RightSummary struct {
	Right       string `json:"right"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// UserRightsInfo is the rights summary handed to the user with every
// consent grant, as LGPD art. 9 requires.
type UserRightsInfo struct {
	Rights     []RightSummary `json:"rights"`
	Controller string         `json:"controller"`
	DPOContact string         `json:"dpo_contact"`
}

// UserRightsFor builds the rights summary for the given controller and
// DPO contact.
func UserRightsFor(controller, dpoContact string) UserRightsInfo {
	return UserRightsInfo{
		Rights: []RightSummary{
			{Right: "access", Description: "Obtain a copy of all personal data we hold about you", Timeframe: "24 hours"},
			{Right: "rectification", Description: "Correct inaccurate or incomplete personal data", Timeframe: "7 days"},
			{Right: "deletion", Description: "Request erasure of personal data not under legal retention", Timeframe: "30 days"},
			{Right: "portability", Description: "Receive your data in a structured, machine-readable format", Timeframe: "24 hours"},
			{Right: "objection", Description: "Object to processing for a specific purpose", Timeframe: "24 hours"},
		},
		Controller: controller,
		DPOContact: dpoContact,
	}
}
