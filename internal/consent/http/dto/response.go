// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
)

// ValidationResultResponse represents a consent validation outcome in API responses.
type ValidationResultResponse struct {
	IsValid         bool       `json:"is_valid"`
	ConsentRequired bool       `json:"consent_required"`
	Status          string     `json:"status"`
	LegalBasis      string     `json:"legal_basis"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Actions         []string   `json:"actions,omitempty"`
}

// MapValidationResult converts a domain validation result to an API response.
func MapValidationResult(result *consentDomain.ValidationResult) ValidationResultResponse {
	actions := make([]string, 0, len(result.Actions))
	for _, action := range result.Actions {
		actions = append(actions, string(action))
	}

	return ValidationResultResponse{
		IsValid:         result.IsValid,
		ConsentRequired: result.ConsentRequired,
		Status:          string(result.Status),
		LegalBasis:      string(result.LegalBasis),
		ExpiresAt:       result.ExpiresAt,
		Actions:         actions,
	}
}

// RecordConsentResponse represents a recorded consent decision in API responses.
// The rights summary accompanies every grant so the user learns their LGPD
// rights at the moment of consent.
type RecordConsentResponse struct {
	ConsentID  string                       `json:"consent_id"`
	LegalBasis string                       `json:"legal_basis"`
	ExpiresAt  time.Time                    `json:"expires_at"`
	Rights     consentDomain.UserRightsInfo `json:"rights"`
}

// MapRecordConsentOutput converts a domain record output to an API response.
func MapRecordConsentOutput(output *consentDomain.RecordConsentOutput) RecordConsentResponse {
	return RecordConsentResponse{
		ConsentID:  output.ConsentID.String(),
		LegalBasis: string(output.LegalBasis),
		ExpiresAt:  output.ExpiresAt,
		Rights:     output.Rights,
	}
}

// WithdrawConsentResponse represents a consent withdrawal outcome in API responses.
type WithdrawConsentResponse struct {
	Actions       []string  `json:"actions"`
	EffectiveDate time.Time `json:"effective_date"`
}

// MapWithdrawConsentOutput converts a domain withdrawal output to an API response.
func MapWithdrawConsentOutput(output *consentDomain.WithdrawConsentOutput) WithdrawConsentResponse {
	actions := make([]string, 0, len(output.Actions))
	for _, action := range output.Actions {
		actions = append(actions, string(action))
	}

	return WithdrawConsentResponse{
		Actions:       actions,
		EffectiveDate: output.EffectiveDate,
	}
}

// ConsentRecordResponse represents one consent record in API responses.
// Pseudonymized request metadata is never exposed.
type ConsentRecordResponse struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	ConsentType string     `json:"consent_type"`
	Purpose     string     `json:"purpose"`
	Granted     bool       `json:"granted"`
	LegalBasis  string     `json:"legal_basis"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

// ConsentHistoryResponse represents a session's consent history in API responses.
type ConsentHistoryResponse struct {
	Data []ConsentRecordResponse `json:"data"`
}

// MapConsentHistory converts domain consent records to a history response.
func MapConsentHistory(records []*consentDomain.ConsentRecord, now time.Time) ConsentHistoryResponse {
	data := make([]ConsentRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, ConsentRecordResponse{
			ID:          record.ID.String(),
			SessionID:   record.SessionID,
			ConsentType: string(record.ConsentType),
			Purpose:     string(record.Purpose),
			Granted:     record.Granted,
			LegalBasis:  string(record.LegalBasis),
			Status:      string(record.Status(now)),
			CreatedAt:   record.CreatedAt,
			ExpiresAt:   record.ExpiresAt,
			RevokedAt:   record.RevokedAt,
		})
	}

	return ConsentHistoryResponse{Data: data}
}
