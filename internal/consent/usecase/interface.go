// Package usecase implements the consent management business logic:
// validating processing purposes against recorded consent, recording new
// consent decisions, and processing withdrawals.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
)

// ConsentRepository defines the interface for consent record persistence operations.
type ConsentRepository interface {
	Create(ctx context.Context, record *consentDomain.ConsentRecord) error
	GetActive(ctx context.Context, sessionID string, consentType consentDomain.ConsentType) (*consentDomain.ConsentRecord, error)
	Revoke(ctx context.Context, recordID uuid.UUID, revokedAt time.Time) error
	ListBySession(ctx context.Context, sessionID string) ([]*consentDomain.ConsentRecord, error)
}

// AuditLogger defines the audit trail operations the consent manager needs.
type AuditLogger interface {
	Log(ctx context.Context, eventType auditDomain.EventType, sessionID string, metadata map[string]any) (*auditDomain.Event, error)
}

// Anonymizer defines the pseudonymization operations applied to request
// metadata before it is stored on a consent record.
type Anonymizer interface {
	HashIP(ip string) string
	SanitizeUserAgent(userAgent string) string
}

// ConsentUseCase defines the interface for consent management business logic.
type ConsentUseCase interface {
	// ValidateConsent checks whether processing for the purpose is
	// authorized. Purposes outside the consent-required set are authorized
	// under their non-consent legal basis without a record lookup. When the
	// store fails the check fails closed: the result demands a consent
	// prompt and the error wraps ErrConsentValidation.
	ValidateConsent(ctx context.Context, sessionID string, consentType consentDomain.ConsentType, purpose consentDomain.Purpose) (*consentDomain.ValidationResult, error)

	// RecordConsent persists a new consent decision and audits it. The
	// previous record for the same type is left untouched, preserving
	// history. Persistence or audit failure yields a retryable
	// ErrConsentRecording; consent is never assumed granted.
	RecordConsent(ctx context.Context, input *consentDomain.RecordConsentInput) (*consentDomain.RecordConsentOutput, error)

	// WithdrawConsent revokes the active record for the session and consent
	// type and audits the withdrawal. The record is kept, only RevokedAt is
	// set.
	WithdrawConsent(ctx context.Context, sessionID string, consentType consentDomain.ConsentType) (*consentDomain.WithdrawConsentOutput, error)

	// History returns every consent record for a session, newest first.
	History(ctx context.Context, sessionID string) ([]*consentDomain.ConsentRecord, error)
}
