// Package usecase implements the audit trail business logic: appending
// signed events, listing them, and verifying log integrity.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
)

// EventRepository defines the interface for audit event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *auditDomain.Event) error
	List(ctx context.Context, filter auditDomain.EventFilter) ([]*auditDomain.Event, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// VerificationReport summarizes an integrity check over a range of events.
type VerificationReport struct {
	Checked int         `json:"checked"`
	Invalid []uuid.UUID `json:"invalid"`
}

// Valid reports whether every checked event carried a valid signature.
func (r *VerificationReport) Valid() bool {
	return len(r.Invalid) == 0
}

// AuditUseCase defines the interface for the audit trail business logic.
type AuditUseCase interface {
	// Log appends a signed audit event. Metadata may be nil. If the sink
	// rejects the event the returned error wraps ErrAuditAppend and is
	// marked retryable; callers must treat it as a failure of the whole
	// operation rather than continue unaudited.
	Log(ctx context.Context, eventType auditDomain.EventType, sessionID string, metadata map[string]any) (*auditDomain.Event, error)

	// List retrieves audit events matching the filter, newest first.
	List(ctx context.Context, filter auditDomain.EventFilter) ([]*auditDomain.Event, error)

	// Verify re-checks the signature of every event matching the filter.
	Verify(ctx context.Context, filter auditDomain.EventFilter) (*VerificationReport, error)

	// PurgeExpired removes events older than the audit retention window.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
