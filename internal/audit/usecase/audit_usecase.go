package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	auditService "github.com/saraivavision/privacy/internal/audit/service"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// auditUseCase implements the AuditUseCase interface.
type auditUseCase struct {
	eventRepo EventRepository
	signer    auditService.Signer
}

// Log appends a signed audit event.
func (a *auditUseCase) Log(
	ctx context.Context,
	eventType auditDomain.EventType,
	sessionID string,
	metadata map[string]any,
) (*auditDomain.Event, error) {
	event := &auditDomain.Event{
		ID:        uuid.Must(uuid.NewV7()),
		Type:      eventType,
		SessionID: sessionID,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	signature, err := a.signer.Sign(event)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign audit event")
	}
	event.Signature = signature

	if err := a.eventRepo.Create(ctx, event); err != nil {
		return nil, apperrors.MarkRetryable(
			apperrors.Wrap(auditDomain.ErrAuditAppend, err.Error()),
		)
	}

	return event, nil
}

// List retrieves audit events matching the filter, newest first.
func (a *auditUseCase) List(
	ctx context.Context,
	filter auditDomain.EventFilter,
) ([]*auditDomain.Event, error) {
	return a.eventRepo.List(ctx, filter)
}

// Verify re-checks the signature of every event matching the filter.
// Invalid events are reported, not deleted: the log stays append-only
// and tampering evidence must remain visible.
func (a *auditUseCase) Verify(
	ctx context.Context,
	filter auditDomain.EventFilter,
) (*VerificationReport, error) {
	events, err := a.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{Checked: len(events)}
	for _, event := range events {
		if err := a.signer.Verify(event); err != nil {
			slog.Warn("audit event failed integrity check",
				"event_id", event.ID,
				"event_type", event.Type,
			)
			report.Invalid = append(report.Invalid, event.ID)
		}
	}

	return report, nil
}

// PurgeExpired removes events older than the audit retention window.
func (a *auditUseCase) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := a.eventRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		slog.Info("purged expired audit events", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// NewAuditUseCase creates a new audit use case instance with the provided dependencies.
func NewAuditUseCase(eventRepo EventRepository, signer auditService.Signer) AuditUseCase {
	return &auditUseCase{eventRepo: eventRepo, signer: signer}
}
