package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// consentUseCase implements the ConsentUseCase interface.
type consentUseCase struct {
	txManager   database.TxManager
	consentRepo ConsentRepository
	anonymizer  Anonymizer
	audit       AuditLogger
	controller  string
	dpoContact  string
}

// ValidateConsent checks whether processing for the purpose is authorized.
func (c *consentUseCase) ValidateConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
	purpose consentDomain.Purpose,
) (*consentDomain.ValidationResult, error) {
	if !purpose.Valid() {
		return nil, consentDomain.ErrInvalidPurpose
	}
	if !consentType.Valid() {
		return nil, consentDomain.ErrInvalidConsentType
	}

	// Operational purposes rest on a non-consent legal basis and skip the
	// record lookup entirely.
	if basis, ok := consentDomain.NonConsentBasis(purpose); ok {
		return &consentDomain.ValidationResult{
			IsValid:         true,
			ConsentRequired: false,
			Status:          consentDomain.StatusNotRequired,
			LegalBasis:      basis,
		}, nil
	}

	now := time.Now().UTC()

	record, err := c.consentRepo.GetActive(ctx, sessionID, consentType)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return &consentDomain.ValidationResult{
				ConsentRequired: true,
				Status:          consentDomain.StatusNoConsent,
				LegalBasis:      consentDomain.BasisConsent,
				Actions:         []consentDomain.Action{consentDomain.ActionRequestInitialConsent},
			}, nil
		}

		// Fail closed: an unreadable store never authorizes processing.
		// The result still tells the caller to prompt for consent so the
		// user-facing flow degrades to a consent request, not a crash.
		return &consentDomain.ValidationResult{
			ConsentRequired: true,
			Status:          consentDomain.StatusNoConsent,
			LegalBasis:      consentDomain.BasisConsent,
			Actions:         []consentDomain.Action{consentDomain.ActionRequestConsent},
		}, apperrors.MarkRetryable(apperrors.Wrap(consentDomain.ErrConsentValidation, err.Error()))
	}

	result := &consentDomain.ValidationResult{
		ConsentRequired: true,
		Status:          record.Status(now),
		LegalBasis:      consentDomain.BasisConsent,
	}

	switch result.Status {
	case consentDomain.StatusGranted:
		result.IsValid = true
		result.ExpiresAt = &record.ExpiresAt
	case consentDomain.StatusExpired, consentDomain.StatusRevoked:
		result.Actions = []consentDomain.Action{consentDomain.ActionRequestRenewedConsent}
	default:
		result.Actions = []consentDomain.Action{consentDomain.ActionRequestInitialConsent}
	}

	return result, nil
}

// RecordConsent persists a new consent decision and audits it.
func (c *consentUseCase) RecordConsent(
	ctx context.Context,
	input *consentDomain.RecordConsentInput,
) (*consentDomain.RecordConsentOutput, error) {
	if !input.ConsentType.Valid() {
		return nil, consentDomain.ErrInvalidConsentType
	}
	if !input.Purpose.Valid() {
		return nil, consentDomain.ErrInvalidPurpose
	}

	now := time.Now().UTC()

	legalBasis := consentDomain.BasisConsent
	if basis, ok := consentDomain.NonConsentBasis(input.Purpose); ok {
		legalBasis = basis
	}

	record := &consentDomain.ConsentRecord{
		ID:            uuid.Must(uuid.NewV7()),
		SessionID:     input.SessionID,
		ConsentType:   input.ConsentType,
		Purpose:       input.Purpose,
		Granted:       input.Granted,
		LegalBasis:    legalBasis,
		ConsentText:   input.ConsentText,
		IPAddressHash: c.anonymizer.HashIP(input.IPAddress),
		UserAgent:     c.anonymizer.SanitizeUserAgent(input.UserAgent),
		CreatedAt:     now,
		ExpiresAt:     consentDomain.ExpirationFor(input.ConsentType, now),
	}

	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := c.consentRepo.Create(txCtx, record); err != nil {
			return err
		}

		_, err := c.audit.Log(txCtx, auditDomain.EventConsentRecorded, input.SessionID, map[string]any{
			"consent_id":   record.ID,
			"consent_type": record.ConsentType,
			"purpose":      record.Purpose,
			"granted":      record.Granted,
			"expires_at":   record.ExpiresAt,
		})
		return err
	})
	if err != nil {
		return nil, apperrors.MarkRetryable(
			apperrors.Wrap(consentDomain.ErrConsentRecording, err.Error()),
		)
	}

	return &consentDomain.RecordConsentOutput{
		ConsentID:  record.ID,
		LegalBasis: record.LegalBasis,
		ExpiresAt:  record.ExpiresAt,
		Rights:     consentDomain.UserRightsFor(c.controller, c.dpoContact),
	}, nil
}

// WithdrawConsent revokes the active record for the session and consent type.
func (c *consentUseCase) WithdrawConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
) (*consentDomain.WithdrawConsentOutput, error) {
	if !consentType.Valid() {
		return nil, consentDomain.ErrInvalidConsentType
	}

	record, err := c.consentRepo.GetActive(ctx, sessionID, consentType)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, consentDomain.ErrConsentNotFound
		}
		return nil, apperrors.MarkRetryable(
			apperrors.Wrap(consentDomain.ErrConsentWithdrawal, err.Error()),
		)
	}

	now := time.Now().UTC()

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := c.consentRepo.Revoke(txCtx, record.ID, now); err != nil {
			return err
		}

		_, err := c.audit.Log(txCtx, auditDomain.EventConsentWithdrawn, sessionID, map[string]any{
			"consent_id":   record.ID,
			"consent_type": record.ConsentType,
			"revoked_at":   now,
		})
		return err
	})
	if err != nil {
		// A concurrent withdrawal already revoked it; the withdrawal the
		// user asked for has happened either way.
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, consentDomain.ErrConsentNotFound
		}
		return nil, apperrors.MarkRetryable(
			apperrors.Wrap(consentDomain.ErrConsentWithdrawal, err.Error()),
		)
	}

	return &consentDomain.WithdrawConsentOutput{
		Actions: []consentDomain.Action{
			consentDomain.ActionStopProcessing,
			consentDomain.ActionNotifySystems,
		},
		EffectiveDate: now,
	}, nil
}

// History returns every consent record for a session, newest first.
func (c *consentUseCase) History(
	ctx context.Context,
	sessionID string,
) ([]*consentDomain.ConsentRecord, error) {
	return c.consentRepo.ListBySession(ctx, sessionID)
}

// NewConsentUseCase creates a new consent use case instance with the
// provided dependencies. Controller and dpoContact identify the data
// controller on the user-rights summary.
func NewConsentUseCase(
	txManager database.TxManager,
	consentRepo ConsentRepository,
	anonymizer Anonymizer,
	audit AuditLogger,
	controller string,
	dpoContact string,
) ConsentUseCase {
	return &consentUseCase{
		txManager:   txManager,
		consentRepo: consentRepo,
		anonymizer:  anonymizer,
		audit:       audit,
		controller:  controller,
		dpoContact:  dpoContact,
	}
}
