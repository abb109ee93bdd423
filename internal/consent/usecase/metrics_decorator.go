package usecase

import (
	"context"
	"time"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	"github.com/saraivavision/privacy/internal/metrics"
)

// consentUseCaseWithMetrics decorates ConsentUseCase with metrics instrumentation.
type consentUseCaseWithMetrics struct {
	next    ConsentUseCase
	metrics metrics.BusinessMetrics
}

// NewConsentUseCaseWithMetrics wraps a ConsentUseCase with metrics recording.
func NewConsentUseCaseWithMetrics(useCase ConsentUseCase, m metrics.BusinessMetrics) ConsentUseCase {
	return &consentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ValidateConsent records metrics for consent validation operations.
func (s *consentUseCaseWithMetrics) ValidateConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
	purpose consentDomain.Purpose,
) (*consentDomain.ValidationResult, error) {
	start := time.Now()
	result, err := s.next.ValidateConsent(ctx, sessionID, consentType, purpose)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "consent", "consent_validate", status)
	s.metrics.RecordDuration(ctx, "consent", "consent_validate", time.Since(start), status)

	return result, err
}

// RecordConsent records metrics for consent recording operations.
func (s *consentUseCaseWithMetrics) RecordConsent(
	ctx context.Context,
	input *consentDomain.RecordConsentInput,
) (*consentDomain.RecordConsentOutput, error) {
	start := time.Now()
	output, err := s.next.RecordConsent(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "consent", "consent_record", status)
	s.metrics.RecordDuration(ctx, "consent", "consent_record", time.Since(start), status)

	return output, err
}

// WithdrawConsent records metrics for consent withdrawal operations.
func (s *consentUseCaseWithMetrics) WithdrawConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
) (*consentDomain.WithdrawConsentOutput, error) {
	start := time.Now()
	output, err := s.next.WithdrawConsent(ctx, sessionID, consentType)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "consent", "consent_withdraw", status)
	s.metrics.RecordDuration(ctx, "consent", "consent_withdraw", time.Since(start), status)

	return output, err
}

// History records metrics for consent history operations.
func (s *consentUseCaseWithMetrics) History(
	ctx context.Context,
	sessionID string,
) ([]*consentDomain.ConsentRecord, error) {
	start := time.Now()
	records, err := s.next.History(ctx, sessionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "consent", "consent_history", status)
	s.metrics.RecordDuration(ctx, "consent", "consent_history", time.Since(start), status)

	return records, err
}
