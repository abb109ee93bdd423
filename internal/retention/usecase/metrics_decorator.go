package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saraivavision/privacy/internal/metrics"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
)

// retentionUseCaseWithMetrics decorates RetentionUseCase with metrics instrumentation.
type retentionUseCaseWithMetrics struct {
	next    RetentionUseCase
	metrics metrics.BusinessMetrics
}

// NewRetentionUseCaseWithMetrics wraps a RetentionUseCase with metrics recording.
func NewRetentionUseCaseWithMetrics(useCase RetentionUseCase, m metrics.BusinessMetrics) RetentionUseCase {
	return &retentionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits operation and duration metrics for one retention operation.
func (s *retentionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "retention", operation, status)
	s.metrics.RecordDuration(ctx, "retention", operation, time.Since(start), status)
}

// Schedule records metrics for retention scheduling operations.
func (s *retentionUseCaseWithMetrics) Schedule(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
) (*retentionDomain.RetentionRecord, error) {
	start := time.Now()
	record, err := s.next.Schedule(ctx, dataType, identifier)
	s.record(ctx, "retention_schedule", start, err)
	return record, err
}

// ScheduleAt records metrics for explicit-deadline scheduling operations.
func (s *retentionUseCaseWithMetrics) ScheduleAt(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
	deleteAt time.Time,
) (*retentionDomain.RetentionRecord, error) {
	start := time.Now()
	record, err := s.next.ScheduleAt(ctx, dataType, identifier, deleteAt)
	s.record(ctx, "retention_schedule_at", start, err)
	return record, err
}

// ExecuteDue records metrics for retention sweep operations.
func (s *retentionUseCaseWithMetrics) ExecuteDue(ctx context.Context, now time.Time) (*SweepResult, error) {
	start := time.Now()
	result, err := s.next.ExecuteDue(ctx, now)
	s.record(ctx, "retention_execute", start, err)
	return result, err
}

// Cancel records metrics for retention cancellation operations.
func (s *retentionUseCaseWithMetrics) Cancel(ctx context.Context, recordID uuid.UUID) error {
	start := time.Now()
	err := s.next.Cancel(ctx, recordID)
	s.record(ctx, "retention_cancel", start, err)
	return err
}

// StatusFor records metrics for retention status lookups.
func (s *retentionUseCaseWithMetrics) StatusFor(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	start := time.Now()
	records, err := s.next.StatusFor(ctx, identifier)
	s.record(ctx, "retention_status", start, err)
	return records, err
}

// StartSweeper passes through; the sweeper loop reports per ExecuteDue call.
func (s *retentionUseCaseWithMetrics) StartSweeper(ctx context.Context) error {
	return s.next.StartSweeper(ctx)
}
