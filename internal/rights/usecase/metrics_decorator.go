package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saraivavision/privacy/internal/metrics"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
)

// rightsUseCaseWithMetrics decorates RightsUseCase with metrics instrumentation.
type rightsUseCaseWithMetrics struct {
	next    RightsUseCase
	metrics metrics.BusinessMetrics
}

// NewRightsUseCaseWithMetrics wraps a RightsUseCase with metrics recording.
func NewRightsUseCaseWithMetrics(useCase RightsUseCase, m metrics.BusinessMetrics) RightsUseCase {
	return &rightsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Process records metrics for rights request processing, labeled per right type.
func (s *rightsUseCaseWithMetrics) Process(
	ctx context.Context,
	input *rightsDomain.SubmitInput,
) (*rightsDomain.ProcessOutput, error) {
	start := time.Now()
	output, err := s.next.Process(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	operation := "rights_process_" + string(input.RightType)

	s.metrics.RecordOperation(ctx, "rights", operation, status)
	s.metrics.RecordDuration(ctx, "rights", operation, time.Since(start), status)

	return output, err
}

// Get records metrics for rights request lookups.
func (s *rightsUseCaseWithMetrics) Get(
	ctx context.Context,
	requestID uuid.UUID,
) (*rightsDomain.RightsRequest, error) {
	start := time.Now()
	request, err := s.next.Get(ctx, requestID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "rights", "rights_get", status)
	s.metrics.RecordDuration(ctx, "rights", "rights_get", time.Since(start), status)

	return request, err
}

// ListBySession records metrics for rights request listings.
func (s *rightsUseCaseWithMetrics) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*rightsDomain.RightsRequest, error) {
	start := time.Now()
	requests, err := s.next.ListBySession(ctx, sessionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "rights", "rights_list", status)
	s.metrics.RecordDuration(ctx, "rights", "rights_list", time.Since(start), status)

	return requests, err
}
