package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saraivavision/privacy/internal/metrics"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	rightsUsecase "github.com/saraivavision/privacy/internal/rights/usecase"
	rightsUsecaseMocks "github.com/saraivavision/privacy/internal/rights/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestNewRightsUseCaseWithMetrics(t *testing.T) {
	decorator := rightsUsecase.NewRightsUseCaseWithMetrics(
		&rightsUsecaseMocks.MockRightsUseCase{},
		metrics.NewNoOpBusinessMetrics(),
	)

	assert.NotNil(t, decorator)
	assert.Implements(t, (*rightsUsecase.RightsUseCase)(nil), decorator)
}

func TestRightsMetricsDecorator_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LabelsOperationWithRightType", func(t *testing.T) {
		mockUseCase := &rightsUsecaseMocks.MockRightsUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &rightsDomain.SubmitInput{
			SessionID: "session-1",
			RightType: rightsDomain.RightAccess,
		}
		expected := &rightsDomain.ProcessOutput{
			RequestID: uuid.Must(uuid.NewV7()),
			RightType: rightsDomain.RightAccess,
			Status:    rightsDomain.StatusCompleted,
		}

		mockUseCase.On("Process", ctx, input).
			Return(expected, nil).
			Once()
		mockMetrics.On("RecordOperation", ctx, "rights", "rights_process_access", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "rights", "rights_process_access", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := rightsUsecase.NewRightsUseCaseWithMetrics(mockUseCase, mockMetrics)
		output, err := decorator.Process(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expected, output)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &rightsUsecaseMocks.MockRightsUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := &rightsDomain.SubmitInput{
			SessionID: "session-1",
			RightType: rightsDomain.RightDeletion,
		}

		mockUseCase.On("Process", ctx, input).
			Return(nil, errors.New("database unavailable")).
			Once()
		mockMetrics.On("RecordOperation", ctx, "rights", "rights_process_deletion", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "rights", "rights_process_deletion", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := rightsUsecase.NewRightsUseCaseWithMetrics(mockUseCase, mockMetrics)
		output, err := decorator.Process(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, output)
		mockMetrics.AssertExpectations(t)
	})
}

func TestRightsMetricsDecorator_Get(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.Must(uuid.NewV7())

	mockUseCase := &rightsUsecaseMocks.MockRightsUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	expected := &rightsDomain.RightsRequest{
		ID:        requestID,
		SessionID: "session-1",
		RightType: rightsDomain.RightAccess,
		Status:    rightsDomain.StatusCompleted,
	}

	mockUseCase.On("Get", ctx, requestID).
		Return(expected, nil).
		Once()
	mockMetrics.On("RecordOperation", ctx, "rights", "rights_get", "success").
		Return().
		Once()
	mockMetrics.On("RecordDuration", ctx, "rights", "rights_get", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()

	decorator := rightsUsecase.NewRightsUseCaseWithMetrics(mockUseCase, mockMetrics)
	request, err := decorator.Get(ctx, requestID)

	assert.NoError(t, err)
	assert.Equal(t, expected, request)
	mockMetrics.AssertExpectations(t)
}
