// Package mocks provides mock implementations for testing rights consumers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	rightsUsecase "github.com/saraivavision/privacy/internal/rights/usecase"
)

// MockRightsUseCase is a mock implementation of RightsUseCase for testing.
type MockRightsUseCase struct {
	mock.Mock
}

// Process mocks the Process method of RightsUseCase.
func (m *MockRightsUseCase) Process(
	ctx context.Context,
	input *rightsDomain.SubmitInput,
) (*rightsDomain.ProcessOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rightsDomain.ProcessOutput), args.Error(1)
}

// Get mocks the Get method of RightsUseCase.
func (m *MockRightsUseCase) Get(
	ctx context.Context,
	requestID uuid.UUID,
) (*rightsDomain.RightsRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rightsDomain.RightsRequest), args.Error(1)
}

// ListBySession mocks the ListBySession method of RightsUseCase.
func (m *MockRightsUseCase) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*rightsDomain.RightsRequest, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rightsDomain.RightsRequest), args.Error(1)
}

// Ensure MockRightsUseCase implements RightsUseCase.
var _ rightsUsecase.RightsUseCase = (*MockRightsUseCase)(nil)
