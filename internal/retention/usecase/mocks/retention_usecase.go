// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	retentionUsecase "github.com/saraivavision/privacy/internal/retention/usecase"
)

// MockRetentionUseCase is a mock implementation of RetentionUseCase for testing.
type MockRetentionUseCase struct {
	mock.Mock
}

// Schedule mocks the Schedule method of RetentionUseCase.
func (m *MockRetentionUseCase) Schedule(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
) (*retentionDomain.RetentionRecord, error) {
	args := m.Called(ctx, dataType, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retentionDomain.RetentionRecord), args.Error(1)
}

// ScheduleAt mocks the ScheduleAt method of RetentionUseCase.
func (m *MockRetentionUseCase) ScheduleAt(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
	deleteAt time.Time,
) (*retentionDomain.RetentionRecord, error) {
	args := m.Called(ctx, dataType, identifier, deleteAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retentionDomain.RetentionRecord), args.Error(1)
}

// ExecuteDue mocks the ExecuteDue method of RetentionUseCase.
func (m *MockRetentionUseCase) ExecuteDue(
	ctx context.Context,
	now time.Time,
) (*retentionUsecase.SweepResult, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retentionUsecase.SweepResult), args.Error(1)
}

// Cancel mocks the Cancel method of RetentionUseCase.
func (m *MockRetentionUseCase) Cancel(ctx context.Context, recordID uuid.UUID) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// StatusFor mocks the StatusFor method of RetentionUseCase.
func (m *MockRetentionUseCase) StatusFor(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*retentionDomain.RetentionRecord), args.Error(1)
}

// StartSweeper mocks the StartSweeper method of RetentionUseCase.
func (m *MockRetentionUseCase) StartSweeper(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ retentionUsecase.RetentionUseCase = (*MockRetentionUseCase)(nil)
