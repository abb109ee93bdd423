// Package mocks provides mock implementations for testing audit consumers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	auditUsecase "github.com/saraivavision/privacy/internal/audit/usecase"
)

// MockAuditUseCase is a mock implementation of AuditUseCase for testing.
type MockAuditUseCase struct {
	mock.Mock
}

// Log mocks the Log method of AuditUseCase.
func (m *MockAuditUseCase) Log(
	ctx context.Context,
	eventType auditDomain.EventType,
	sessionID string,
	metadata map[string]any,
) (*auditDomain.Event, error) {
	args := m.Called(ctx, eventType, sessionID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.Event), args.Error(1)
}

// List mocks the List method of AuditUseCase.
func (m *MockAuditUseCase) List(
	ctx context.Context,
	filter auditDomain.EventFilter,
) ([]*auditDomain.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Event), args.Error(1)
}

// Verify mocks the Verify method of AuditUseCase.
func (m *MockAuditUseCase) Verify(
	ctx context.Context,
	filter auditDomain.EventFilter,
) (*auditUsecase.VerificationReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditUsecase.VerificationReport), args.Error(1)
}

// PurgeExpired mocks the PurgeExpired method of AuditUseCase.
func (m *MockAuditUseCase) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
