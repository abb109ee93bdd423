// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
)

// MockConsentUseCase is a mock implementation of ConsentUseCase for testing.
type MockConsentUseCase struct {
	mock.Mock
}

// ValidateConsent mocks the ValidateConsent method of ConsentUseCase.
func (m *MockConsentUseCase) ValidateConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
	purpose consentDomain.Purpose,
) (*consentDomain.ValidationResult, error) {
	args := m.Called(ctx, sessionID, consentType, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consentDomain.ValidationResult), args.Error(1)
}

// RecordConsent mocks the RecordConsent method of ConsentUseCase.
func (m *MockConsentUseCase) RecordConsent(
	ctx context.Context,
	input *consentDomain.RecordConsentInput,
) (*consentDomain.RecordConsentOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consentDomain.RecordConsentOutput), args.Error(1)
}

// WithdrawConsent mocks the WithdrawConsent method of ConsentUseCase.
func (m *MockConsentUseCase) WithdrawConsent(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
) (*consentDomain.WithdrawConsentOutput, error) {
	args := m.Called(ctx, sessionID, consentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consentDomain.WithdrawConsentOutput), args.Error(1)
}

// History mocks the History method of ConsentUseCase.
func (m *MockConsentUseCase) History(
	ctx context.Context,
	sessionID string,
) ([]*consentDomain.ConsentRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consentDomain.ConsentRecord), args.Error(1)
}
