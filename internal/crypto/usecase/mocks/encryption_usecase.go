// Package mocks provides mock implementations for testing encryption consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
	cryptoUsecase "github.com/saraivavision/privacy/internal/crypto/usecase"
)

// MockEncryptionUseCase is a mock implementation of EncryptionUseCase for testing.
type MockEncryptionUseCase struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EncryptionUseCase.
func (m *MockEncryptionUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
	purpose string,
) (*cryptoDomain.EncryptedPayload, error) {
	args := m.Called(ctx, plaintext, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedPayload), args.Error(1)
}

// Decrypt mocks the Decrypt method of EncryptionUseCase.
func (m *MockEncryptionUseCase) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptPII mocks the EncryptPII method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptPII(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.EncryptedPIIRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedPIIRecord), args.Error(1)
}

// DecryptPII mocks the DecryptPII method of EncryptionUseCase.
func (m *MockEncryptionUseCase) DecryptPII(
	ctx context.Context,
	record *cryptoDomain.EncryptedPIIRecord,
) (*cryptoDomain.PIIRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.PIIRecord), args.Error(1)
}

// EncryptMedicalRecord mocks the EncryptMedicalRecord method of EncryptionUseCase.
func (m *MockEncryptionUseCase) EncryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.MedicalRecord,
) (*cryptoDomain.EncryptedMedicalRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptedMedicalRecord), args.Error(1)
}

// DecryptMedicalRecord mocks the DecryptMedicalRecord method of EncryptionUseCase.
func (m *MockEncryptionUseCase) DecryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.EncryptedMedicalRecord,
) (*cryptoDomain.MedicalRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.MedicalRecord), args.Error(1)
}

// Anonymize mocks the Anonymize method of EncryptionUseCase.
func (m *MockEncryptionUseCase) Anonymize(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.AnonymizedRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.AnonymizedRecord), args.Error(1)
}

// RotateKeys mocks the RotateKeys method of EncryptionUseCase.
func (m *MockEncryptionUseCase) RotateKeys(ctx context.Context) (cryptoDomain.KeyRotation, error) {
	args := m.Called(ctx)
	return args.Get(0).(cryptoDomain.KeyRotation), args.Error(1)
}

// Status mocks the Status method of EncryptionUseCase.
func (m *MockEncryptionUseCase) Status(ctx context.Context) cryptoService.KeyManagerStatus {
	args := m.Called(ctx)
	return args.Get(0).(cryptoService.KeyManagerStatus)
}

// Ensure MockEncryptionUseCase implements EncryptionUseCase.
var _ cryptoUsecase.EncryptionUseCase = (*MockEncryptionUseCase)(nil)
