package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
	"github.com/saraivavision/privacy/internal/metrics"
)

// encryptionUseCaseWithMetrics decorates EncryptionUseCase with metrics instrumentation.
type encryptionUseCaseWithMetrics struct {
	next    EncryptionUseCase
	metrics metrics.BusinessMetrics
}

// NewEncryptionUseCaseWithMetrics wraps an EncryptionUseCase with metrics recording.
func NewEncryptionUseCaseWithMetrics(useCase EncryptionUseCase, m metrics.BusinessMetrics) EncryptionUseCase {
	return &encryptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits operation and duration metrics for one crypto operation.
func (s *encryptionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "crypto", operation, status)
	s.metrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
}

// Encrypt records metrics for payload encryption operations.
func (s *encryptionUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext []byte,
	purpose string,
) (*cryptoDomain.EncryptedPayload, error) {
	start := time.Now()
	payload, err := s.next.Encrypt(ctx, plaintext, purpose)
	s.record(ctx, "encrypt", start, err)
	return payload, err
}

// Decrypt records metrics for payload decryption operations.
func (s *encryptionUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.Decrypt(ctx, payload)
	s.record(ctx, "decrypt", start, err)
	return plaintext, err
}

// EncryptPII records metrics for PII record encryption operations.
func (s *encryptionUseCaseWithMetrics) EncryptPII(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.EncryptedPIIRecord, error) {
	start := time.Now()
	encrypted, err := s.next.EncryptPII(ctx, record)
	s.record(ctx, "encrypt_pii", start, err)
	return encrypted, err
}

// DecryptPII records metrics for PII record decryption operations.
func (s *encryptionUseCaseWithMetrics) DecryptPII(
	ctx context.Context,
	record *cryptoDomain.EncryptedPIIRecord,
) (*cryptoDomain.PIIRecord, error) {
	start := time.Now()
	decrypted, err := s.next.DecryptPII(ctx, record)
	s.record(ctx, "decrypt_pii", start, err)
	return decrypted, err
}

// EncryptMedicalRecord records metrics for medical record encryption operations.
func (s *encryptionUseCaseWithMetrics) EncryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.MedicalRecord,
) (*cryptoDomain.EncryptedMedicalRecord, error) {
	start := time.Now()
	encrypted, err := s.next.EncryptMedicalRecord(ctx, record)
	s.record(ctx, "encrypt_medical", start, err)
	return encrypted, err
}

// DecryptMedicalRecord records metrics for medical record decryption operations.
func (s *encryptionUseCaseWithMetrics) DecryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.EncryptedMedicalRecord,
) (*cryptoDomain.MedicalRecord, error) {
	start := time.Now()
	decrypted, err := s.next.DecryptMedicalRecord(ctx, record)
	s.record(ctx, "decrypt_medical", start, err)
	return decrypted, err
}

// Anonymize records metrics for anonymization operations.
func (s *encryptionUseCaseWithMetrics) Anonymize(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.AnonymizedRecord, error) {
	start := time.Now()
	anonymized, err := s.next.Anonymize(ctx, record)
	s.record(ctx, "anonymize", start, err)
	return anonymized, err
}

// RotateKeys records metrics for key rotation operations.
func (s *encryptionUseCaseWithMetrics) RotateKeys(ctx context.Context) (cryptoDomain.KeyRotation, error) {
	start := time.Now()
	rotation, err := s.next.RotateKeys(ctx)
	s.record(ctx, "rotate_keys", start, err)
	return rotation, err
}

// Status passes through without metrics; it is a cheap in-memory read.
func (s *encryptionUseCaseWithMetrics) Status(ctx context.Context) cryptoService.KeyManagerStatus {
	return s.next.Status(ctx)
}
