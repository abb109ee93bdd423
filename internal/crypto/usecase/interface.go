// Package usecase implements the encryption engine business logic: payload
// encryption and decryption, field-level protection for PII and medical
// records, anonymization, and key rotation.
package usecase

import (
	"context"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
)

// AuditLogger defines the audit trail operations the encryption engine needs.
type AuditLogger interface {
	Log(ctx context.Context, eventType auditDomain.EventType, sessionID string, metadata map[string]any) (*auditDomain.Event, error)
}

// EncryptionUseCase defines the interface for the encryption engine.
type EncryptionUseCase interface {
	// Encrypt seals plaintext for the given purpose under the current epoch
	// key. A fresh random nonce is generated per call; the purpose is bound
	// into the authentication tag as AAD.
	Encrypt(ctx context.Context, plaintext []byte, purpose string) (*cryptoDomain.EncryptedPayload, error)

	// Decrypt opens a payload with the key named by its KeyID and Purpose.
	// Evicted keys are re-derived on demand, so old payloads stay readable
	// across rotations.
	Decrypt(ctx context.Context, payload *cryptoDomain.EncryptedPayload) ([]byte, error)

	// EncryptPII encrypts every sensitive field of a PII record under the
	// pii purpose. Empty fields produce nil payloads.
	EncryptPII(ctx context.Context, record *cryptoDomain.PIIRecord) (*cryptoDomain.EncryptedPIIRecord, error)

	// DecryptPII restores a PII record from its encrypted form.
	DecryptPII(ctx context.Context, record *cryptoDomain.EncryptedPIIRecord) (*cryptoDomain.PIIRecord, error)

	// EncryptMedicalRecord encrypts every clinical field of a medical record
	// under the medical purpose and stamps the enhanced protection metadata.
	EncryptMedicalRecord(ctx context.Context, record *cryptoDomain.MedicalRecord) (*cryptoDomain.EncryptedMedicalRecord, error)

	// DecryptMedicalRecord restores a medical record from its encrypted form.
	DecryptMedicalRecord(ctx context.Context, record *cryptoDomain.EncryptedMedicalRecord) (*cryptoDomain.MedicalRecord, error)

	// Anonymize strips direct identifiers from a PII record. Anonymization
	// is irreversible; use EncryptPII when the data must stay recoverable.
	Anonymize(ctx context.Context, record *cryptoDomain.PIIRecord) (*cryptoDomain.AnonymizedRecord, error)

	// RotateKeys advances the key epoch and writes a key rotation audit
	// event. The rotation itself is local; the audit append can fail
	// independently and is reported as a retryable error.
	RotateKeys(ctx context.Context) (cryptoDomain.KeyRotation, error)

	// Status reports the engine's current key epoch and cache state.
	Status(ctx context.Context) cryptoService.KeyManagerStatus
}
