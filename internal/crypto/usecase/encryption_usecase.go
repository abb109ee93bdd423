package usecase

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoService "github.com/saraivavision/privacy/internal/crypto/service"
)

// encryptionUseCase implements the EncryptionUseCase interface.
type encryptionUseCase struct {
	keyManager cryptoService.KeyManager
	anonymizer cryptoService.Anonymizer
	audit      AuditLogger
}

// Encrypt seals plaintext for the given purpose under the current epoch key.
func (e *encryptionUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
	purpose string,
) (*cryptoDomain.EncryptedPayload, error) {
	if len(plaintext) == 0 {
		return nil, cryptoDomain.ErrEmptyPlaintext
	}
	if purpose == "" {
		purpose = cryptoDomain.PurposeGeneral
	}

	now := time.Now().UTC()
	keyID := e.keyManager.CurrentKeyID(now)

	key, err := e.keyManager.GetOrCreate(keyID, purpose)
	if err != nil {
		return nil, err
	}

	aead, err := cryptoService.NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	sealed, err := aead.Encrypt(plaintext, nonce, []byte(purpose))
	if err != nil {
		return nil, err
	}

	ciphertext, authTag, err := cryptoDomain.SplitSealed(sealed)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedPayload{
		Ciphertext: ciphertext,
		IV:         nonce,
		AuthTag:    authTag,
		KeyID:      keyID,
		Purpose:    purpose,
		Algorithm:  cryptoDomain.AESGCM,
		CreatedAt:  now,
	}, nil
}

// Decrypt opens a payload with the key named by its KeyID and Purpose.
func (e *encryptionUseCase) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	key, err := e.keyManager.GetOrCreate(payload.KeyID, payload.Purpose)
	if err != nil {
		return nil, err
	}

	aead, err := cryptoService.NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	return aead.Decrypt(payload.Sealed(), payload.IV, []byte(payload.Purpose))
}

// encryptField encrypts a single string field, mapping empty to nil.
func (e *encryptionUseCase) encryptField(
	ctx context.Context,
	value, purpose string,
) (*cryptoDomain.EncryptedPayload, error) {
	if value == "" {
		return nil, nil
	}
	return e.Encrypt(ctx, []byte(value), purpose)
}

// decryptField decrypts a single string field, mapping nil to empty.
func (e *encryptionUseCase) decryptField(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) (string, error) {
	if payload == nil {
		return "", nil
	}
	plaintext, err := e.Decrypt(ctx, payload)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// encryptJSONField JSON-encodes a multi-valued field before encryption so
// the value round-trips exactly. Empty slices map to nil payloads.
func (e *encryptionUseCase) encryptJSONField(
	ctx context.Context,
	values []string,
	purpose string,
) (*cryptoDomain.EncryptedPayload, error) {
	if len(values) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}
	return e.Encrypt(ctx, encoded, purpose)
}

// decryptJSONField decrypts and JSON-decodes a multi-valued field.
func (e *encryptionUseCase) decryptJSONField(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]string, error) {
	if payload == nil {
		return nil, nil
	}
	plaintext, err := e.Decrypt(ctx, payload)
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}
	return values, nil
}

// EncryptPII encrypts every sensitive field of a PII record.
func (e *encryptionUseCase) EncryptPII(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.EncryptedPIIRecord, error) {
	if record == nil {
		return nil, cryptoDomain.ErrEmptyPlaintext
	}

	encrypted := &cryptoDomain.EncryptedPIIRecord{
		Age:       record.Age,
		SessionID: record.SessionID,
	}

	fields := []struct {
		value string
		dst   **cryptoDomain.EncryptedPayload
	}{
		{record.Name, &encrypted.Name},
		{record.Email, &encrypted.Email},
		{record.Phone, &encrypted.Phone},
		{record.NationalID, &encrypted.NationalID},
		{record.Address, &encrypted.Address},
	}
	for _, field := range fields {
		payload, err := e.encryptField(ctx, field.value, cryptoDomain.PurposePII)
		if err != nil {
			return nil, err
		}
		*field.dst = payload
	}

	return encrypted, nil
}

// DecryptPII restores a PII record from its encrypted form.
func (e *encryptionUseCase) DecryptPII(
	ctx context.Context,
	record *cryptoDomain.EncryptedPIIRecord,
) (*cryptoDomain.PIIRecord, error) {
	if record == nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	decrypted := &cryptoDomain.PIIRecord{
		Age:       record.Age,
		SessionID: record.SessionID,
	}

	fields := []struct {
		payload *cryptoDomain.EncryptedPayload
		dst     *string
	}{
		{record.Name, &decrypted.Name},
		{record.Email, &decrypted.Email},
		{record.Phone, &decrypted.Phone},
		{record.NationalID, &decrypted.NationalID},
		{record.Address, &decrypted.Address},
	}
	for _, field := range fields {
		value, err := e.decryptField(ctx, field.payload)
		if err != nil {
			return nil, err
		}
		*field.dst = value
	}

	return decrypted, nil
}

// EncryptMedicalRecord encrypts every clinical field of a medical record
// and stamps the enhanced protection metadata.
func (e *encryptionUseCase) EncryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.MedicalRecord,
) (*cryptoDomain.EncryptedMedicalRecord, error) {
	if record == nil {
		return nil, cryptoDomain.ErrEmptyPlaintext
	}

	encrypted := &cryptoDomain.EncryptedMedicalRecord{
		PatientRef: record.PatientRef,
	}

	fields := []struct {
		value string
		dst   **cryptoDomain.EncryptedPayload
	}{
		{record.Symptoms, &encrypted.Symptoms},
		{record.Diagnosis, &encrypted.Diagnosis},
		{record.Treatment, &encrypted.Treatment},
		{record.History, &encrypted.History},
		{record.TestResults, &encrypted.TestResults},
	}
	for _, field := range fields {
		payload, err := e.encryptField(ctx, field.value, cryptoDomain.PurposeMedical)
		if err != nil {
			return nil, err
		}
		*field.dst = payload
	}

	var err error
	if encrypted.Medications, err = e.encryptJSONField(ctx, record.Medications, cryptoDomain.PurposeMedical); err != nil {
		return nil, err
	}
	if encrypted.Allergies, err = e.encryptJSONField(ctx, record.Allergies, cryptoDomain.PurposeMedical); err != nil {
		return nil, err
	}

	encrypted.Protection = cryptoDomain.EnhancedProtection(time.Now().UTC())

	return encrypted, nil
}

// DecryptMedicalRecord restores a medical record from its encrypted form.
func (e *encryptionUseCase) DecryptMedicalRecord(
	ctx context.Context,
	record *cryptoDomain.EncryptedMedicalRecord,
) (*cryptoDomain.MedicalRecord, error) {
	if record == nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	decrypted := &cryptoDomain.MedicalRecord{
		PatientRef: record.PatientRef,
	}

	fields := []struct {
		payload *cryptoDomain.EncryptedPayload
		dst     *string
	}{
		{record.Symptoms, &decrypted.Symptoms},
		{record.Diagnosis, &decrypted.Diagnosis},
		{record.Treatment, &decrypted.Treatment},
		{record.History, &decrypted.History},
		{record.TestResults, &decrypted.TestResults},
	}
	for _, field := range fields {
		value, err := e.decryptField(ctx, field.payload)
		if err != nil {
			return nil, err
		}
		*field.dst = value
	}

	var err error
	if decrypted.Medications, err = e.decryptJSONField(ctx, record.Medications); err != nil {
		return nil, err
	}
	if decrypted.Allergies, err = e.decryptJSONField(ctx, record.Allergies); err != nil {
		return nil, err
	}

	return decrypted, nil
}

// Anonymize strips direct identifiers from a PII record.
func (e *encryptionUseCase) Anonymize(
	ctx context.Context,
	record *cryptoDomain.PIIRecord,
) (*cryptoDomain.AnonymizedRecord, error) {
	return e.anonymizer.AnonymizePII(record)
}

// RotateKeys advances the key epoch and writes a key rotation audit event.
func (e *encryptionUseCase) RotateKeys(ctx context.Context) (cryptoDomain.KeyRotation, error) {
	rotation, err := e.keyManager.Rotate(time.Now().UTC())
	if err != nil {
		return cryptoDomain.KeyRotation{}, err
	}

	_, err = e.audit.Log(ctx, auditDomain.EventKeyRotated, "", map[string]any{
		"new_key_id": rotation.NewKeyID,
		"rotated_at": rotation.RotatedAt,
	})
	if err != nil {
		return cryptoDomain.KeyRotation{}, err
	}

	return rotation, nil
}

// Status reports the engine's current key epoch and cache state.
func (e *encryptionUseCase) Status(ctx context.Context) cryptoService.KeyManagerStatus {
	return e.keyManager.Status(time.Now().UTC())
}

// NewEncryptionUseCase creates a new encryption engine use case instance
// with the provided dependencies.
func NewEncryptionUseCase(
	keyManager cryptoService.KeyManager,
	anonymizer cryptoService.Anonymizer,
	audit AuditLogger,
) EncryptionUseCase {
	return &encryptionUseCase{
		keyManager: keyManager,
		anonymizer: anonymizer,
		audit:      audit,
	}
}
