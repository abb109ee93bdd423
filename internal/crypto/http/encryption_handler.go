// Package http provides HTTP handlers for the encryption engine: payload
// and field-level encryption, anonymization, and key management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	"github.com/saraivavision/privacy/internal/crypto/http/dto"
	cryptoUseCase "github.com/saraivavision/privacy/internal/crypto/usecase"
	"github.com/saraivavision/privacy/internal/httputil"
	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// EncryptionHandler handles HTTP requests for encryption engine operations.
type EncryptionHandler struct {
	encryptionUseCase cryptoUseCase.EncryptionUseCase
	logger            *slog.Logger
}

// NewEncryptionHandler creates a new encryption handler with required dependencies.
func NewEncryptionHandler(uc cryptoUseCase.EncryptionUseCase, logger *slog.Logger) *EncryptionHandler {
	return &EncryptionHandler{
		encryptionUseCase: uc,
		logger:            logger,
	}
}

// EncryptHandler seals a payload under the current epoch key.
// POST /v1/crypto/encrypt
// Returns 200 OK with the self-describing encrypted payload.
func (h *EncryptionHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload, err := h.encryptionUseCase.Encrypt(c.Request.Context(), req.Plaintext, req.Purpose)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// DecryptHandler opens an encrypted payload.
// POST /v1/crypto/decrypt
// Returns 200 OK with the plaintext. Tampered and malformed payloads are
// indistinguishable: both yield a decryption failure.
func (h *EncryptionHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.encryptionUseCase.Decrypt(c.Request.Context(), req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Plaintext: plaintext})
}

// EncryptPIIHandler encrypts the sensitive fields of a PII record.
// POST /v1/crypto/pii/encrypt
func (h *EncryptionHandler) EncryptPIIHandler(c *gin.Context) {
	var record cryptoDomain.PIIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	encrypted, err := h.encryptionUseCase.EncryptPII(c.Request.Context(), &record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, encrypted)
}

// DecryptPIIHandler restores a PII record from its encrypted form.
// POST /v1/crypto/pii/decrypt
func (h *EncryptionHandler) DecryptPIIHandler(c *gin.Context) {
	var record cryptoDomain.EncryptedPIIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	decrypted, err := h.encryptionUseCase.DecryptPII(c.Request.Context(), &record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, decrypted)
}

// EncryptMedicalHandler encrypts the clinical fields of a medical record.
// POST /v1/crypto/medical/encrypt
// The response carries the enhanced protection metadata block.
func (h *EncryptionHandler) EncryptMedicalHandler(c *gin.Context) {
	var record cryptoDomain.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	encrypted, err := h.encryptionUseCase.EncryptMedicalRecord(c.Request.Context(), &record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, encrypted)
}

// DecryptMedicalHandler restores a medical record from its encrypted form.
// POST /v1/crypto/medical/decrypt
func (h *EncryptionHandler) DecryptMedicalHandler(c *gin.Context) {
	var record cryptoDomain.EncryptedMedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	decrypted, err := h.encryptionUseCase.DecryptMedicalRecord(c.Request.Context(), &record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, decrypted)
}

// AnonymizeHandler irreversibly strips direct identifiers from a PII record.
// POST /v1/crypto/anonymize
func (h *EncryptionHandler) AnonymizeHandler(c *gin.Context) {
	var record cryptoDomain.PIIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	anonymized, err := h.encryptionUseCase.Anonymize(c.Request.Context(), &record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, anonymized)
}

// RotateKeysHandler advances the key epoch.
// POST /v1/crypto/rotate-keys
// Returns 200 OK with the new key id. Existing payloads stay readable.
func (h *EncryptionHandler) RotateKeysHandler(c *gin.Context) {
	rotation, err := h.encryptionUseCase.RotateKeys(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyRotation(rotation))
}

// StatusHandler reports the engine's key epoch and cache state.
// GET /v1/crypto/status
func (h *EncryptionHandler) StatusHandler(c *gin.Context) {
	status := h.encryptionUseCase.Status(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapStatus(status))
}
