// Package http provides HTTP handlers for consent management operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	"github.com/saraivavision/privacy/internal/consent/http/dto"
	consentUseCase "github.com/saraivavision/privacy/internal/consent/usecase"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	"github.com/saraivavision/privacy/internal/httputil"
	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// ConsentHandler handles HTTP requests for consent management operations.
type ConsentHandler struct {
	consentUseCase consentUseCase.ConsentUseCase
	logger         *slog.Logger
}

// NewConsentHandler creates a new consent handler with required dependencies.
func NewConsentHandler(uc consentUseCase.ConsentUseCase, logger *slog.Logger) *ConsentHandler {
	return &ConsentHandler{
		consentUseCase: uc,
		logger:         logger,
	}
}

// ValidateHandler checks whether processing for a purpose is authorized.
// POST /v1/consent/validate
// Returns 200 OK with the validation result. A failed-closed check (store
// unavailable) returns 503 so callers know to prompt and retry.
func (h *ConsentHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.consentUseCase.ValidateConsent(
		c.Request.Context(),
		req.SessionID,
		consentDomain.ConsentType(req.ConsentType),
		consentDomain.Purpose(req.Purpose),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValidationResult(result))
}

// RecordHandler records a new consent decision.
// POST /v1/consent
// Returns 201 Created with the consent id, legal basis, expiry, and the
// user's rights summary. The client IP and user agent are taken from the
// request and pseudonymized before storage.
func (h *ConsentHandler) RecordHandler(c *gin.Context) {
	var req dto.RecordConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.consentUseCase.RecordConsent(c.Request.Context(), &consentDomain.RecordConsentInput{
		SessionID:   req.SessionID,
		ConsentType: consentDomain.ConsentType(req.ConsentType),
		Purpose:     consentDomain.Purpose(req.Purpose),
		Granted:     req.Granted,
		ConsentText: req.ConsentText,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordConsentOutput(output))
}

// WithdrawHandler revokes the active consent for a session and type.
// DELETE /v1/consent
// Returns 200 OK with the downstream obligations triggered by the withdrawal.
func (h *ConsentHandler) WithdrawHandler(c *gin.Context) {
	var req dto.WithdrawConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.consentUseCase.WithdrawConsent(
		c.Request.Context(),
		req.SessionID,
		consentDomain.ConsentType(req.ConsentType),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapWithdrawConsentOutput(output))
}

// HistoryHandler returns every consent record for a session, newest first.
// GET /v1/consent/history?session_id=S
func (h *ConsentHandler) HistoryHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "session_id is required"),
			h.logger,
		)
		return
	}

	records, err := h.consentUseCase.History(c.Request.Context(), sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConsentHistory(records, time.Now().UTC()))
}
