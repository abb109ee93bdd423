// Package http provides HTTP handlers for data-retention operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/saraivavision/privacy/internal/errors"
	"github.com/saraivavision/privacy/internal/httputil"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	"github.com/saraivavision/privacy/internal/retention/http/dto"
	retentionUseCase "github.com/saraivavision/privacy/internal/retention/usecase"
	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// RetentionHandler handles HTTP requests for data-retention operations.
type RetentionHandler struct {
	retentionUseCase retentionUseCase.RetentionUseCase
	logger           *slog.Logger
}

// NewRetentionHandler creates a new retention handler with required dependencies.
func NewRetentionHandler(uc retentionUseCase.RetentionUseCase, logger *slog.Logger) *RetentionHandler {
	return &RetentionHandler{
		retentionUseCase: uc,
		logger:           logger,
	}
}

// ScheduleHandler schedules a retention-driven deletion.
// POST /v1/retention
// Returns 201 Created with the record; the deletion deadline comes from the
// fixed per-type retention table.
func (h *RetentionHandler) ScheduleHandler(c *gin.Context) {
	var req dto.ScheduleRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.retentionUseCase.Schedule(
		c.Request.Context(),
		retentionDomain.DataType(req.DataType),
		req.Identifier,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRetentionRecord(record))
}

// ExecuteHandler runs one deletion sweep immediately.
// POST /v1/retention/execute
// Returns 200 OK with the sweep result. Safe to call while the background
// sweeper is running; each record's deletion executes at most once.
func (h *RetentionHandler) ExecuteHandler(c *gin.Context) {
	result, err := h.retentionUseCase.ExecuteDue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSweepResult(result))
}

// CancelHandler places a legal hold on a scheduled deletion.
// POST /v1/retention/:id/cancel
// Returns 204 No Content. An already executed or cancelled record yields 404.
func (h *RetentionHandler) CancelHandler(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid record id"),
			h.logger,
		)
		return
	}

	if err := h.retentionUseCase.Cancel(c.Request.Context(), recordID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// StatusHandler returns the retention records covering an identifier.
// GET /v1/retention?identifier=S
func (h *RetentionHandler) StatusHandler(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "identifier is required"),
			h.logger,
		)
		return
	}

	records, err := h.retentionUseCase.StatusFor(c.Request.Context(), identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRetentionRecords(records))
}
