// Package http provides HTTP handlers for data-subject rights operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/saraivavision/privacy/internal/errors"
	"github.com/saraivavision/privacy/internal/httputil"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	"github.com/saraivavision/privacy/internal/rights/http/dto"
	rightsUseCase "github.com/saraivavision/privacy/internal/rights/usecase"
	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// RightsHandler handles HTTP requests for data-subject rights operations.
type RightsHandler struct {
	rightsUseCase rightsUseCase.RightsUseCase
	logger        *slog.Logger
}

// NewRightsHandler creates a new rights handler with required dependencies.
func NewRightsHandler(uc rightsUseCase.RightsUseCase, logger *slog.Logger) *RightsHandler {
	return &RightsHandler{
		rightsUseCase: uc,
		logger:        logger,
	}
}

// SubmitHandler records and processes a rights request.
// POST /v1/rights
// Returns 201 Created with the outcome: exports for access and portability,
// scheduled actions for rectification and deletion, and the retention
// exceptions a deletion cannot touch.
func (h *RightsHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitRightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.rightsUseCase.Process(c.Request.Context(), &rightsDomain.SubmitInput{
		SessionID:   req.SessionID,
		RightType:   rightsDomain.RightType(req.RightType),
		RequestData: req.RequestData,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProcessOutput(output))
}

// GetHandler retrieves a rights request by id.
// GET /v1/rights/:id
func (h *RightsHandler) GetHandler(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid request id"),
			h.logger,
		)
		return
	}

	request, err := h.rightsUseCase.Get(c.Request.Context(), requestID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRightsRequest(request))
}

// ListHandler returns every rights request for a session, newest first.
// GET /v1/rights?session_id=S
func (h *RightsHandler) ListHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "session_id is required"),
			h.logger,
		)
		return
	}

	requests, err := h.rightsUseCase.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRightsRequests(requests))
}
