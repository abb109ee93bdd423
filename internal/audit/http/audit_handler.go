// Package http provides HTTP handlers for audit trail operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	"github.com/saraivavision/privacy/internal/audit/http/dto"
	auditUseCase "github.com/saraivavision/privacy/internal/audit/usecase"
	"github.com/saraivavision/privacy/internal/httputil"
)

// AuditHandler handles HTTP requests for audit trail operations. The trail
// is read-only over HTTP; events are written by the other modules.
type AuditHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(uc auditUseCase.AuditUseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: uc,
		logger:       logger,
	}
}

// ListHandler returns audit events, newest first.
// GET /v1/audit?session_id=S&event_type=T&offset=0&limit=50
func (h *AuditHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := auditDomain.EventFilter{
		SessionID: c.Query("session_id"),
		Type:      auditDomain.EventType(c.Query("event_type")),
		Offset:    offset,
		Limit:     limit,
	}

	events, err := h.auditUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEvents(events))
}

// VerifyHandler checks the signatures of the selected audit events.
// POST /v1/audit/verify?session_id=S&event_type=T&offset=0&limit=50
// Returns 200 OK with the verification report; tampered events are reported,
// never deleted.
func (h *AuditHandler) VerifyHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter := auditDomain.EventFilter{
		SessionID: c.Query("session_id"),
		Type:      auditDomain.EventType(c.Query("event_type")),
		Offset:    offset,
		Limit:     limit,
	}

	report, err := h.auditUseCase.Verify(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerificationReport(report))
}
