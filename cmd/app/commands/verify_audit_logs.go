package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	auditUsecase "github.com/saraivavision/privacy/internal/audit/usecase"
)

// RunVerifyAuditLogs re-checks the HMAC-SHA256 signature of stored audit
// events for tamper detection. An empty sessionID and eventType verify
// across all sessions and event types, bounded by limit.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditUseCase auditUsecase.AuditUseCase,
	logger *slog.Logger,
	writer io.Writer,
	sessionID, eventType string,
	limit uint,
	format string,
) error {
	filter := auditDomain.EventFilter{
		SessionID: sessionID,
		Type:      auditDomain.EventType(eventType),
		Limit:     limit,
	}

	logger.Info("verifying audit logs",
		slog.String("session_id", sessionID),
		slog.String("event_type", eventType),
		slog.Uint64("limit", uint64(limit)),
	)

	report, err := auditUseCase.Verify(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	// Output result based on format
	if format == "json" {
		if err := outputVerifyJSON(writer, report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, report)
	}

	logger.Info("verification completed",
		slog.Int("checked", report.Checked),
		slog.Int("invalid", len(report.Invalid)),
	)

	// Exit with error code if integrity check failed
	if !report.Valid() {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", len(report.Invalid))
	}

	return nil
}

// outputVerifyText outputs the verification result in human-readable text format.
func outputVerifyText(writer io.Writer, report *auditUsecase.VerificationReport) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer, "Total Checked: %d\n", report.Checked)
	_, _ = fmt.Fprintf(writer, "Invalid:       %d\n\n", len(report.Invalid))

	switch {
	case len(report.Invalid) > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d event(s) failed integrity check!\n\n", len(report.Invalid))
		_, _ = fmt.Fprintf(writer, "Invalid Event IDs:\n")
		for _, id := range report.Invalid {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.Checked == 0:
		_, _ = fmt.Fprintf(writer, "Status: No events matched the filter\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}

// outputVerifyJSON outputs the verification result in JSON format for machine consumption.
func outputVerifyJSON(writer io.Writer, report *auditUsecase.VerificationReport) error {
	result := map[string]interface{}{
		"checked":       report.Checked,
		"invalid_count": len(report.Invalid),
		"invalid":       report.Invalid,
		"passed":        report.Valid(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
