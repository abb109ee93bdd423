package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	auditUsecase "github.com/saraivavision/privacy/internal/audit/usecase"
)

// RunCleanAuditLogs deletes audit events older than the specified number of
// days. Audit logs carry their own retention window; this command enforces
// it outside the regular retention sweeper.
func RunCleanAuditLogs(
	ctx context.Context,
	auditUseCase auditUsecase.AuditUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	format string,
) error {
	// Validate days parameter
	if days <= 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	logger.Info("cleaning audit logs",
		slog.Int("days", days),
		slog.Time("cutoff", cutoff),
	)

	count, err := auditUseCase.PurgeExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete audit logs: %w", err)
	}

	// Output result based on format
	if format == "json" {
		result := map[string]interface{}{
			"count": count,
			"days":  days,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d audit event(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
	)

	return nil
}
