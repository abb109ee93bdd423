package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	retentionUsecase "github.com/saraivavision/privacy/internal/retention/usecase"
)

// RunRetentionSweep executes one pass over due retention records, deleting
// the data each one covers. Records whose deletion fails are skipped and
// stay scheduled for the next sweep.
func RunRetentionSweep(
	ctx context.Context,
	retentionUseCase retentionUsecase.RetentionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("executing retention sweep")

	result, err := retentionUseCase.ExecuteDue(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to execute retention sweep: %w", err)
	}

	if format == "json" {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Retention sweep completed\n")
		_, _ = fmt.Fprintf(writer, "Executed:      %d\n", result.Executed)
		_, _ = fmt.Fprintf(writer, "Skipped:       %d\n", result.Skipped)
		_, _ = fmt.Fprintf(writer, "Items deleted: %d\n", result.ItemsDeleted)
	}

	logger.Info("retention sweep completed",
		slog.Int("executed", result.Executed),
		slog.Int("skipped", result.Skipped),
		slog.Int64("items_deleted", result.ItemsDeleted),
	)
	return nil
}
