package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoUsecase "github.com/saraivavision/privacy/internal/crypto/usecase"
)

// RunRotateKeys advances the encryption key epoch. The new epoch key is
// pre-derived for every cached purpose and the rotation is written to the
// audit trail; old ciphertext stays readable because past keys re-derive
// on demand.
func RunRotateKeys(
	ctx context.Context,
	encryptionUseCase cryptoUsecase.EncryptionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("rotating encryption keys")

	rotation, err := encryptionUseCase.RotateKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to rotate keys: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"new_key_id": rotation.NewKeyID,
			"rotated_at": rotation.RotatedAt,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Key rotation completed\n")
		_, _ = fmt.Fprintf(writer, "New key ID: %s\n", rotation.NewKeyID)
		_, _ = fmt.Fprintf(writer, "Rotated at: %s\n", rotation.RotatedAt.Format("2006-01-02 15:04:05"))
	}

	logger.Info("key rotation completed",
		slog.String("new_key_id", rotation.NewKeyID),
	)
	return nil
}
