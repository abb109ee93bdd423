package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	cryptoMocks "github.com/saraivavision/privacy/internal/crypto/usecase/mocks"
)

func TestRunRotateKeys(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	rotation := cryptoDomain.KeyRotation{
		NewKeyID:  "key_2026_09",
		RotatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("RotateKeys", ctx).Return(rotation, nil)

		var out bytes.Buffer
		err := RunRotateKeys(ctx, mockUseCase, logger, &out, "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Key rotation completed")
		require.Contains(t, out.String(), "key_2026_09")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("RotateKeys", ctx).Return(rotation, nil)

		var out bytes.Buffer
		err := RunRotateKeys(ctx, mockUseCase, logger, &out, "json")
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(out.Bytes(), &result)
		require.NoError(t, err)
		require.Equal(t, "key_2026_09", result["new_key_id"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("rotation-failure", func(t *testing.T) {
		mockUseCase := &cryptoMocks.MockEncryptionUseCase{}
		mockUseCase.On("RotateKeys", ctx).Return(cryptoDomain.KeyRotation{}, errors.New("kdf failure"))

		var out bytes.Buffer
		err := RunRotateKeys(ctx, mockUseCase, logger, &out, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to rotate keys")
		mockUseCase.AssertExpectations(t)
	})
}
