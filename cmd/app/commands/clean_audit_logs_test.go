package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditMocks "github.com/saraivavision/privacy/internal/audit/usecase/mocks"
)

func TestRunCleanAuditLogs(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &auditMocks.MockAuditUseCase{}
		mockUseCase.On("PurgeExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, mockUseCase, logger, &out, 365, "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 7 audit event(s)")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &auditMocks.MockAuditUseCase{}
		mockUseCase.On("PurgeExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

		var out bytes.Buffer
		err := RunCleanAuditLogs(ctx, mockUseCase, logger, &out, 30, "json")
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(out.Bytes(), &result)
		require.NoError(t, err)
		require.Equal(t, float64(3), result["count"])
		require.Equal(t, float64(30), result["days"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-days", func(t *testing.T) {
		err := RunCleanAuditLogs(ctx, nil, logger, nil, 0, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
	})
}
