package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/saraivavision/privacy/internal/errors"
	"github.com/saraivavision/privacy/internal/httputil"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
	}{
		{
			name:          "not found",
			err:           apperrors.Wrap(apperrors.ErrNotFound, "consent record"),
			expectedCode:  http.StatusNotFound,
			expectedError: "not_found",
		},
		{
			name:          "conflict",
			err:           apperrors.Wrap(apperrors.ErrConflict, "state transition"),
			expectedCode:  http.StatusConflict,
			expectedError: "conflict",
		},
		{
			name:          "invalid input",
			err:           apperrors.Wrap(apperrors.ErrInvalidInput, "unknown purpose"),
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "invalid_input",
		},
		{
			name:          "retryable collaborator failure",
			err:           apperrors.MarkRetryable(apperrors.Wrap(apperrors.ErrUnavailable, "store offline")),
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "unavailable",
		},
		{
			name:          "unknown error hides details",
			err:           apperrors.New("sensitive internals"),
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			httputil.HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedError)
			if tt.expectedError == "internal_error" {
				assert.NotContains(t, w.Body.String(), "sensitive internals")
			}
		})
	}
}
