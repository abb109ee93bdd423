package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/saraivavision/privacy/internal/errors"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	"github.com/saraivavision/privacy/internal/rights/http/dto"
	"github.com/saraivavision/privacy/internal/rights/usecase/mocks"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*RightsHandler, *mocks.MockRightsUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockRightsUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRightsHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestRightsHandler_SubmitHandler(t *testing.T) {
	t.Run("Success_DeletionRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.SubmitRightsRequest{
			SessionID: "session-1",
			RightType: "deletion",
		}

		requestID := uuid.Must(uuid.NewV7())
		output := &rightsDomain.ProcessOutput{
			RequestID:           requestID,
			RightType:           rightsDomain.RightDeletion,
			Status:              rightsDomain.StatusCompleted,
			EstimatedCompletion: time.Now().UTC().Add(30 * 24 * time.Hour),
			Actions:             []rightsDomain.RightsAction{rightsDomain.ActionDeletionScheduled},
			RetentionExceptions: []string{"medical_data", "consent_records", "audit_logs"},
		}

		mockUseCase.On("Process", mock.Anything, mock.MatchedBy(func(input *rightsDomain.SubmitInput) bool {
			return input.SessionID == "session-1" && input.RightType == rightsDomain.RightDeletion
		})).
			Return(output, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/rights", request)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ProcessOutputResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, requestID.String(), response.RequestID)
		assert.Equal(t, "deletion", response.RightType)
		assert.Equal(t, "COMPLETED", response.Status)
		assert.Contains(t, response.Actions, "DATA_DELETION_SCHEDULED")
		assert.Contains(t, response.RetentionExceptions, "medical_data")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("UnknownRightType_Returns422", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.SubmitRightsRequest{
			SessionID: "session-1",
			RightType: "forgetme",
		}

		mockUseCase.On("Process", mock.Anything, mock.Anything).
			Return(nil, rightsDomain.ErrUnsupportedRightType).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/rights", request)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("ValidationError_MissingSessionID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.SubmitRightsRequest{RightType: "access"}

		c, w := createTestContext(http.MethodPost, "/v1/rights", request)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("ProcessingFailure_Returns503WithRetryable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.SubmitRightsRequest{
			SessionID: "session-1",
			RightType: "access",
		}

		mockUseCase.On("Process", mock.Anything, mock.Anything).
			Return(nil, apperrors.MarkRetryable(apperrors.Wrap(rightsDomain.ErrRightsProcessing, "boom"))).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/rights", request)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"retryable":true`)
	})
}

func TestRightsHandler_GetHandler(t *testing.T) {
	t.Run("Success_ReturnsRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		requestID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()
		completedAt := now.Add(time.Minute)

		request := &rightsDomain.RightsRequest{
			ID:                  requestID,
			SessionID:           "session-1",
			RightType:           rightsDomain.RightAccess,
			Status:              rightsDomain.StatusCompleted,
			CreatedAt:           now,
			EstimatedCompletion: now.Add(24 * time.Hour),
			CompletedAt:         &completedAt,
		}

		mockUseCase.On("Get", mock.Anything, requestID).
			Return(request, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/rights/"+requestID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: requestID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.RightsRequestResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, requestID.String(), response.ID)
		assert.Equal(t, "COMPLETED", response.Status)
		assert.NotNil(t, response.CompletedAt)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("InvalidID_Returns422", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/rights/not-a-uuid", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("NotFound_Returns404", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		requestID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, requestID).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "rights request not found")).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/rights/"+requestID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: requestID.String()}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRightsHandler_ListHandler(t *testing.T) {
	t.Run("Success_ReturnsRequests", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		requests := []*rightsDomain.RightsRequest{
			{
				ID:                  uuid.Must(uuid.NewV7()),
				SessionID:           "session-1",
				RightType:           rightsDomain.RightPortability,
				Status:              rightsDomain.StatusCompleted,
				CreatedAt:           now,
				EstimatedCompletion: now.Add(24 * time.Hour),
			},
		}

		mockUseCase.On("ListBySession", mock.Anything, "session-1").
			Return(requests, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/rights?session_id=session-1", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListRightsRequestsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 1)
		assert.Equal(t, "portability", response.Data[0].RightType)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("MissingSessionID_Returns422", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/rights", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
