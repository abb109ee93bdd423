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

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	"github.com/saraivavision/privacy/internal/consent/http/dto"
	"github.com/saraivavision/privacy/internal/consent/usecase/mocks"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*ConsentHandler, *mocks.MockConsentUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockConsentUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewConsentHandler(mockUseCase, logger), mockUseCase
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

func TestConsentHandler_ValidateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.ValidateConsentRequest{
			SessionID:   "session-1",
			ConsentType: "marketing",
			Purpose:     "marketing",
		}

		expiresAt := time.Now().UTC().Add(24 * time.Hour)
		result := &consentDomain.ValidationResult{
			IsValid:         true,
			ConsentRequired: true,
			Status:          consentDomain.StatusGranted,
			LegalBasis:      consentDomain.BasisConsent,
			ExpiresAt:       &expiresAt,
		}

		mockUseCase.On("ValidateConsent", mock.Anything, "session-1", consentDomain.ConsentMarketing, consentDomain.PurposeMarketing).
			Return(result, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/consent/validate", request)

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ValidationResultResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.True(t, response.IsValid)
		assert.Equal(t, "granted", response.Status)
		assert.Equal(t, "consent", response.LegalBasis)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("ValidationError_MissingSessionID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.ValidateConsentRequest{
			ConsentType: "marketing",
			Purpose:     "marketing",
		}

		c, w := createTestContext(http.MethodPost, "/v1/consent/validate", request)

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("BadRequest_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodPost, "/v1/consent/validate", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("StoreUnavailable_Returns503", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.ValidateConsentRequest{
			SessionID:   "session-1",
			ConsentType: "marketing",
			Purpose:     "marketing",
		}

		mockUseCase.On("ValidateConsent", mock.Anything, "session-1", consentDomain.ConsentMarketing, consentDomain.PurposeMarketing).
			Return(nil, apperrors.MarkRetryable(apperrors.Wrap(apperrors.ErrUnavailable, "consent store unreachable"))).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/consent/validate", request)

		handler.ValidateHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestConsentHandler_RecordHandler(t *testing.T) {
	t.Run("Success_ReturnsRightsSummary", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.RecordConsentRequest{
			SessionID:   "session-1",
			ConsentType: "medical_data",
			Purpose:     "medical_referral",
			Granted:     true,
			ConsentText: "I authorize processing of my medical data.",
		}

		consentID := uuid.Must(uuid.NewV7())
		output := &consentDomain.RecordConsentOutput{
			ConsentID:  consentID,
			LegalBasis: consentDomain.BasisConsent,
			ExpiresAt:  time.Now().UTC().Add(5 * 365 * 24 * time.Hour),
			Rights:     consentDomain.UserRightsFor("Saraiva Vision", "dpo@saraivavisao.com.br"),
		}

		mockUseCase.On("RecordConsent", mock.Anything, mock.MatchedBy(func(input *consentDomain.RecordConsentInput) bool {
			return input.SessionID == "session-1" &&
				input.ConsentType == consentDomain.ConsentMedicalData &&
				input.Granted &&
				input.ConsentText == request.ConsentText
		})).
			Return(output, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/consent", request)

		handler.RecordHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.RecordConsentResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, consentID.String(), response.ConsentID)
		assert.Equal(t, "consent", response.LegalBasis)
		assert.NotEmpty(t, response.Rights.Rights)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("ValidationError_MissingConsentText", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.RecordConsentRequest{
			SessionID:   "session-1",
			ConsentType: "marketing",
			Purpose:     "marketing",
			Granted:     true,
		}

		c, w := createTestContext(http.MethodPost, "/v1/consent", request)

		handler.RecordHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestConsentHandler_WithdrawHandler(t *testing.T) {
	t.Run("Success_ReturnsActions", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.WithdrawConsentRequest{
			SessionID:   "session-1",
			ConsentType: "analytics",
		}

		output := &consentDomain.WithdrawConsentOutput{
			Actions:       []consentDomain.Action{consentDomain.ActionStopProcessing, consentDomain.ActionNotifySystems},
			EffectiveDate: time.Now().UTC(),
		}

		mockUseCase.On("WithdrawConsent", mock.Anything, "session-1", consentDomain.ConsentAnalytics).
			Return(output, nil).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/consent", request)

		handler.WithdrawHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.WithdrawConsentResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, []string{"STOP_PROCESSING", "NOTIFY_SYSTEMS"}, response.Actions)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("NoActiveConsent_Returns404", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.WithdrawConsentRequest{
			SessionID:   "session-1",
			ConsentType: "analytics",
		}

		mockUseCase.On("WithdrawConsent", mock.Anything, "session-1", consentDomain.ConsentAnalytics).
			Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "no active consent")).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/consent", request)

		handler.WithdrawHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestConsentHandler_HistoryHandler(t *testing.T) {
	t.Run("Success_ReturnsRecords", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		now := time.Now().UTC()
		records := []*consentDomain.ConsentRecord{
			{
				ID:          uuid.Must(uuid.NewV7()),
				SessionID:   "session-1",
				ConsentType: consentDomain.ConsentMarketing,
				Purpose:     consentDomain.PurposeMarketing,
				Granted:     true,
				LegalBasis:  consentDomain.BasisConsent,
				CreatedAt:   now.Add(-time.Hour),
				ExpiresAt:   now.Add(24 * time.Hour),
			},
		}

		mockUseCase.On("History", mock.Anything, "session-1").
			Return(records, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/consent/history?session_id=session-1", nil)

		handler.HistoryHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ConsentHistoryResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Len(t, response.Data, 1)
		assert.Equal(t, "granted", response.Data[0].Status)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("MissingSessionID_Returns422", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/consent/history", nil)

		handler.HistoryHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
