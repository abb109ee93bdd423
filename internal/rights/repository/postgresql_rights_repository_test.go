package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/saraivavision/privacy/internal/errors"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
)

var rightsColumns = []string{
	"id", "session_id", "right_type", "request_data", "status",
	"created_at", "estimated_completion", "completed_at",
}

func newRequest() *rightsDomain.RightsRequest {
	now := time.Now().UTC()
	return &rightsDomain.RightsRequest{
		ID:                  uuid.Must(uuid.NewV7()),
		SessionID:           "session-1",
		RightType:           rightsDomain.RightAccess,
		RequestData:         map[string]any{"reason": "data review"},
		Status:              rightsDomain.StatusReceived,
		CreatedAt:           now,
		EstimatedCompletion: now.Add(24 * time.Hour),
	}
}

func TestPostgreSQLRightsRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLRightsRepository(db)
	request := newRequest()

	requestData, err := json.Marshal(request.RequestData)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO rights_requests`).
		WithArgs(
			request.ID, request.SessionID, request.RightType, requestData,
			request.Status, request.CreatedAt, request.EstimatedCompletion, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), request))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRightsRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLRightsRepository(db)
	request := newRequest()

	t.Run("Found", func(t *testing.T) {
		requestData, err := json.Marshal(request.RequestData)
		require.NoError(t, err)

		rows := sqlmock.NewRows(rightsColumns).AddRow(
			request.ID, request.SessionID, request.RightType, requestData,
			request.Status, request.CreatedAt, request.EstimatedCompletion, nil,
		)

		mock.ExpectQuery(`SELECT (.+) FROM rights_requests WHERE id = \$1`).
			WithArgs(request.ID).
			WillReturnRows(rows)

		got, err := repo.Get(context.Background(), request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, got.ID)
		assert.Equal(t, request.RightType, got.RightType)
		assert.Equal(t, request.RequestData, got.RequestData)
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rights_requests WHERE id = \$1`).
			WithArgs(request.ID).
			WillReturnRows(sqlmock.NewRows(rightsColumns))

		got, err := repo.Get(context.Background(), request.ID)
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRightsRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLRightsRepository(db)
	request := newRequest()

	t.Run("TransitionsMatchingStatus", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rights_requests SET status = \$1, completed_at = \$2 WHERE id = \$3 AND status = \$4`).
			WithArgs(rightsDomain.StatusProcessing, nil, request.ID, rightsDomain.StatusReceived).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(
			context.Background(), request.ID,
			rightsDomain.StatusReceived, rightsDomain.StatusProcessing,
		)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("TerminalStatusSetsCompletedAt", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rights_requests SET status = \$1, completed_at = \$2 WHERE id = \$3 AND status = \$4`).
			WithArgs(rightsDomain.StatusCompleted, sqlmock.AnyArg(), request.ID, rightsDomain.StatusProcessing).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(
			context.Background(), request.ID,
			rightsDomain.StatusProcessing, rightsDomain.StatusCompleted,
		)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("StaleStatusIsNoOp", func(t *testing.T) {
		mock.ExpectExec(`UPDATE rights_requests SET status = \$1, completed_at = \$2 WHERE id = \$3 AND status = \$4`).
			WithArgs(rightsDomain.StatusProcessing, nil, request.ID, rightsDomain.StatusReceived).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatus(
			context.Background(), request.ID,
			rightsDomain.StatusReceived, rightsDomain.StatusProcessing,
		)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRightsRepository_ListBySession(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLRightsRepository(db)
	request := newRequest()
	completedAt := request.CreatedAt.Add(time.Hour)

	requestData, err := json.Marshal(request.RequestData)
	require.NoError(t, err)

	rows := sqlmock.NewRows(rightsColumns).
		AddRow(
			request.ID, request.SessionID, rightsDomain.RightDeletion, requestData,
			rightsDomain.StatusCompleted, request.CreatedAt, request.EstimatedCompletion, completedAt,
		).
		AddRow(
			uuid.Must(uuid.NewV7()), request.SessionID, request.RightType, requestData,
			request.Status, request.CreatedAt, request.EstimatedCompletion, nil,
		)

	mock.ExpectQuery(`SELECT (.+) FROM rights_requests WHERE session_id = \$1 ORDER BY created_at DESC`).
		WithArgs(request.SessionID).
		WillReturnRows(rows)

	got, err := repo.ListBySession(context.Background(), request.SessionID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rightsDomain.RightDeletion, got[0].RightType)
	require.NotNil(t, got[0].CompletedAt)
	assert.WithinDuration(t, completedAt, *got[0].CompletedAt, time.Second)
	assert.Nil(t, got[1].CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
