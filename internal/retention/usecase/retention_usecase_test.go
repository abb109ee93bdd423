package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	auditMocks "github.com/saraivavision/privacy/internal/audit/usecase/mocks"
	dbMocks "github.com/saraivavision/privacy/internal/database/mocks"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
)

// mockRetentionRepository is a mock implementation of RetentionRepository.
type mockRetentionRepository struct {
	mock.Mock
}

func (m *mockRetentionRepository) Create(ctx context.Context, record *retentionDomain.RetentionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRetentionRepository) ListDue(
	ctx context.Context,
	now time.Time,
	limit uint,
) ([]*retentionDomain.RetentionRecord, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*retentionDomain.RetentionRecord), args.Error(1)
}

func (m *mockRetentionRepository) ListByIdentifier(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*retentionDomain.RetentionRecord), args.Error(1)
}

func (m *mockRetentionRepository) MarkExecuted(ctx context.Context, recordID uuid.UUID) (bool, error) {
	args := m.Called(ctx, recordID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRetentionRepository) Cancel(ctx context.Context, recordID uuid.UUID) (bool, error) {
	args := m.Called(ctx, recordID)
	return args.Bool(0), args.Error(1)
}

// mockDataDeleter is a mock implementation of DataDeleter.
type mockDataDeleter struct {
	mock.Mock
}

func (m *mockDataDeleter) Delete(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
) (int64, error) {
	args := m.Called(ctx, dataType, identifier)
	return args.Get(0).(int64), args.Error(1)
}

func newTestUseCase(
	repo *mockRetentionRepository,
	deleter *mockDataDeleter,
	audit *auditMocks.MockAuditUseCase,
) RetentionUseCase {
	return NewRetentionUseCase(Config{}, &dbMocks.MockTxManager{}, repo, deleter, audit)
}

func dueRecord(now time.Time, dataType retentionDomain.DataType) *retentionDomain.RetentionRecord {
	return &retentionDomain.RetentionRecord{
		ID:                uuid.Must(uuid.NewV7()),
		DataType:          dataType,
		Identifier:        "session-1",
		CreatedAt:         now.AddDate(-1, 0, 0),
		ScheduledDeletion: now.Add(-time.Hour),
		Status:            retentionDomain.StatusScheduled,
	}
}

func TestRetentionUseCase_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("SchedulesWithTableDeadline", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		audit := new(auditMocks.MockAuditUseCase)

		var stored *retentionDomain.RetentionRecord
		repo.On("Create", ctx, mock.AnythingOfType("*domain.RetentionRecord")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*retentionDomain.RetentionRecord)
			}).
			Return(nil)
		audit.On("Log", ctx, auditDomain.EventRetentionScheduled, "session-1", mock.Anything).
			Return(&auditDomain.Event{}, nil)

		uc := newTestUseCase(repo, new(mockDataDeleter), audit)
		record, err := uc.Schedule(ctx, retentionDomain.DataMedical, "session-1")
		require.NoError(t, err)

		assert.Equal(t, retentionDomain.StatusScheduled, record.Status)
		assert.WithinDuration(t, record.CreatedAt.AddDate(0, 0, 1825), record.ScheduledDeletion, time.Second)
		assert.Equal(t, stored, record)
		audit.AssertExpectations(t)
	})

	t.Run("UnknownDataType", func(t *testing.T) {
		uc := newTestUseCase(new(mockRetentionRepository), new(mockDataDeleter), new(auditMocks.MockAuditUseCase))

		_, err := uc.Schedule(ctx, retentionDomain.DataType("telemetry"), "session-1")
		assert.ErrorIs(t, err, retentionDomain.ErrInvalidDataType)
	})

	t.Run("PersistenceFailureIsRetryable", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		repo.On("Create", ctx, mock.Anything).Return(apperrors.New("disk full"))

		uc := newTestUseCase(repo, new(mockDataDeleter), new(auditMocks.MockAuditUseCase))
		_, err := uc.Schedule(ctx, retentionDomain.DataConversation, "session-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, retentionDomain.ErrRetentionScheduling)
		assert.True(t, apperrors.IsRetryable(err))
	})
}

func TestRetentionUseCase_ExecuteDue(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("DeletesDueRecords", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		deleter := new(mockDataDeleter)
		audit := new(auditMocks.MockAuditUseCase)
		record := dueRecord(now, retentionDomain.DataConversation)

		repo.On("ListDue", ctx, now, uint(100)).
			Return([]*retentionDomain.RetentionRecord{record}, nil)
		repo.On("MarkExecuted", ctx, record.ID).Return(true, nil)
		deleter.On("Delete", ctx, record.DataType, record.Identifier).Return(int64(4), nil)
		audit.On("Log", ctx, auditDomain.EventRetentionExecuted, record.Identifier, mock.Anything).
			Return(&auditDomain.Event{}, nil)

		uc := newTestUseCase(repo, deleter, audit)
		result, err := uc.ExecuteDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Executed)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, int64(4), result.ItemsDeleted)
		deleter.AssertExpectations(t)
	})

	t.Run("SecondSweepIsNoOp", func(t *testing.T) {
		// The claim fails because the record is already EXECUTED: the
		// deleter must not run again.
		repo := new(mockRetentionRepository)
		deleter := new(mockDataDeleter)
		record := dueRecord(now, retentionDomain.DataConversation)

		repo.On("ListDue", ctx, now, uint(100)).
			Return([]*retentionDomain.RetentionRecord{record}, nil)
		repo.On("MarkExecuted", ctx, record.ID).Return(false, nil)

		uc := newTestUseCase(repo, deleter, new(auditMocks.MockAuditUseCase))
		result, err := uc.ExecuteDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Executed)
		assert.Equal(t, 1, result.Skipped)
		deleter.AssertNotCalled(t, "Delete")
	})

	t.Run("FailedDeletionSkipsRecord", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		deleter := new(mockDataDeleter)
		failing := dueRecord(now, retentionDomain.DataConversation)
		healthy := dueRecord(now, retentionDomain.DataPersonal)
		audit := new(auditMocks.MockAuditUseCase)

		repo.On("ListDue", ctx, now, uint(100)).
			Return([]*retentionDomain.RetentionRecord{failing, healthy}, nil)
		repo.On("MarkExecuted", ctx, failing.ID).Return(true, nil)
		repo.On("MarkExecuted", ctx, healthy.ID).Return(true, nil)
		deleter.On("Delete", ctx, failing.DataType, failing.Identifier).
			Return(int64(0), apperrors.New("store unreachable"))
		deleter.On("Delete", ctx, healthy.DataType, healthy.Identifier).Return(int64(2), nil)
		audit.On("Log", ctx, auditDomain.EventRetentionExecuted, healthy.Identifier, mock.Anything).
			Return(&auditDomain.Event{}, nil)

		uc := newTestUseCase(repo, deleter, audit)
		result, err := uc.ExecuteDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Executed)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, int64(2), result.ItemsDeleted)
	})
}

func TestRetentionUseCase_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("CancelsScheduled", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		recordID := uuid.Must(uuid.NewV7())
		repo.On("Cancel", ctx, recordID).Return(true, nil)

		uc := newTestUseCase(repo, new(mockDataDeleter), new(auditMocks.MockAuditUseCase))
		assert.NoError(t, uc.Cancel(ctx, recordID))
	})

	t.Run("AlreadyTerminal", func(t *testing.T) {
		repo := new(mockRetentionRepository)
		recordID := uuid.Must(uuid.NewV7())
		repo.On("Cancel", ctx, recordID).Return(false, nil)

		uc := newTestUseCase(repo, new(mockDataDeleter), new(auditMocks.MockAuditUseCase))
		err := uc.Cancel(ctx, recordID)
		assert.ErrorIs(t, err, retentionDomain.ErrRetentionNotFound)
	})
}

func TestRetentionUseCase_StartSweeper(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := new(mockRetentionRepository)
	repo.On("ListDue", mock.Anything, mock.Anything, uint(100)).
		Return([]*retentionDomain.RetentionRecord{}, nil)

	uc := NewRetentionUseCase(
		Config{SweepInterval: 10 * time.Millisecond},
		&dbMocks.MockTxManager{},
		repo,
		new(mockDataDeleter),
		new(auditMocks.MockAuditUseCase),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- uc.StartSweeper(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}

	repo.AssertCalled(t, "ListDue", mock.Anything, mock.Anything, uint(100))
}
