package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
)

// Config holds retention use case configuration.
type Config struct {
	SweepInterval time.Duration
	BatchSize     uint
}

// retentionUseCase implements the RetentionUseCase interface.
type retentionUseCase struct {
	config        Config
	txManager     database.TxManager
	retentionRepo RetentionRepository
	deleter       DataDeleter
	audit         AuditLogger
}

// Schedule creates a SCHEDULED retention record for the data item.
func (r *retentionUseCase) Schedule(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
) (*retentionDomain.RetentionRecord, error) {
	if !dataType.Valid() {
		return nil, retentionDomain.ErrInvalidDataType
	}

	now := time.Now().UTC()
	deadline, _ := retentionDomain.ScheduledDeletionFor(dataType, now)

	return r.schedule(ctx, dataType, identifier, now, deadline)
}

// ScheduleAt creates a SCHEDULED retention record with an explicit deadline.
func (r *retentionUseCase) ScheduleAt(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
	deleteAt time.Time,
) (*retentionDomain.RetentionRecord, error) {
	if !dataType.Valid() {
		return nil, retentionDomain.ErrInvalidDataType
	}
	return r.schedule(ctx, dataType, identifier, time.Now().UTC(), deleteAt)
}

func (r *retentionUseCase) schedule(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
	now, deadline time.Time,
) (*retentionDomain.RetentionRecord, error) {
	record := &retentionDomain.RetentionRecord{
		ID:                uuid.Must(uuid.NewV7()),
		DataType:          dataType,
		Identifier:        identifier,
		CreatedAt:         now,
		ScheduledDeletion: deadline,
		Status:            retentionDomain.StatusScheduled,
	}

	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.retentionRepo.Create(txCtx, record); err != nil {
			return err
		}

		_, err := r.audit.Log(txCtx, auditDomain.EventRetentionScheduled, identifier, map[string]any{
			"retention_id":       record.ID,
			"data_type":          record.DataType,
			"scheduled_deletion": record.ScheduledDeletion,
		})
		return err
	})
	if err != nil {
		return nil, apperrors.MarkRetryable(
			apperrors.Wrap(retentionDomain.ErrRetentionScheduling, err.Error()),
		)
	}

	return record, nil
}

// ExecuteDue deletes the data of every due SCHEDULED record.
func (r *retentionUseCase) ExecuteDue(ctx context.Context, now time.Time) (*SweepResult, error) {
	due, err := r.retentionRepo.ListDue(ctx, now, r.config.BatchSize)
	if err != nil {
		return nil, apperrors.Wrap(retentionDomain.ErrRetentionExecution, err.Error())
	}

	result := &SweepResult{}
	for _, record := range due {
		deleted, err := r.executeOne(ctx, record)
		if err != nil {
			// Leave the record SCHEDULED for the next sweep; one bad record
			// must not stall the rest of the batch.
			slog.Error("retention deletion failed",
				"retention_id", record.ID,
				"data_type", record.DataType,
				"error", err,
			)
			result.Skipped++
			continue
		}
		if deleted < 0 {
			// Another sweep claimed the record first.
			result.Skipped++
			continue
		}
		result.Executed++
		result.ItemsDeleted += deleted
	}

	if result.Executed > 0 {
		slog.Info("retention sweep completed",
			"executed", result.Executed,
			"skipped", result.Skipped,
			"items_deleted", result.ItemsDeleted,
		)
	}
	return result, nil
}

// executeOne claims and executes a single record inside a transaction.
// Returns -1 when the claim was lost to a concurrent sweep.
func (r *retentionUseCase) executeOne(
	ctx context.Context,
	record *retentionDomain.RetentionRecord,
) (int64, error) {
	var deleted int64 = -1

	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		claimed, err := r.retentionRepo.MarkExecuted(txCtx, record.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}

		// Deletion and the status flip commit together: a failed deletion
		// rolls the claim back and the record stays SCHEDULED.
		deleted, err = r.deleter.Delete(txCtx, record.DataType, record.Identifier)
		if err != nil {
			return err
		}

		_, err = r.audit.Log(txCtx, auditDomain.EventRetentionExecuted, record.Identifier, map[string]any{
			"retention_id":  record.ID,
			"data_type":     record.DataType,
			"items_deleted": deleted,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Cancel places a legal hold on a scheduled deletion.
func (r *retentionUseCase) Cancel(ctx context.Context, recordID uuid.UUID) error {
	cancelled, err := r.retentionRepo.Cancel(ctx, recordID)
	if err != nil {
		return apperrors.Wrap(retentionDomain.ErrRetentionExecution, err.Error())
	}
	if !cancelled {
		return retentionDomain.ErrRetentionNotFound
	}
	return nil
}

// StatusFor returns the retention records covering an identifier.
func (r *retentionUseCase) StatusFor(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	return r.retentionRepo.ListByIdentifier(ctx, identifier)
}

// StartSweeper runs ExecuteDue on a fixed interval until ctx is cancelled.
func (r *retentionUseCase) StartSweeper(ctx context.Context) error {
	slog.Info("starting retention sweeper",
		slog.Duration("interval", r.config.SweepInterval),
		slog.Uint64("batch_size", uint64(r.config.BatchSize)),
	)

	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping retention sweeper")
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.ExecuteDue(ctx, time.Now().UTC()); err != nil {
				slog.Error("retention sweep failed", slog.Any("error", err))
			}
		}
	}
}

// NewRetentionUseCase creates a new retention use case instance with the
// provided dependencies.
func NewRetentionUseCase(
	config Config,
	txManager database.TxManager,
	retentionRepo RetentionRepository,
	deleter DataDeleter,
	audit AuditLogger,
) RetentionUseCase {
	if config.SweepInterval <= 0 {
		config.SweepInterval = time.Hour
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	return &retentionUseCase{
		config:        config,
		txManager:     txManager,
		retentionRepo: retentionRepo,
		deleter:       deleter,
		audit:         audit,
	}
}
