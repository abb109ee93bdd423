// Package usecase implements the retention scheduling business logic:
// computing deletion deadlines from the fixed retention table, executing
// due deletions idempotently, and running the timer-driven sweep loop.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
)

// RetentionRepository defines the interface for retention record persistence operations.
type RetentionRepository interface {
	Create(ctx context.Context, record *retentionDomain.RetentionRecord) error
	ListDue(ctx context.Context, now time.Time, limit uint) ([]*retentionDomain.RetentionRecord, error)
	ListByIdentifier(ctx context.Context, identifier string) ([]*retentionDomain.RetentionRecord, error)
	MarkExecuted(ctx context.Context, recordID uuid.UUID) (bool, error)
	Cancel(ctx context.Context, recordID uuid.UUID) (bool, error)
}

// DataDeleter performs the actual removal of an identified data item.
// Implementations route by data type to the owning store.
type DataDeleter interface {
	Delete(ctx context.Context, dataType retentionDomain.DataType, identifier string) (int64, error)
}

// AuditLogger defines the audit trail operations the scheduler needs.
type AuditLogger interface {
	Log(ctx context.Context, eventType auditDomain.EventType, sessionID string, metadata map[string]any) (*auditDomain.Event, error)
}

// SweepResult summarizes one ExecuteDue pass.
type SweepResult struct {
	Executed     int   `json:"executed"`
	Skipped      int   `json:"skipped"`
	ItemsDeleted int64 `json:"items_deleted"`
}

// RetentionUseCase defines the interface for retention scheduling business logic.
type RetentionUseCase interface {
	// Schedule creates a SCHEDULED retention record with the deletion
	// deadline from the fixed per-type table. Persistence failure yields a
	// retryable ErrRetentionScheduling.
	Schedule(ctx context.Context, dataType retentionDomain.DataType, identifier string) (*retentionDomain.RetentionRecord, error)

	// ScheduleAt creates a SCHEDULED retention record with an explicit
	// deletion deadline. Used by erasure rights requests, whose grace
	// window is shorter than the retention table.
	ScheduleAt(ctx context.Context, dataType retentionDomain.DataType, identifier string, deleteAt time.Time) (*retentionDomain.RetentionRecord, error)

	// ExecuteDue deletes the data of every due SCHEDULED record and
	// transitions it to EXECUTED. Safe to call repeatedly and concurrently:
	// the status transition is a compare-and-swap, so each record's
	// deletion runs at most once.
	ExecuteDue(ctx context.Context, now time.Time) (*SweepResult, error)

	// Cancel places a legal hold on a scheduled deletion.
	Cancel(ctx context.Context, recordID uuid.UUID) error

	// StatusFor returns the retention records covering an identifier.
	StatusFor(ctx context.Context, identifier string) ([]*retentionDomain.RetentionRecord, error)

	// StartSweeper runs ExecuteDue on a fixed interval until the context is
	// cancelled. Returns the context's error on shutdown.
	StartSweeper(ctx context.Context) error
}
