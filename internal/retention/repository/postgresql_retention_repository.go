// Package repository implements retention record persistence. The
// EXECUTED/CANCELLED transitions are compare-and-swap updates so deletion
// stays at-most-once under concurrent sweeps.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
)

// PostgreSQLRetentionRepository implements RetentionRecord persistence for PostgreSQL databases.
type PostgreSQLRetentionRepository struct {
	db *sql.DB
}

// Create inserts a new retention record.
func (p *PostgreSQLRetentionRepository) Create(
	ctx context.Context,
	record *retentionDomain.RetentionRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO retention_records (id, data_type, identifier, created_at, scheduled_deletion, status)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.DataType,
		record.Identifier,
		record.CreatedAt,
		record.ScheduledDeletion,
		record.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create retention record")
	}
	return nil
}

// ListDue retrieves SCHEDULED records whose deletion deadline has passed,
// oldest first.
func (p *PostgreSQLRetentionRepository) ListDue(
	ctx context.Context,
	now time.Time,
	limit uint,
) ([]*retentionDomain.RetentionRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, data_type, identifier, created_at, scheduled_deletion, status
			  FROM retention_records
			  WHERE status = $1 AND scheduled_deletion <= $2
			  ORDER BY scheduled_deletion ASC
			  LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, retentionDomain.StatusScheduled, now, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list due retention records")
	}
	defer func() { _ = rows.Close() }()

	var records []*retentionDomain.RetentionRecord
	for rows.Next() {
		var record retentionDomain.RetentionRecord
		err := rows.Scan(
			&record.ID,
			&record.DataType,
			&record.Identifier,
			&record.CreatedAt,
			&record.ScheduledDeletion,
			&record.Status,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan retention record")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate retention records")
	}

	return records, nil
}

// ListByIdentifier retrieves every retention record for an identifier.
func (p *PostgreSQLRetentionRepository) ListByIdentifier(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, data_type, identifier, created_at, scheduled_deletion, status
			  FROM retention_records
			  WHERE identifier = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, identifier)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list retention records")
	}
	defer func() { _ = rows.Close() }()

	var records []*retentionDomain.RetentionRecord
	for rows.Next() {
		var record retentionDomain.RetentionRecord
		err := rows.Scan(
			&record.ID,
			&record.DataType,
			&record.Identifier,
			&record.CreatedAt,
			&record.ScheduledDeletion,
			&record.Status,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan retention record")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate retention records")
	}

	return records, nil
}

// MarkExecuted transitions a record from SCHEDULED to EXECUTED. The
// WHERE clause on status makes the claim a compare-and-swap: exactly one
// concurrent caller sees claimed=true per record.
func (p *PostgreSQLRetentionRepository) MarkExecuted(
	ctx context.Context,
	recordID uuid.UUID,
) (bool, error) {
	return p.transition(ctx, recordID, retentionDomain.StatusExecuted)
}

// Cancel transitions a record from SCHEDULED to CANCELLED (legal hold).
func (p *PostgreSQLRetentionRepository) Cancel(
	ctx context.Context,
	recordID uuid.UUID,
) (bool, error) {
	return p.transition(ctx, recordID, retentionDomain.StatusCancelled)
}

func (p *PostgreSQLRetentionRepository) transition(
	ctx context.Context,
	recordID uuid.UUID,
	to retentionDomain.Status,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE retention_records
			  SET status = $1
			  WHERE id = $2 AND status = $3`

	result, err := querier.ExecContext(ctx, query, to, recordID, retentionDomain.StatusScheduled)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to transition retention record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check transitioned retention record")
	}
	return affected > 0, nil
}

// NewPostgreSQLRetentionRepository creates a new PostgreSQL retention repository instance.
func NewPostgreSQLRetentionRepository(db *sql.DB) *PostgreSQLRetentionRepository {
	return &PostgreSQLRetentionRepository{db: db}
}
