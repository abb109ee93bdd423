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

// MySQLRetentionRepository implements RetentionRecord persistence for MySQL databases.
type MySQLRetentionRepository struct {
	db *sql.DB
}

// Create inserts a new retention record.
func (m *MySQLRetentionRepository) Create(
	ctx context.Context,
	record *retentionDomain.RetentionRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal retention record id")
	}

	query := `INSERT INTO retention_records (id, data_type, identifier, created_at, scheduled_deletion, status)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLRetentionRepository) ListDue(
	ctx context.Context,
	now time.Time,
	limit uint,
) ([]*retentionDomain.RetentionRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, data_type, identifier, created_at, scheduled_deletion, status
			  FROM retention_records
			  WHERE status = ? AND scheduled_deletion <= ?
			  ORDER BY scheduled_deletion ASC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, retentionDomain.StatusScheduled, now, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list due retention records")
	}
	defer func() { _ = rows.Close() }()

	return m.scanRecords(rows)
}

// ListByIdentifier retrieves every retention record for an identifier.
func (m *MySQLRetentionRepository) ListByIdentifier(
	ctx context.Context,
	identifier string,
) ([]*retentionDomain.RetentionRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, data_type, identifier, created_at, scheduled_deletion, status
			  FROM retention_records
			  WHERE identifier = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, identifier)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list retention records")
	}
	defer func() { _ = rows.Close() }()

	return m.scanRecords(rows)
}

func (m *MySQLRetentionRepository) scanRecords(rows *sql.Rows) ([]*retentionDomain.RetentionRecord, error) {
	var records []*retentionDomain.RetentionRecord
	for rows.Next() {
		var record retentionDomain.RetentionRecord
		var id []byte

		err := rows.Scan(
			&id,
			&record.DataType,
			&record.Identifier,
			&record.CreatedAt,
			&record.ScheduledDeletion,
			&record.Status,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan retention record")
		}

		if err := record.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal retention record id")
		}

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate retention records")
	}

	return records, nil
}

// MarkExecuted transitions a record from SCHEDULED to EXECUTED.
func (m *MySQLRetentionRepository) MarkExecuted(
	ctx context.Context,
	recordID uuid.UUID,
) (bool, error) {
	return m.transition(ctx, recordID, retentionDomain.StatusExecuted)
}

// Cancel transitions a record from SCHEDULED to CANCELLED (legal hold).
func (m *MySQLRetentionRepository) Cancel(
	ctx context.Context,
	recordID uuid.UUID,
) (bool, error) {
	return m.transition(ctx, recordID, retentionDomain.StatusCancelled)
}

func (m *MySQLRetentionRepository) transition(
	ctx context.Context,
	recordID uuid.UUID,
	to retentionDomain.Status,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := recordID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal retention record id")
	}

	query := `UPDATE retention_records
			  SET status = ?
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, to, id, retentionDomain.StatusScheduled)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to transition retention record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check transitioned retention record")
	}
	return affected > 0, nil
}

// NewMySQLRetentionRepository creates a new MySQL retention repository instance.
func NewMySQLRetentionRepository(db *sql.DB) *MySQLRetentionRepository {
	return &MySQLRetentionRepository{db: db}
}
