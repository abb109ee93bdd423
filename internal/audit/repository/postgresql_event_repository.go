// Package repository implements persistence for the append-only audit log.
// Repositories support both PostgreSQL and MySQL; events are inserted once
// and never updated.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// PostgreSQLEventRepository implements audit Event persistence for PostgreSQL databases.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// Create appends a new audit event.
func (p *PostgreSQLEventRepository) Create(ctx context.Context, event *auditDomain.Event) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event metadata")
	}

	query := `INSERT INTO audit_events (id, event_type, session_id, metadata, signature, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.Type,
		event.SessionID,
		metadata,
		event.Signature,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}
	return nil
}

// List retrieves audit events matching the filter, newest first.
func (p *PostgreSQLEventRepository) List(
	ctx context.Context,
	filter auditDomain.EventFilter,
) ([]*auditDomain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	var sb strings.Builder
	sb.WriteString(`SELECT id, event_type, session_id, metadata, signature, created_at
			  FROM audit_events`)

	var conditions []string
	var args []any
	if filter.SessionID != "" {
		args = append(args, filter.SessionID)
		conditions = append(conditions, "session_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, "event_type = $"+strconv.Itoa(len(args)))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	args = append(args, filter.Limit)
	sb.WriteString(" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := querier.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() { _ = rows.Close() }()

	var events []*auditDomain.Event
	for rows.Next() {
		var event auditDomain.Event
		var metadata []byte

		err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.SessionID,
			&metadata,
			&event.Signature,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal event metadata")
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// DeleteOlderThan removes events created before the cutoff and returns how
// many were removed. Only the retention scheduler calls this, after the
// audit log retention window has elapsed.
func (p *PostgreSQLEventRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_events WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired audit events")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted audit events")
	}
	return deleted, nil
}

// DeleteBySession removes every event for a session and returns how many
// were removed. Used by retention-driven erasure of a session's audit
// trail once its window elapses.
func (p *PostgreSQLEventRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_events WHERE session_id = $1`

	result, err := querier.ExecContext(ctx, query, sessionID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete session audit events")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted audit events")
	}
	return deleted, nil
}

// NewPostgreSQLEventRepository creates a new PostgreSQL audit event repository instance.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}
