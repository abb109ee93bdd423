package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// MySQLEventRepository implements audit Event persistence for MySQL databases.
type MySQLEventRepository struct {
	db *sql.DB
}

// Create appends a new audit event.
func (m *MySQLEventRepository) Create(ctx context.Context, event *auditDomain.Event) error {
	querier := database.GetTx(ctx, m.db)

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event id")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event metadata")
	}

	query := `INSERT INTO audit_events (id, event_type, session_id, metadata, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLEventRepository) List(
	ctx context.Context,
	filter auditDomain.EventFilter,
) ([]*auditDomain.Event, error) {
	querier := database.GetTx(ctx, m.db)

	var sb strings.Builder
	sb.WriteString(`SELECT id, event_type, session_id, metadata, signature, created_at
			  FROM audit_events`)

	var conditions []string
	var args []any
	if filter.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Type != "" {
		conditions = append(conditions, "event_type = ?")
		args = append(args, filter.Type)
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	sb.WriteString(" ORDER BY created_at DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := querier.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() { _ = rows.Close() }()

	var events []*auditDomain.Event
	for rows.Next() {
		var event auditDomain.Event
		var id, metadata []byte

		err := rows.Scan(
			&id,
			&event.Type,
			&event.SessionID,
			&metadata,
			&event.Signature,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		if err := event.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal event id")
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
// many were removed.
func (m *MySQLEventRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_events WHERE created_at < ?`

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
// were removed.
func (m *MySQLEventRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_events WHERE session_id = ?`

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

// NewMySQLEventRepository creates a new MySQL audit event repository instance.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}
