package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	userdataDomain "github.com/saraivavision/privacy/internal/userdata/domain"
)

// MySQLUserDataRepository implements user data persistence for MySQL databases.
type MySQLUserDataRepository struct {
	db *sql.DB
}

// Store inserts a new user data item.
func (m *MySQLUserDataRepository) Store(
	ctx context.Context,
	item *userdataDomain.Item,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user data id")
	}

	query := `INSERT INTO user_data (id, session_id, category, content, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		item.SessionID,
		item.Category,
		item.Content,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to store user data")
	}
	return nil
}

// Update replaces the content of an existing item.
func (m *MySQLUserDataRepository) Update(
	ctx context.Context,
	itemID uuid.UUID,
	content []byte,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := itemID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user data id")
	}

	query := `UPDATE user_data SET content = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, content, updatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user data")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated user data")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListBySession retrieves every item for a session, optionally narrowed to
// one category.
func (m *MySQLUserDataRepository) ListBySession(
	ctx context.Context,
	sessionID string,
	category userdataDomain.Category,
) ([]*userdataDomain.Item, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, session_id, category, content, created_at, updated_at
			  FROM user_data
			  WHERE session_id = ? AND (? = '' OR category = ?)
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, sessionID, category, category)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user data")
	}
	defer func() { _ = rows.Close() }()

	var items []*userdataDomain.Item
	for rows.Next() {
		var item userdataDomain.Item
		var id []byte

		err := rows.Scan(
			&id,
			&item.SessionID,
			&item.Category,
			&item.Content,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user data")
		}

		if err := item.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user data id")
		}

		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user data")
	}

	return items, nil
}

// DeleteBySession removes items for a session, optionally narrowed to one
// category, and returns how many were removed.
func (m *MySQLUserDataRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
	category userdataDomain.Category,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM user_data WHERE session_id = ? AND (? = '' OR category = ?)`

	result, err := querier.ExecContext(ctx, query, sessionID, category, category)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete user data")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted user data")
	}
	return deleted, nil
}

// AnonymizeBySession re-keys a session's items in a category to a
// pseudonymous session id and returns how many rows were re-keyed.
func (m *MySQLUserDataRepository) AnonymizeBySession(
	ctx context.Context,
	sessionID, pseudonym string,
	category userdataDomain.Category,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE user_data SET session_id = ?, updated_at = ? WHERE session_id = ? AND category = ?`

	result, err := querier.ExecContext(ctx, query, pseudonym, time.Now().UTC(), sessionID, category)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to anonymize user data")
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count anonymized user data")
	}
	return updated, nil
}

// NewMySQLUserDataRepository creates a new MySQL user data repository instance.
func NewMySQLUserDataRepository(db *sql.DB) *MySQLUserDataRepository {
	return &MySQLUserDataRepository{db: db}
}
