// Package repository implements user data persistence. Repositories
// support both PostgreSQL and MySQL.
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

// PostgreSQLUserDataRepository implements user data persistence for PostgreSQL databases.
type PostgreSQLUserDataRepository struct {
	db *sql.DB
}

// Store inserts a new user data item.
func (p *PostgreSQLUserDataRepository) Store(
	ctx context.Context,
	item *userdataDomain.Item,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_data (id, session_id, category, content, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
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
func (p *PostgreSQLUserDataRepository) Update(
	ctx context.Context,
	itemID uuid.UUID,
	content []byte,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE user_data SET content = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, content, updatedAt, itemID)
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
// one category. Used for access and portability exports.
func (p *PostgreSQLUserDataRepository) ListBySession(
	ctx context.Context,
	sessionID string,
	category userdataDomain.Category,
) ([]*userdataDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, session_id, category, content, created_at, updated_at
			  FROM user_data
			  WHERE session_id = $1 AND ($2 = '' OR category = $2)
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, sessionID, category)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user data")
	}
	defer func() { _ = rows.Close() }()

	var items []*userdataDomain.Item
	for rows.Next() {
		var item userdataDomain.Item
		err := rows.Scan(
			&item.ID,
			&item.SessionID,
			&item.Category,
			&item.Content,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user data")
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
func (p *PostgreSQLUserDataRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
	category userdataDomain.Category,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM user_data WHERE session_id = $1 AND ($2 = '' OR category = $2)`

	result, err := querier.ExecContext(ctx, query, sessionID, category)
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
func (p *PostgreSQLUserDataRepository) AnonymizeBySession(
	ctx context.Context,
	sessionID, pseudonym string,
	category userdataDomain.Category,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE user_data SET session_id = $1, updated_at = $2 WHERE session_id = $3 AND category = $4`

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

// NewPostgreSQLUserDataRepository creates a new PostgreSQL user data repository instance.
func NewPostgreSQLUserDataRepository(db *sql.DB) *PostgreSQLUserDataRepository {
	return &PostgreSQLUserDataRepository{db: db}
}
