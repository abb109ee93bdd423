// Package repository implements rights request persistence. Repositories
// support both PostgreSQL and MySQL; status changes are compare-and-swap
// updates so the one-directional state machine holds under concurrency.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
)

// PostgreSQLRightsRepository implements RightsRequest persistence for PostgreSQL databases.
type PostgreSQLRightsRepository struct {
	db *sql.DB
}

// Create inserts a new rights request.
func (p *PostgreSQLRightsRepository) Create(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) error {
	querier := database.GetTx(ctx, p.db)

	requestData, err := json.Marshal(request.RequestData)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rights request data")
	}

	query := `INSERT INTO rights_requests (id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		request.ID,
		request.SessionID,
		request.RightType,
		requestData,
		request.Status,
		request.CreatedAt,
		request.EstimatedCompletion,
		request.CompletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create rights request")
	}
	return nil
}

// Get retrieves a rights request by id.
func (p *PostgreSQLRightsRepository) Get(
	ctx context.Context,
	requestID uuid.UUID,
) (*rightsDomain.RightsRequest, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at
			  FROM rights_requests
			  WHERE id = $1`

	var request rightsDomain.RightsRequest
	var requestData []byte

	err := querier.QueryRowContext(ctx, query, requestID).Scan(
		&request.ID,
		&request.SessionID,
		&request.RightType,
		&requestData,
		&request.Status,
		&request.CreatedAt,
		&request.EstimatedCompletion,
		&request.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get rights request")
	}

	if err := json.Unmarshal(requestData, &request.RequestData); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal rights request data")
	}

	return &request, nil
}

// UpdateStatus transitions a request from one status to another. The WHERE
// clause on the current status makes the transition a compare-and-swap.
// CompletedAt is set when the target status is terminal.
func (p *PostgreSQLRightsRepository) UpdateStatus(
	ctx context.Context,
	requestID uuid.UUID,
	from, to rightsDomain.RequestStatus,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var completedAt *time.Time
	if to == rightsDomain.StatusCompleted || to == rightsDomain.StatusFailed {
		now := time.Now().UTC()
		completedAt = &now
	}

	query := `UPDATE rights_requests
			  SET status = $1, completed_at = $2
			  WHERE id = $3 AND status = $4`

	result, err := querier.ExecContext(ctx, query, to, completedAt, requestID, from)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to update rights request status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check updated rights request")
	}
	return affected > 0, nil
}

// ListBySession retrieves every rights request for a session, newest first.
func (p *PostgreSQLRightsRepository) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*rightsDomain.RightsRequest, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at
			  FROM rights_requests
			  WHERE session_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rights requests")
	}
	defer func() { _ = rows.Close() }()

	var requests []*rightsDomain.RightsRequest
	for rows.Next() {
		var request rightsDomain.RightsRequest
		var requestData []byte

		err := rows.Scan(
			&request.ID,
			&request.SessionID,
			&request.RightType,
			&requestData,
			&request.Status,
			&request.CreatedAt,
			&request.EstimatedCompletion,
			&request.CompletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan rights request")
		}

		if err := json.Unmarshal(requestData, &request.RequestData); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal rights request data")
		}

		requests = append(requests, &request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rights requests")
	}

	return requests, nil
}

// NewPostgreSQLRightsRepository creates a new PostgreSQL rights repository instance.
func NewPostgreSQLRightsRepository(db *sql.DB) *PostgreSQLRightsRepository {
	return &PostgreSQLRightsRepository{db: db}
}
