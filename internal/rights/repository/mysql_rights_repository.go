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

// MySQLRightsRepository implements RightsRequest persistence for MySQL databases.
type MySQLRightsRepository struct {
	db *sql.DB
}

// Create inserts a new rights request.
func (m *MySQLRightsRepository) Create(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := request.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rights request id")
	}

	requestData, err := json.Marshal(request.RequestData)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rights request data")
	}

	query := `INSERT INTO rights_requests (id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLRightsRepository) Get(
	ctx context.Context,
	requestID uuid.UUID,
) (*rightsDomain.RightsRequest, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := requestID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal rights request id")
	}

	query := `SELECT id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at
			  FROM rights_requests
			  WHERE id = ?`

	var request rightsDomain.RightsRequest
	var rowID, requestData []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rowID,
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

	if err := request.ID.UnmarshalBinary(rowID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal rights request id")
	}
	if err := json.Unmarshal(requestData, &request.RequestData); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal rights request data")
	}

	return &request, nil
}

// UpdateStatus transitions a request from one status to another via
// compare-and-swap. CompletedAt is set when the target status is terminal.
func (m *MySQLRightsRepository) UpdateStatus(
	ctx context.Context,
	requestID uuid.UUID,
	from, to rightsDomain.RequestStatus,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := requestID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal rights request id")
	}

	var completedAt *time.Time
	if to == rightsDomain.StatusCompleted || to == rightsDomain.StatusFailed {
		now := time.Now().UTC()
		completedAt = &now
	}

	query := `UPDATE rights_requests
			  SET status = ?, completed_at = ?
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, to, completedAt, id, from)
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
func (m *MySQLRightsRepository) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*rightsDomain.RightsRequest, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, session_id, right_type, request_data, status,
			  created_at, estimated_completion, completed_at
			  FROM rights_requests
			  WHERE session_id = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rights requests")
	}
	defer func() { _ = rows.Close() }()

	var requests []*rightsDomain.RightsRequest
	for rows.Next() {
		var request rightsDomain.RightsRequest
		var id, requestData []byte

		err := rows.Scan(
			&id,
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

		if err := request.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal rights request id")
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

// NewMySQLRightsRepository creates a new MySQL rights repository instance.
func NewMySQLRightsRepository(db *sql.DB) *MySQLRightsRepository {
	return &MySQLRightsRepository{db: db}
}
