package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

// MySQLConsentRepository implements ConsentRecord persistence for MySQL databases.
type MySQLConsentRepository struct {
	db *sql.DB
}

// Create inserts a new consent record.
func (m *MySQLConsentRepository) Create(
	ctx context.Context,
	record *consentDomain.ConsentRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal consent record id")
	}

	query := `INSERT INTO consent_records (id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.SessionID,
		record.ConsentType,
		record.Purpose,
		record.Granted,
		record.LegalBasis,
		record.ConsentText,
		record.IPAddressHash,
		record.UserAgent,
		record.CreatedAt,
		record.ExpiresAt,
		record.RevokedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create consent record")
	}
	return nil
}

// GetActive retrieves the most recent non-revoked consent record for the
// session and consent type.
func (m *MySQLConsentRepository) GetActive(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
) (*consentDomain.ConsentRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at
			  FROM consent_records
			  WHERE session_id = ? AND consent_type = ? AND revoked_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT 1`

	var record consentDomain.ConsentRecord
	var id []byte

	err := querier.QueryRowContext(ctx, query, sessionID, consentType).Scan(
		&id,
		&record.SessionID,
		&record.ConsentType,
		&record.Purpose,
		&record.Granted,
		&record.LegalBasis,
		&record.ConsentText,
		&record.IPAddressHash,
		&record.UserAgent,
		&record.CreatedAt,
		&record.ExpiresAt,
		&record.RevokedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get active consent record")
	}

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal consent record id")
	}

	return &record, nil
}

// Revoke sets RevokedAt on a non-revoked record. Returns ErrNotFound if the
// record does not exist or is already revoked.
func (m *MySQLConsentRepository) Revoke(
	ctx context.Context,
	recordID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := recordID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal consent record id")
	}

	query := `UPDATE consent_records
			  SET revoked_at = ?
			  WHERE id = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke consent record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revoked consent record")
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListBySession retrieves every consent record for a session, newest first.
func (m *MySQLConsentRepository) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*consentDomain.ConsentRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at
			  FROM consent_records
			  WHERE session_id = ?
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list consent records")
	}
	defer func() { _ = rows.Close() }()

	var records []*consentDomain.ConsentRecord
	for rows.Next() {
		var record consentDomain.ConsentRecord
		var id []byte

		err := rows.Scan(
			&id,
			&record.SessionID,
			&record.ConsentType,
			&record.Purpose,
			&record.Granted,
			&record.LegalBasis,
			&record.ConsentText,
			&record.IPAddressHash,
			&record.UserAgent,
			&record.CreatedAt,
			&record.ExpiresAt,
			&record.RevokedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan consent record")
		}

		if err := record.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal consent record id")
		}

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate consent records")
	}

	return records, nil
}

// DeleteBySession removes every consent record for a session and returns
// how many were removed. Only retention-driven erasure calls this.
func (m *MySQLConsentRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM consent_records WHERE session_id = ?`

	result, err := querier.ExecContext(ctx, query, sessionID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete session consent records")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted consent records")
	}
	return deleted, nil
}

// NewMySQLConsentRepository creates a new MySQL consent repository instance.
func NewMySQLConsentRepository(db *sql.DB) *MySQLConsentRepository {
	return &MySQLConsentRepository{db: db}
}
