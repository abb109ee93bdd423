// Package repository implements consent record persistence. Repositories
// support both PostgreSQL and MySQL; records are never deleted and
// withdrawal is the only mutation.
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

// PostgreSQLConsentRepository implements ConsentRecord persistence for PostgreSQL databases.
type PostgreSQLConsentRepository struct {
	db *sql.DB
}

// Create inserts a new consent record.
func (p *PostgreSQLConsentRepository) Create(
	ctx context.Context,
	record *consentDomain.ConsentRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO consent_records (id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
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
// session and consent type. Expired records are still returned so the
// caller can distinguish expiry from absence.
func (p *PostgreSQLConsentRepository) GetActive(
	ctx context.Context,
	sessionID string,
	consentType consentDomain.ConsentType,
) (*consentDomain.ConsentRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at
			  FROM consent_records
			  WHERE session_id = $1 AND consent_type = $2 AND revoked_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT 1`

	var record consentDomain.ConsentRecord
	err := querier.QueryRowContext(ctx, query, sessionID, consentType).Scan(
		&record.ID,
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

	return &record, nil
}

// Revoke sets RevokedAt on a non-revoked record. Returns ErrNotFound if the
// record does not exist or is already revoked, keeping revocation
// single-shot under concurrent withdrawal.
func (p *PostgreSQLConsentRepository) Revoke(
	ctx context.Context,
	recordID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE consent_records
			  SET revoked_at = $1
			  WHERE id = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, revokedAt, recordID)
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
// Used by rights requests to export the full consent history.
func (p *PostgreSQLConsentRepository) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]*consentDomain.ConsentRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, session_id, consent_type, purpose, granted, legal_basis,
			  consent_text, ip_address_hash, user_agent, created_at, expires_at, revoked_at
			  FROM consent_records
			  WHERE session_id = $1
			  ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list consent records")
	}
	defer func() { _ = rows.Close() }()

	var records []*consentDomain.ConsentRecord
	for rows.Next() {
		var record consentDomain.ConsentRecord
		err := rows.Scan(
			&record.ID,
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
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate consent records")
	}

	return records, nil
}

// DeleteBySession removes every consent record for a session and returns
// how many were removed. Only retention-driven erasure calls this, after
// the seven-year consent retention window elapses; withdrawal never does.
func (p *PostgreSQLConsentRepository) DeleteBySession(
	ctx context.Context,
	sessionID string,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM consent_records WHERE session_id = $1`

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

// NewPostgreSQLConsentRepository creates a new PostgreSQL consent repository instance.
func NewPostgreSQLConsentRepository(db *sql.DB) *PostgreSQLConsentRepository {
	return &PostgreSQLConsentRepository{db: db}
}
