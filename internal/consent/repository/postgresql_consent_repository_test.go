package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	apperrors "github.com/saraivavision/privacy/internal/errors"
)

var consentColumns = []string{
	"id", "session_id", "consent_type", "purpose", "granted", "legal_basis",
	"consent_text", "ip_address_hash", "user_agent", "created_at", "expires_at", "revoked_at",
}

func newRecord() *consentDomain.ConsentRecord {
	now := time.Now().UTC()
	return &consentDomain.ConsentRecord{
		ID:            uuid.Must(uuid.NewV7()),
		SessionID:     "session-1",
		ConsentType:   consentDomain.ConsentMarketing,
		Purpose:       consentDomain.PurposeMarketing,
		Granted:       true,
		LegalBasis:    consentDomain.BasisConsent,
		ConsentText:   "I agree to receive marketing communications",
		IPAddressHash: "abcdef012345",
		UserAgent:     "Mozilla/X.X",
		CreatedAt:     now,
		ExpiresAt:     now.AddDate(0, 0, 730),
	}
}

func TestPostgreSQLConsentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLConsentRepository(db)
	record := newRecord()

	mock.ExpectExec(`INSERT INTO consent_records`).
		WithArgs(
			record.ID, record.SessionID, record.ConsentType, record.Purpose,
			record.Granted, record.LegalBasis, record.ConsentText,
			record.IPAddressHash, record.UserAgent, record.CreatedAt,
			record.ExpiresAt, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLConsentRepository_GetActive(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLConsentRepository(db)
	record := newRecord()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(consentColumns).AddRow(
			record.ID, record.SessionID, record.ConsentType, record.Purpose,
			record.Granted, record.LegalBasis, record.ConsentText,
			record.IPAddressHash, record.UserAgent, record.CreatedAt,
			record.ExpiresAt, nil,
		)

		mock.ExpectQuery(`SELECT .+ FROM consent_records WHERE session_id = \$1 AND consent_type = \$2 AND revoked_at IS NULL`).
			WithArgs(record.SessionID, record.ConsentType).
			WillReturnRows(rows)

		got, err := repo.GetActive(context.Background(), record.SessionID, record.ConsentType)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.True(t, got.Granted)
		assert.Nil(t, got.RevokedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM consent_records`).
			WithArgs("missing", record.ConsentType).
			WillReturnRows(sqlmock.NewRows(consentColumns))

		_, err := repo.GetActive(context.Background(), "missing", record.ConsentType)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLConsentRepository_Revoke(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLConsentRepository(db)
	recordID := uuid.Must(uuid.NewV7())
	revokedAt := time.Now().UTC()

	t.Run("Revokes", func(t *testing.T) {
		mock.ExpectExec(`UPDATE consent_records SET revoked_at = \$1 WHERE id = \$2 AND revoked_at IS NULL`).
			WithArgs(revokedAt, recordID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Revoke(context.Background(), recordID, revokedAt))
	})

	t.Run("AlreadyRevoked", func(t *testing.T) {
		mock.ExpectExec(`UPDATE consent_records`).
			WithArgs(revokedAt, recordID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Revoke(context.Background(), recordID, revokedAt)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLConsentRepository_ListBySession(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLConsentRepository(db)
	record := newRecord()
	revokedAt := record.CreatedAt.Add(time.Hour)

	rows := sqlmock.NewRows(consentColumns).
		AddRow(
			record.ID, record.SessionID, record.ConsentType, record.Purpose,
			record.Granted, record.LegalBasis, record.ConsentText,
			record.IPAddressHash, record.UserAgent, record.CreatedAt,
			record.ExpiresAt, revokedAt,
		)

	mock.ExpectQuery(`SELECT .+ FROM consent_records WHERE session_id = \$1 ORDER BY created_at DESC`).
		WithArgs(record.SessionID).
		WillReturnRows(rows)

	records, err := repo.ListBySession(context.Background(), record.SessionID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].RevokedAt)
	assert.Equal(t, revokedAt, *records[0].RevokedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
