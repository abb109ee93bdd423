// Package service provides the store-routing deleter used by retention
// execution: each data type maps to the repository that owns it.
package service

import (
	"context"
	"fmt"

	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	userdataDomain "github.com/saraivavision/privacy/internal/userdata/domain"
)

// UserDataPurger removes or re-keys stored user data for a session and
// category.
type UserDataPurger interface {
	DeleteBySession(ctx context.Context, sessionID string, category userdataDomain.Category) (int64, error)

	// AnonymizeBySession re-keys a session's items in a category to a
	// pseudonymous session id, severing the link to the subject.
	AnonymizeBySession(ctx context.Context, sessionID, pseudonym string, category userdataDomain.Category) (int64, error)
}

// SessionPurger removes every record a store holds for a session.
type SessionPurger interface {
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}

// SessionAnonymizer pseudonymizes session identifiers.
type SessionAnonymizer interface {
	HashSession(sessionID string) string
}

// StoreDeleter routes retention deletions to the owning store. The
// identifier on a retention record is the session id for every data type.
type StoreDeleter struct {
	userData   UserDataPurger
	consent    SessionPurger
	audit      SessionPurger
	anonymizer SessionAnonymizer
}

// Delete removes the identified data item from its owning store and
// returns how many rows were removed. Conversation data is anonymized
// first: the rows are re-keyed to a salted session pseudonym before the
// delete, so no row carrying the original identifier survives even if the
// delete is interrupted.
func (d *StoreDeleter) Delete(
	ctx context.Context,
	dataType retentionDomain.DataType,
	identifier string,
) (int64, error) {
	switch dataType {
	case retentionDomain.DataConversation:
		pseudonym := d.anonymizer.HashSession(identifier)
		if _, err := d.userData.AnonymizeBySession(ctx, identifier, pseudonym, userdataDomain.CategoryConversation); err != nil {
			return 0, err
		}
		return d.userData.DeleteBySession(ctx, pseudonym, userdataDomain.CategoryConversation)
	case retentionDomain.DataPersonal:
		return d.userData.DeleteBySession(ctx, identifier, userdataDomain.CategoryPersonal)
	case retentionDomain.DataMedical:
		return d.userData.DeleteBySession(ctx, identifier, userdataDomain.CategoryMedical)
	case retentionDomain.DataConsentRecords:
		return d.consent.DeleteBySession(ctx, identifier)
	case retentionDomain.DataAuditLogs:
		return d.audit.DeleteBySession(ctx, identifier)
	default:
		return 0, fmt.Errorf("%w: %q", retentionDomain.ErrInvalidDataType, dataType)
	}
}

// NewStoreDeleter creates a deleter routing each data type to its store.
func NewStoreDeleter(userData UserDataPurger, consent, audit SessionPurger, anonymizer SessionAnonymizer) *StoreDeleter {
	return &StoreDeleter{userData: userData, consent: consent, audit: audit, anonymizer: anonymizer}
}
