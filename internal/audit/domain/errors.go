package domain

import (
	"github.com/saraivavision/privacy/internal/errors"
)

// Audit error definitions.
var (
	// ErrAuditAppend indicates the audit sink rejected an event. The sink is
	// append-only and a collaborator, so this failure is retryable.
	ErrAuditAppend = errors.Wrap(errors.ErrUnavailable, "failed to append audit event")

	// ErrSignatureInvalid indicates an event's signature does not match its
	// content, i.e. the log was tampered with after the fact.
	ErrSignatureInvalid = errors.Wrap(errors.ErrConflict, "audit event signature invalid")
)
