package domain

import (
	"github.com/saraivavision/privacy/internal/errors"
)

// Retention error definitions.
var (
	// ErrRetentionScheduling indicates persisting a retention schedule
	// failed. The data item must not be considered covered by retention
	// until scheduling succeeds.
	ErrRetentionScheduling = errors.Wrap(errors.ErrUnavailable, "failed to schedule data retention")

	// ErrRetentionExecution indicates a deletion sweep failed partway.
	ErrRetentionExecution = errors.Wrap(errors.ErrUnavailable, "failed to execute data retention")

	// ErrRetentionNotFound indicates the retention record does not exist or
	// is no longer in the SCHEDULED state.
	ErrRetentionNotFound = errors.Wrap(errors.ErrNotFound, "retention record not found")

	// ErrInvalidDataType indicates an unknown retention data type.
	ErrInvalidDataType = errors.Wrap(errors.ErrInvalidInput, "invalid retention data type")
)
