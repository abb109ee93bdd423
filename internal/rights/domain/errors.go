package domain

import (
	"github.com/saraivavision/privacy/internal/errors"
)

// Rights error definitions.
var (
	// ErrUnsupportedRightType indicates an unknown right type. Requests
	// with unknown types are rejected, never silently ignored.
	ErrUnsupportedRightType = errors.Wrap(errors.ErrInvalidInput, "unsupported right type")

	// ErrRightsProcessing indicates a rights request failed against a
	// collaborator and may be retried as a new request.
	ErrRightsProcessing = errors.Wrap(errors.ErrUnavailable, "failed to process rights request")

	// ErrRequestNotFound indicates the rights request does not exist.
	ErrRequestNotFound = errors.Wrap(errors.ErrNotFound, "rights request not found")

	// ErrInvalidRequestData indicates the request payload is missing the
	// fields its right type requires.
	ErrInvalidRequestData = errors.Wrap(errors.ErrInvalidInput, "invalid rights request data")

	// ErrInvalidTransition indicates an illegal request state change.
	ErrInvalidTransition = errors.Wrap(errors.ErrConflict, "invalid rights request state transition")
)
