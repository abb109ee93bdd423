// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// SubmitRightsRequest contains the parameters for submitting a data-subject
// rights request. RequestData carries right-specific fields: item_id and
// content for rectification, purpose for objection.
type SubmitRightsRequest struct {
	SessionID   string         `json:"session_id"`
	RightType   string         `json:"right_type"`
	RequestData map[string]any `json:"request_data,omitempty"`
}

// Validate checks if the rights request submission is valid.
func (r *SubmitRightsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.RightType, validation.Required, customValidation.NotBlank),
	)
}
