// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/saraivavision/privacy/internal/validation"
)

// ScheduleRetentionRequest contains the parameters for scheduling a
// retention-driven deletion. The deadline comes from the fixed per-type
// retention table, never from the caller.
type ScheduleRetentionRequest struct {
	DataType   string `json:"data_type"`
	Identifier string `json:"identifier"`
}

// Validate checks if the schedule retention request is valid.
func (r *ScheduleRetentionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DataType, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Identifier, validation.Required, customValidation.NotBlank),
	)
}
