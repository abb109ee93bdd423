// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
)

// ProcessOutputResponse represents a processed rights request in API responses.
type ProcessOutputResponse struct {
	RequestID           string    `json:"request_id"`
	RightType           string    `json:"right_type"`
	Status              string    `json:"status"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
	Actions             []string  `json:"actions,omitempty"`
	RetentionExceptions []string  `json:"retention_exceptions,omitempty"`
	Data                any       `json:"data,omitempty"`
}

// MapProcessOutput converts a domain process output to an API response.
func MapProcessOutput(output *rightsDomain.ProcessOutput) ProcessOutputResponse {
	actions := make([]string, 0, len(output.Actions))
	for _, action := range output.Actions {
		actions = append(actions, string(action))
	}

	return ProcessOutputResponse{
		RequestID:           output.RequestID.String(),
		RightType:           string(output.RightType),
		Status:              string(output.Status),
		EstimatedCompletion: output.EstimatedCompletion,
		Actions:             actions,
		RetentionExceptions: output.RetentionExceptions,
		Data:                output.Data,
	}
}

// RightsRequestResponse represents a tracked rights request in API responses.
type RightsRequestResponse struct {
	ID                  string     `json:"id"`
	SessionID           string     `json:"session_id"`
	RightType           string     `json:"right_type"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	EstimatedCompletion time.Time  `json:"estimated_completion"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// MapRightsRequest converts a domain rights request to an API response.
func MapRightsRequest(request *rightsDomain.RightsRequest) RightsRequestResponse {
	return RightsRequestResponse{
		ID:                  request.ID.String(),
		SessionID:           request.SessionID,
		RightType:           string(request.RightType),
		Status:              string(request.Status),
		CreatedAt:           request.CreatedAt,
		EstimatedCompletion: request.EstimatedCompletion,
		CompletedAt:         request.CompletedAt,
	}
}

// ListRightsRequestsResponse represents a session's rights requests in API responses.
type ListRightsRequestsResponse struct {
	Data []RightsRequestResponse `json:"data"`
}

// MapRightsRequests converts domain rights requests to a list response.
func MapRightsRequests(requests []*rightsDomain.RightsRequest) ListRightsRequestsResponse {
	data := make([]RightsRequestResponse, 0, len(requests))
	for _, request := range requests {
		data = append(data, MapRightsRequest(request))
	}

	return ListRightsRequestsResponse{Data: data}
}
