// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	auditUseCase "github.com/saraivavision/privacy/internal/audit/usecase"
)

// EventResponse represents an audit event in API responses. Signatures are
// verified server-side and never exposed.
type EventResponse struct {
	ID        string         `json:"id"`
	EventType string         `json:"event_type"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ListEventsResponse represents a page of audit events in API responses.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEvents converts domain audit events to a list response.
func MapEvents(events []*auditDomain.Event) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, EventResponse{
			ID:        event.ID.String(),
			EventType: string(event.Type),
			SessionID: event.SessionID,
			Metadata:  event.Metadata,
			CreatedAt: event.CreatedAt,
		})
	}

	return ListEventsResponse{Data: data}
}

// VerificationReportResponse represents a trail verification outcome in API responses.
type VerificationReportResponse struct {
	Checked int      `json:"checked"`
	Valid   bool     `json:"valid"`
	Invalid []string `json:"invalid,omitempty"`
}

// MapVerificationReport converts a domain verification report to an API response.
func MapVerificationReport(report *auditUseCase.VerificationReport) VerificationReportResponse {
	invalid := make([]string, 0, len(report.Invalid))
	for _, id := range report.Invalid {
		invalid = append(invalid, id.String())
	}

	return VerificationReportResponse{
		Checked: report.Checked,
		Valid:   report.Valid(),
		Invalid: invalid,
	}
}
