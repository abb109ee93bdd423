// Package domain defines the data-subject-rights request model: the closed
// right-type enum, the one-directional request state machine, and the
// export structures produced by access and portability requests.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RightType is the data-subject right being exercised.
type RightType string

const (
	RightAccess        RightType = "access"
	RightRectification RightType = "rectification"
	RightDeletion      RightType = "deletion"
	RightPortability   RightType = "portability"
	RightObjection     RightType = "objection"
)

// Valid reports whether the right type is a known value.
func (r RightType) Valid() bool {
	switch r {
	case RightAccess, RightRectification, RightDeletion,
		RightPortability, RightObjection:
		return true
	}
	return false
}

// RequestStatus is the rights request state. Transitions are
// one-directional: RECEIVED→PROCESSING→{COMPLETED|FAILED}. A failed
// request is never retried; the user files a new one.
type RequestStatus string

const (
	StatusReceived   RequestStatus = "RECEIVED"
	StatusProcessing RequestStatus = "PROCESSING"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusFailed     RequestStatus = "FAILED"
)

// CanTransition reports whether moving from s to next is a legal step in
// the state machine.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	switch s {
	case StatusReceived:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	}
	return false
}

// RightsAction is a downstream instruction produced by request processing.
type RightsAction string

const (
	ActionDeletionScheduled      RightsAction = "DATA_DELETION_SCHEDULED"
	ActionRectificationScheduled RightsAction = "DATA_RECTIFICATION_SCHEDULED"
	ActionProcessingStopped      RightsAction = "PROCESSING_STOPPED"
)

// Response deadlines per right type.
const (
	accessCompletionHours = 24
	rectificationDays     = 7
	deletionDays          = 30
)

// EstimatedCompletionFor returns the response deadline for a right type.
func EstimatedCompletionFor(rightType RightType, now time.Time) time.Time {
	switch rightType {
	case RightRectification:
		return now.AddDate(0, 0, rectificationDays)
	case RightDeletion:
		return now.AddDate(0, 0, deletionDays)
	default:
		return now.Add(accessCompletionHours * time.Hour)
	}
}

// RightsRequest is one tracked rights request.
type RightsRequest struct {
	ID                  uuid.UUID
	SessionID           string
	RightType           RightType
	RequestData         map[string]any
	Status              RequestStatus
	CreatedAt           time.Time
	EstimatedCompletion time.Time
	CompletedAt         *time.Time
}

// SubmitInput carries a new rights request from the caller.
type SubmitInput struct {
	SessionID   string
	RightType   RightType
	RequestData map[string]any
}

// ProcessOutput is the result of processing a rights request.
type ProcessOutput struct {
	RequestID           uuid.UUID      `json:"request_id"`
	RightType           RightType      `json:"right_type"`
	Status              RequestStatus  `json:"status"`
	EstimatedCompletion time.Time      `json:"estimated_completion"`
	Actions             []RightsAction `json:"actions,omitempty"`
	RetentionExceptions []string       `json:"retention_exceptions,omitempty"`
	Data                any            `json:"data,omitempty"`
}

// DataItemExport is one stored item in an access or portability export.
// Content is included as stored when it cannot be decrypted into text.
type DataItemExport struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ConsentExport is one consent decision in an export.
type ConsentExport struct {
	ConsentType string     `json:"consent_type"`
	Purpose     string     `json:"purpose"`
	Granted     bool       `json:"granted"`
	LegalBasis  string     `json:"legal_basis"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

// RetentionExport is one retention schedule entry in an export.
type RetentionExport struct {
	DataType          string    `json:"data_type"`
	Status            string    `json:"status"`
	ScheduledDeletion time.Time `json:"scheduled_deletion"`
}

// AccessExport gathers everything stored for a session.
type AccessExport struct {
	SessionID      string            `json:"session_id"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Items          []DataItemExport  `json:"items"`
	ConsentHistory []ConsentExport   `json:"consent_history"`
	Retention      []RetentionExport `json:"retention"`
}

// PortableExport wraps an access export in the machine-readable envelope
// the portability right requires.
type PortableExport struct {
	Format      string       `json:"format"`
	Controller  string       `json:"controller"`
	GeneratedAt time.Time    `json:"generated_at"`
	Data        AccessExport `json:"data"`
}
