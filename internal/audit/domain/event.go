// Package domain defines the append-only audit event model.
//
// Every consent grant and withdrawal, every rights request received and
// completed, every key rotation, and every retention execution produces an
// event. Events are signed at creation and never updated or deleted inside
// the retention window.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the audited operation.
type EventType string

const (
	// EventConsentRecorded is emitted when a consent record is created.
	EventConsentRecorded EventType = "CONSENT_RECORDED"

	// EventConsentWithdrawn is emitted when consent is revoked.
	EventConsentWithdrawn EventType = "CONSENT_WITHDRAWN"

	// EventRightsRequestReceived is emitted before a rights request is processed.
	EventRightsRequestReceived EventType = "RIGHTS_REQUEST_RECEIVED"

	// EventRightsRequestCompleted is emitted after a rights request finishes,
	// whether it completed or failed.
	EventRightsRequestCompleted EventType = "RIGHTS_REQUEST_COMPLETED"

	// EventKeyRotated is emitted when encryption keys rotate.
	EventKeyRotated EventType = "KEY_ROTATED"

	// EventRetentionScheduled is emitted when a deletion is scheduled.
	EventRetentionScheduled EventType = "RETENTION_SCHEDULED"

	// EventRetentionExecuted is emitted when a scheduled deletion runs.
	EventRetentionExecuted EventType = "RETENTION_EXECUTED"
)

// Event is a single append-only audit record. SessionID may be empty for
// system-level events (e.g., key rotation).
type Event struct {
	ID        uuid.UUID
	Type      EventType
	SessionID string
	Metadata  map[string]any
	Signature []byte
	CreatedAt time.Time
}
