// Package usecase implements the data-subject-rights workflows: access,
// rectification, deletion, portability, and objection requests, each
// tracked through the one-directional request state machine and audited
// at receipt and completion.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	userdataDomain "github.com/saraivavision/privacy/internal/userdata/domain"
)

// RightsRepository defines the interface for rights request persistence operations.
type RightsRepository interface {
	Create(ctx context.Context, request *rightsDomain.RightsRequest) error
	Get(ctx context.Context, requestID uuid.UUID) (*rightsDomain.RightsRequest, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, from, to rightsDomain.RequestStatus) (bool, error)
	ListBySession(ctx context.Context, sessionID string) ([]*rightsDomain.RightsRequest, error)
}

// UserDataStore defines the stored-data operations rights workflows need.
type UserDataStore interface {
	ListBySession(ctx context.Context, sessionID string, category userdataDomain.Category) ([]*userdataDomain.Item, error)
	Update(ctx context.Context, itemID uuid.UUID, content []byte, updatedAt time.Time) error
}

// ConsentManager defines the consent operations rights workflows need:
// the history feeds exports, withdrawal backs objection requests.
type ConsentManager interface {
	History(ctx context.Context, sessionID string) ([]*consentDomain.ConsentRecord, error)
	WithdrawConsent(ctx context.Context, sessionID string, consentType consentDomain.ConsentType) (*consentDomain.WithdrawConsentOutput, error)
}

// RetentionScheduler defines the retention operations rights workflows
// need: erasure scheduling and per-session retention status.
type RetentionScheduler interface {
	ScheduleAt(ctx context.Context, dataType retentionDomain.DataType, identifier string, deleteAt time.Time) (*retentionDomain.RetentionRecord, error)
	StatusFor(ctx context.Context, identifier string) ([]*retentionDomain.RetentionRecord, error)
}

// Decrypter opens stored encrypted payloads for readable exports.
type Decrypter interface {
	Decrypt(ctx context.Context, payload *cryptoDomain.EncryptedPayload) ([]byte, error)
}

// AuditLogger defines the audit trail operations the processor needs.
type AuditLogger interface {
	Log(ctx context.Context, eventType auditDomain.EventType, sessionID string, metadata map[string]any) (*auditDomain.Event, error)
}

// RightsUseCase defines the interface for rights request business logic.
type RightsUseCase interface {
	// Process records a rights request, runs its workflow, and returns the
	// outcome. The request is audited before and after processing. An
	// unknown right type yields ErrUnsupportedRightType.
	Process(ctx context.Context, input *rightsDomain.SubmitInput) (*rightsDomain.ProcessOutput, error)

	// Get retrieves a rights request by id.
	Get(ctx context.Context, requestID uuid.UUID) (*rightsDomain.RightsRequest, error)

	// ListBySession retrieves every rights request for a session.
	ListBySession(ctx context.Context, sessionID string) ([]*rightsDomain.RightsRequest, error)
}
