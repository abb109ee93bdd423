package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/saraivavision/privacy/internal/audit/domain"
	consentDomain "github.com/saraivavision/privacy/internal/consent/domain"
	cryptoDomain "github.com/saraivavision/privacy/internal/crypto/domain"
	"github.com/saraivavision/privacy/internal/database"
	apperrors "github.com/saraivavision/privacy/internal/errors"
	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	rightsDomain "github.com/saraivavision/privacy/internal/rights/domain"
	userdataDomain "github.com/saraivavision/privacy/internal/userdata/domain"
)

// erasureGraceDays is the window between a deletion request and the
// scheduled erasure of the eligible data.
const erasureGraceDays = 30

// erasureDataTypes are the data types a deletion request erases. Medical
// data, consent records, and audit logs stay under their legal retention
// windows and are excluded.
var erasureDataTypes = []retentionDomain.DataType{
	retentionDomain.DataConversation,
	retentionDomain.DataPersonal,
}

// erasureExceptions names the data types a deletion request cannot erase.
var erasureExceptions = []string{
	string(retentionDomain.DataMedical),
	string(retentionDomain.DataConsentRecords),
	string(retentionDomain.DataAuditLogs),
}

// objectionConsentTypes maps consent-required purposes to the consent type
// an objection withdraws.
var objectionConsentTypes = map[consentDomain.Purpose]consentDomain.ConsentType{
	consentDomain.PurposeMarketing:         consentDomain.ConsentMarketing,
	consentDomain.PurposeAnalytics:         consentDomain.ConsentAnalytics,
	consentDomain.PurposeSystemImprovement: consentDomain.ConsentDataProcessing,
}

// rightsUseCase implements the RightsUseCase interface.
type rightsUseCase struct {
	txManager  database.TxManager
	rightsRepo RightsRepository
	userData   UserDataStore
	consent    ConsentManager
	retention  RetentionScheduler
	decrypter  Decrypter
	audit      AuditLogger
	controller string
}

// Process records a rights request, runs its workflow, and returns the outcome.
func (r *rightsUseCase) Process(
	ctx context.Context,
	input *rightsDomain.SubmitInput,
) (*rightsDomain.ProcessOutput, error) {
	if !input.RightType.Valid() {
		return nil, rightsDomain.ErrUnsupportedRightType
	}

	now := time.Now().UTC()

	request := &rightsDomain.RightsRequest{
		ID:                  uuid.Must(uuid.NewV7()),
		SessionID:           input.SessionID,
		RightType:           input.RightType,
		RequestData:         input.RequestData,
		Status:              rightsDomain.StatusReceived,
		CreatedAt:           now,
		EstimatedCompletion: rightsDomain.EstimatedCompletionFor(input.RightType, now),
	}

	// Receipt is recorded and audited atomically so every tracked request
	// has a matching trail entry.
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.rightsRepo.Create(ctx, request); err != nil {
			return apperrors.Wrap(err, "failed to create rights request")
		}

		_, err := r.audit.Log(ctx, auditDomain.EventRightsRequestReceived, request.SessionID, map[string]any{
			"request_id": request.ID.String(),
			"right_type": string(request.RightType),
		})
		return err
	})
	if err != nil {
		return nil, apperrors.MarkRetryable(apperrors.Wrap(rightsDomain.ErrRightsProcessing, err.Error()))
	}

	if err := r.transition(ctx, request, rightsDomain.StatusProcessing); err != nil {
		return nil, err
	}

	output, dispatchErr := r.dispatch(ctx, request)

	final := rightsDomain.StatusCompleted
	if dispatchErr != nil {
		final = rightsDomain.StatusFailed
	}
	if err := r.transition(ctx, request, final); err != nil {
		return nil, err
	}

	if _, err := r.audit.Log(ctx, auditDomain.EventRightsRequestCompleted, request.SessionID, map[string]any{
		"request_id": request.ID.String(),
		"right_type": string(request.RightType),
		"status":     string(final),
	}); err != nil {
		slog.Error("failed to audit rights request completion",
			"request_id", request.ID.String(),
			"error", err,
		)
	}

	if dispatchErr != nil {
		if apperrors.Is(dispatchErr, apperrors.ErrInvalidInput) {
			return nil, dispatchErr
		}
		return nil, apperrors.MarkRetryable(apperrors.Wrap(rightsDomain.ErrRightsProcessing, dispatchErr.Error()))
	}

	output.RequestID = request.ID
	output.RightType = request.RightType
	output.Status = rightsDomain.StatusCompleted
	output.EstimatedCompletion = request.EstimatedCompletion
	return output, nil
}

// Get retrieves a rights request by id.
func (r *rightsUseCase) Get(ctx context.Context, requestID uuid.UUID) (*rightsDomain.RightsRequest, error) {
	request, err := r.rightsRepo.Get(ctx, requestID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, rightsDomain.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get rights request")
	}
	return request, nil
}

// ListBySession retrieves every rights request for a session.
func (r *rightsUseCase) ListBySession(ctx context.Context, sessionID string) ([]*rightsDomain.RightsRequest, error) {
	requests, err := r.rightsRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rights requests")
	}
	return requests, nil
}

// transition advances the request through its state machine with a
// compare-and-swap, so a concurrently modified request fails loudly
// instead of double-processing.
func (r *rightsUseCase) transition(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
	next rightsDomain.RequestStatus,
) error {
	if !request.Status.CanTransition(next) {
		return rightsDomain.ErrInvalidTransition
	}

	ok, err := r.rightsRepo.UpdateStatus(ctx, request.ID, request.Status, next)
	if err != nil {
		return apperrors.MarkRetryable(apperrors.Wrap(rightsDomain.ErrRightsProcessing, err.Error()))
	}
	if !ok {
		return rightsDomain.ErrInvalidTransition
	}

	request.Status = next
	return nil
}

func (r *rightsUseCase) dispatch(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	switch request.RightType {
	case rightsDomain.RightAccess:
		return r.processAccess(ctx, request)
	case rightsDomain.RightRectification:
		return r.processRectification(ctx, request)
	case rightsDomain.RightDeletion:
		return r.processDeletion(ctx, request)
	case rightsDomain.RightPortability:
		return r.processPortability(ctx, request)
	case rightsDomain.RightObjection:
		return r.processObjection(ctx, request)
	}
	return nil, rightsDomain.ErrUnsupportedRightType
}

// processAccess gathers everything stored for the session into a
// human-readable export.
func (r *rightsUseCase) processAccess(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	export, err := r.buildExport(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}
	return &rightsDomain.ProcessOutput{Data: export}, nil
}

// processPortability wraps the access export in the machine-readable
// envelope the portability right requires.
func (r *rightsUseCase) processPortability(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	export, err := r.buildExport(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}
	return &rightsDomain.ProcessOutput{
		Data: &rightsDomain.PortableExport{
			Format:      "JSON",
			Controller:  r.controller,
			GeneratedAt: export.GeneratedAt,
			Data:        *export,
		},
	}, nil
}

// processRectification updates the stored item named by the request data.
func (r *rightsUseCase) processRectification(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	rawID, ok := request.RequestData["item_id"].(string)
	if !ok || rawID == "" {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "missing item_id")
	}
	itemID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "malformed item_id")
	}

	content, ok := request.RequestData["content"]
	if !ok || content == nil {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "missing content")
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "unencodable content")
	}

	if err := r.userData.Update(ctx, itemID, encoded, time.Now().UTC()); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "unknown item_id")
		}
		return nil, apperrors.Wrap(err, "failed to rectify stored item")
	}

	return &rightsDomain.ProcessOutput{
		Actions: []rightsDomain.RightsAction{rightsDomain.ActionRectificationScheduled},
	}, nil
}

// processDeletion schedules erasure of the eligible data types after the
// grace window and reports the legally retained exceptions.
func (r *rightsUseCase) processDeletion(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	deleteAt := time.Now().UTC().AddDate(0, 0, erasureGraceDays)

	for _, dataType := range erasureDataTypes {
		if _, err := r.retention.ScheduleAt(ctx, dataType, request.SessionID, deleteAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to schedule erasure")
		}
	}

	return &rightsDomain.ProcessOutput{
		Actions:             []rightsDomain.RightsAction{rightsDomain.ActionDeletionScheduled},
		RetentionExceptions: erasureExceptions,
	}, nil
}

// processObjection stops consent-based processing for the objected
// purpose by withdrawing the backing consent.
func (r *rightsUseCase) processObjection(
	ctx context.Context,
	request *rightsDomain.RightsRequest,
) (*rightsDomain.ProcessOutput, error) {
	rawPurpose, ok := request.RequestData["purpose"].(string)
	if !ok || rawPurpose == "" {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "missing purpose")
	}
	purpose := consentDomain.Purpose(rawPurpose)
	if !purpose.Valid() {
		return nil, apperrors.Wrap(rightsDomain.ErrInvalidRequestData, "unknown purpose")
	}

	// Non-consent purposes rest on another legal basis; objection stops
	// the processing without a consent record to withdraw.
	if consentType, found := objectionConsentTypes[purpose]; found {
		if _, err := r.consent.WithdrawConsent(ctx, request.SessionID, consentType); err != nil {
			// No active consent means processing is already stopped.
			if !apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Wrap(err, "failed to withdraw consent for objection")
			}
		}
	}

	return &rightsDomain.ProcessOutput{
		Actions: []rightsDomain.RightsAction{rightsDomain.ActionProcessingStopped},
	}, nil
}

// buildExport collects stored items, consent history, and retention
// schedules for a session. Encrypted item content is decrypted into the
// export; content that cannot be opened is included as stored.
func (r *rightsUseCase) buildExport(ctx context.Context, sessionID string) (*rightsDomain.AccessExport, error) {
	items, err := r.userData.ListBySession(ctx, sessionID, "")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stored items")
	}

	consents, err := r.consent.History(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list consent history")
	}

	schedules, err := r.retention.StatusFor(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list retention schedules")
	}

	export := &rightsDomain.AccessExport{
		SessionID:      sessionID,
		GeneratedAt:    time.Now().UTC(),
		Items:          make([]rightsDomain.DataItemExport, 0, len(items)),
		ConsentHistory: make([]rightsDomain.ConsentExport, 0, len(consents)),
		Retention:      make([]rightsDomain.RetentionExport, 0, len(schedules)),
	}

	for _, item := range items {
		export.Items = append(export.Items, rightsDomain.DataItemExport{
			ID:        item.ID,
			Category:  string(item.Category),
			Content:   r.exportContent(ctx, item),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}

	for _, record := range consents {
		export.ConsentHistory = append(export.ConsentHistory, rightsDomain.ConsentExport{
			ConsentType: string(record.ConsentType),
			Purpose:     string(record.Purpose),
			Granted:     record.Granted,
			LegalBasis:  string(record.LegalBasis),
			CreatedAt:   record.CreatedAt,
			ExpiresAt:   record.ExpiresAt,
			RevokedAt:   record.RevokedAt,
		})
	}

	for _, schedule := range schedules {
		export.Retention = append(export.Retention, rightsDomain.RetentionExport{
			DataType:          string(schedule.DataType),
			Status:            string(schedule.Status),
			ScheduledDeletion: schedule.ScheduledDeletion,
		})
	}

	return export, nil
}

// exportContent renders one stored item for an export. Content stored as
// an encrypted payload is decrypted; anything else is returned as stored.
func (r *rightsUseCase) exportContent(ctx context.Context, item *userdataDomain.Item) json.RawMessage {
	var payload cryptoDomain.EncryptedPayload
	if err := json.Unmarshal(item.Content, &payload); err != nil || payload.Validate() != nil {
		if json.Valid(item.Content) {
			return json.RawMessage(item.Content)
		}
		raw, _ := json.Marshal(string(item.Content))
		return raw
	}

	plaintext, err := r.decrypter.Decrypt(ctx, &payload)
	if err != nil {
		slog.Warn("failed to decrypt stored item for export",
			"item_id", item.ID.String(),
			"error", err,
		)
		return json.RawMessage(item.Content)
	}

	if json.Valid(plaintext) {
		return json.RawMessage(plaintext)
	}
	raw, _ := json.Marshal(string(plaintext))
	return raw
}

// NewRightsUseCase creates a new RightsUseCase.
func NewRightsUseCase(
	txManager database.TxManager,
	rightsRepo RightsRepository,
	userData UserDataStore,
	consent ConsentManager,
	retention RetentionScheduler,
	decrypter Decrypter,
	audit AuditLogger,
	controller string,
) RightsUseCase {
	return &rightsUseCase{
		txManager:  txManager,
		rightsRepo: rightsRepo,
		userData:   userData,
		consent:    consent,
		retention:  retention,
		decrypter:  decrypter,
		audit:      audit,
		controller: controller,
	}
}
