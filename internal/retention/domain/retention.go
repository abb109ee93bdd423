// Package domain defines the data-retention model: the fixed per-type
// retention table and the scheduled-deletion record with its idempotent
// state machine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DataType classifies stored data for retention purposes.
type DataType string

const (
	DataConversation   DataType = "conversation_data"
	DataPersonal       DataType = "personal_data"
	DataMedical        DataType = "medical_data"
	DataConsentRecords DataType = "consent_records"
	DataAuditLogs      DataType = "audit_logs"
)

// Valid reports whether the data type is a known value.
func (d DataType) Valid() bool {
	switch d {
	case DataConversation, DataPersonal, DataMedical,
		DataConsentRecords, DataAuditLogs:
		return true
	}
	return false
}

// Retention windows in days. The table is fixed by legal minimums, never
// caller preference: medical, consent, and audit data always outlive
// conversational data.
var retentionDays = map[DataType]int{
	DataConversation:   365,
	DataPersonal:       730,
	DataMedical:        1825,
	DataConsentRecords: 2555,
	DataAuditLogs:      1095,
}

// RetentionDays returns the retention window for the data type in days.
func RetentionDays(dataType DataType) (int, bool) {
	days, ok := retentionDays[dataType]
	return days, ok
}

// ScheduledDeletionFor computes when data of the given type must be deleted.
func ScheduledDeletionFor(dataType DataType, now time.Time) (time.Time, bool) {
	days, ok := retentionDays[dataType]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, days), true
}

// Status is the retention record state. Transitions are SCHEDULED→EXECUTED
// (deletion ran) or SCHEDULED→CANCELLED (legal hold); both are terminal.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusExecuted  Status = "EXECUTED"
	StatusCancelled Status = "CANCELLED"
)

// RetentionRecord schedules a future deletion of one identified data item.
type RetentionRecord struct {
	ID                uuid.UUID
	DataType          DataType
	Identifier        string
	CreatedAt         time.Time
	ScheduledDeletion time.Time
	Status            Status
}

// Due reports whether the record's deletion is due at the given time.
func (r *RetentionRecord) Due(now time.Time) bool {
	return r.Status == StatusScheduled && !now.Before(r.ScheduledDeletion)
}
