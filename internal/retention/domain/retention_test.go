package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetentionDays(t *testing.T) {
	cases := []struct {
		dataType DataType
		days     int
	}{
		{DataConversation, 365},
		{DataPersonal, 730},
		{DataMedical, 1825},
		{DataConsentRecords, 2555},
		{DataAuditLogs, 1095},
	}
	for _, tc := range cases {
		days, ok := RetentionDays(tc.dataType)
		require.True(t, ok, tc.dataType)
		assert.Equal(t, tc.days, days, tc.dataType)
	}

	_, ok := RetentionDays(DataType("telemetry"))
	assert.False(t, ok)
}

func TestRetentionMonotonicity(t *testing.T) {
	conversation, _ := RetentionDays(DataConversation)

	for _, dataType := range []DataType{DataMedical, DataConsentRecords, DataAuditLogs} {
		days, _ := RetentionDays(dataType)
		assert.Greater(t, days, conversation, dataType)
	}
}

func TestScheduledDeletionFor(t *testing.T) {
	now := time.Now().UTC()

	deadline, ok := ScheduledDeletionFor(DataMedical, now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, 1825), deadline)

	_, ok = ScheduledDeletionFor(DataType("telemetry"), now)
	assert.False(t, ok)
}

func TestRetentionRecord_Due(t *testing.T) {
	now := time.Now().UTC()
	record := &RetentionRecord{
		ID:                uuid.Must(uuid.NewV7()),
		DataType:          DataConversation,
		Identifier:        "session-1",
		CreatedAt:         now,
		ScheduledDeletion: now.Add(time.Hour),
		Status:            StatusScheduled,
	}

	assert.False(t, record.Due(now))
	assert.True(t, record.Due(now.Add(time.Hour)))

	record.Status = StatusExecuted
	assert.False(t, record.Due(now.Add(time.Hour)))
}
