// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	retentionDomain "github.com/saraivavision/privacy/internal/retention/domain"
	retentionUseCase "github.com/saraivavision/privacy/internal/retention/usecase"
)

// RetentionRecordResponse represents a retention record in API responses.
type RetentionRecordResponse struct {
	ID                string    `json:"id"`
	DataType          string    `json:"data_type"`
	Identifier        string    `json:"identifier"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	ScheduledDeletion time.Time `json:"scheduled_deletion"`
}

// MapRetentionRecord converts a domain retention record to an API response.
func MapRetentionRecord(record *retentionDomain.RetentionRecord) RetentionRecordResponse {
	return RetentionRecordResponse{
		ID:                record.ID.String(),
		DataType:          string(record.DataType),
		Identifier:        record.Identifier,
		Status:            string(record.Status),
		CreatedAt:         record.CreatedAt,
		ScheduledDeletion: record.ScheduledDeletion,
	}
}

// ListRetentionRecordsResponse represents an identifier's retention records in API responses.
type ListRetentionRecordsResponse struct {
	Data []RetentionRecordResponse `json:"data"`
}

// MapRetentionRecords converts domain retention records to a list response.
func MapRetentionRecords(records []*retentionDomain.RetentionRecord) ListRetentionRecordsResponse {
	data := make([]RetentionRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRetentionRecord(record))
	}

	return ListRetentionRecordsResponse{Data: data}
}

// SweepResultResponse represents one deletion sweep outcome in API responses.
type SweepResultResponse struct {
	Executed     int   `json:"executed"`
	Skipped      int   `json:"skipped"`
	ItemsDeleted int64 `json:"items_deleted"`
}

// MapSweepResult converts a domain sweep result to an API response.
func MapSweepResult(result *retentionUseCase.SweepResult) SweepResultResponse {
	return SweepResultResponse{
		Executed:     result.Executed,
		Skipped:      result.Skipped,
		ItemsDeleted: result.ItemsDeleted,
	}
}
