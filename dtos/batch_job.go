package dtos

import (
	"time"

	"github.com/google/uuid"
)

// BatchJob tracks the progress of an asynchronous catalog import.
type BatchJob struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`   // pending, processing, completed, failed
	Progress    int        `json:"progress"` // 0-100 percentage
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	Created     int        `json:"created"`
	Updated     int        `json:"updated"`
	Deleted     int        `json:"deleted"`
	Failed      int        `json:"failed"`
	Errors      []JobError `json:"errors"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// JobError records why a single import row was rejected.
type JobError struct {
	Row        int               `json:"row"` // 1-indexed position in the import payload
	Instrument string            `json:"instrument"`
	Fields     map[string]string `json:"fields"` // field -> error message
}

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
