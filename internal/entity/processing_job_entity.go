package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether the job can no longer change state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

type ProcessingJob struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobId        string
	BatchId      *string
	DocumentId   *uuid.UUID
	Filename     string
	Status       JobStatus
	Progress     int
	CurrentStep  *string
	ErrorMessage *string
	RetryCount   int
	UserId       uuid.UUID `gorm:"type:uuid;index"`
	JobMetadata  map[string]interface{}
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}
