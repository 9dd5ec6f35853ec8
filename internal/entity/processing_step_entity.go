package entity

import (
	"time"

	"github.com/google/uuid"
)

type StepStatus string

const (
	StepStatusStarted   StepStatus = "started"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// ProcessingStep is an append-only record of one pipeline stage of a job.
type ProcessingStep struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobId      string
	StepName   string
	Status     StepStatus
	Details    map[string]interface{}
	DurationMs *int64
	CreatedAt  time.Time
}
