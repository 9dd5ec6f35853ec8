package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessingStep rows are append-only; a stage writes a new row per
// status transition instead of updating an existing one.
type ProcessingStep struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobId      string    `gorm:"type:varchar(32);not null;index"`
	StepName   string    `gorm:"type:varchar(64);not null"`
	Status     string    `gorm:"type:varchar(16);not null"`
	Details    datatypes.JSONMap
	DurationMs *int64
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ProcessingStep) TableName() string {
	return "processing_steps"
}
