package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProcessingJob struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobId        string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	BatchId      *string    `gorm:"type:varchar(64);index"`
	DocumentId   *uuid.UUID `gorm:"type:uuid;index"`
	Filename     string     `gorm:"type:varchar(512);not null"`
	Status       string     `gorm:"type:varchar(16);not null;index;default:pending"`
	Progress     int        `gorm:"default:0"`
	CurrentStep  *string    `gorm:"type:varchar(64)"`
	ErrorMessage *string    `gorm:"type:text"`
	RetryCount   int        `gorm:"default:0"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	JobMetadata  datatypes.JSONMap
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

func (ProcessingJob) TableName() string {
	return "processing_jobs"
}
