package entity

import (
	"time"

	"github.com/google/uuid"
)

type SearchQuery struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;index"`
	QueryText      string
	QueryEmbedding []float32
	ResultsCount   int
	TopScore       *float64
	CreatedAt      time.Time
}
