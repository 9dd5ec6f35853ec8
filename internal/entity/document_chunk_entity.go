package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex int
	Text       string
	Section    string
	ChunkType  string
	PageNumber *int
	Embedding  []float32
	CreatedAt  time.Time
}
