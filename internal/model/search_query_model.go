package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type SearchQuery struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	QueryText      string          `gorm:"type:text;not null"`
	QueryEmbedding pgvector.Vector `gorm:"type:vector(384)"`
	ResultsCount   int             `gorm:"default:0"`
	TopScore       *float64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (SearchQuery) TableName() string {
	return "search_queries"
}
