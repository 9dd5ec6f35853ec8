package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_chunks_doc_idx"`
	ChunkIndex int       `gorm:"not null;uniqueIndex:idx_document_chunks_doc_idx"`
	Text       string    `gorm:"type:text;not null"`
	Section    string    `gorm:"type:varchar(64);index"`
	ChunkType  string    `gorm:"type:varchar(32);default:text"`
	PageNumber *int
	Embedding  pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM class models use 384 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
