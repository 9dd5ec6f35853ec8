package contract

import (
	"context"

	"paper-analysis-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunk wraps DocumentChunk with its similarity score
type ScoredChunk struct {
	Chunk         *entity.DocumentChunk
	Similarity    float64 // 0.0 to 1.0 (1.0 = identical)
	DocumentTitle *string
	Filename      string
}

// ChunkFilter narrows a similarity search. Nil fields are ignored.
type ChunkFilter struct {
	DocumentId *uuid.UUID
	Section    *string
	ChunkType  *string
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
	ListByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error)
	// SearchSimilar ranks chunks by cosine similarity to the query embedding,
	// scoped to documents owned by userId.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, filter ChunkFilter) ([]*ScoredChunk, error)
}
