package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/contract"

	"github.com/google/uuid"
)

// DocumentChunkRepository is an in-memory chunk store that computes
// cosine similarity in Go, mirroring the pgvector `<=>` ordering.
type DocumentChunkRepository struct {
	mu     sync.RWMutex
	chunks map[uuid.UUID][]*entity.DocumentChunk
	docs   *DocumentRepository
}

func NewDocumentChunkRepository(docs *DocumentRepository) *DocumentChunkRepository {
	return &DocumentChunkRepository{
		chunks: make(map[uuid.UUID][]*entity.DocumentChunk),
		docs:   docs,
	}
}

var _ contract.DocumentChunkRepository = (*DocumentChunkRepository)(nil)

func (r *DocumentChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		cp := *c
		r.chunks[c.DocumentId] = append(r.chunks[c.DocumentId], &cp)
	}
	return nil
}

func (r *DocumentChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.chunks, documentId)
	return nil
}

func (r *DocumentChunkRepository) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.chunks[documentId])), nil
}

func (r *DocumentChunkRepository) ListByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chunks := r.chunks[documentId]
	out := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		cp := *c
		out[i] = &cp
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ChunkIndex < out[j].ChunkIndex
	})
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func (r *DocumentChunkRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, filter contract.ChunkFilter) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var scored []*contract.ScoredChunk
	for docId, chunks := range r.chunks {
		doc, _ := r.docs.FindById(ctx, docId)
		if doc == nil || doc.UserId != userId {
			continue
		}
		for _, c := range chunks {
			if filter.DocumentId != nil && c.DocumentId != *filter.DocumentId {
				continue
			}
			if filter.Section != nil && c.Section != *filter.Section {
				continue
			}
			if filter.ChunkType != nil && c.ChunkType != *filter.ChunkType {
				continue
			}
			cp := *c
			scored = append(scored, &contract.ScoredChunk{
				Chunk:         &cp,
				Similarity:    cosineSimilarity(embedding, c.Embedding),
				DocumentTitle: doc.Title,
				Filename:      doc.Filename,
			})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.ChunkIndex < scored[j].Chunk.ChunkIndex
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored, nil
}
