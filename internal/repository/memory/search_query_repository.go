package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/contract"

	"github.com/google/uuid"
)

type SearchQueryRepository struct {
	mu      sync.RWMutex
	queries []*entity.SearchQuery
}

func NewSearchQueryRepository() *SearchQueryRepository {
	return &SearchQueryRepository{}
}

var _ contract.SearchQueryRepository = (*SearchQueryRepository)(nil)

func (r *SearchQueryRepository) Create(ctx context.Context, query *entity.SearchQuery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if query.Id == uuid.Nil {
		query.Id = uuid.New()
	}
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now()
	}
	cp := *query
	r.queries = append(r.queries, &cp)
	return nil
}

func (r *SearchQueryRepository) ListByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.SearchQuery, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.SearchQuery
	for _, q := range r.queries {
		if q.UserId == userId {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
