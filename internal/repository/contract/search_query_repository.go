package contract

import (
	"context"

	"paper-analysis-be/internal/entity"

	"github.com/google/uuid"
)

type SearchQueryRepository interface {
	Create(ctx context.Context, query *entity.SearchQuery) error
	ListByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.SearchQuery, error)
}
