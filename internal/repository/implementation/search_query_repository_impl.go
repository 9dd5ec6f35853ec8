package implementation

import (
	"context"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/mapper"
	"paper-analysis-be/internal/model"
	"paper-analysis-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchQueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchQueryMapper
}

func NewSearchQueryRepository(db *gorm.DB) contract.SearchQueryRepository {
	return &SearchQueryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchQueryMapper(),
	}
}

func (r *SearchQueryRepositoryImpl) Create(ctx context.Context, query *entity.SearchQuery) error {
	m := r.mapper.ToModel(query)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *SearchQueryRepositoryImpl) ListByUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.SearchQuery, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []*model.SearchQuery
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.SearchQuery, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
