package service

import (
	"context"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/internal/repository/contract"
	"paper-analysis-be/internal/repository/unitofwork"
	"paper-analysis-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	defaultTopK = 10
	maxTopK     = 50
)

type ISearchService interface {
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	log               logger.ILogger
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (s *searchService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	queryVector, err := s.embeddingProvider.Generate(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilar(ctx, queryVector, topK, userId, contract.ChunkFilter{
		DocumentId: req.DocumentId,
		Section:    req.Section,
		ChunkType:  req.ChunkType,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.SearchResponse{
		Query:   req.Query,
		Results: make([]dto.SearchResultItem, len(scored)),
		Count:   len(scored),
	}
	for i, sc := range scored {
		res.Results[i] = dto.SearchResultItem{
			ChunkId:       sc.Chunk.Id,
			DocumentId:    sc.Chunk.DocumentId,
			DocumentTitle: sc.DocumentTitle,
			Filename:      sc.Filename,
			Section:       sc.Chunk.Section,
			ChunkIndex:    sc.Chunk.ChunkIndex,
			Text:          sc.Chunk.Text,
			Similarity:    sc.Similarity,
			PageNumber:    sc.Chunk.PageNumber,
		}
	}

	// query logging is auxiliary, failures must not fail the search
	logEntry := &entity.SearchQuery{
		Id:             uuid.New(),
		UserId:         userId,
		QueryText:      req.Query,
		QueryEmbedding: queryVector,
		ResultsCount:   len(scored),
		CreatedAt:      time.Now(),
	}
	if len(scored) > 0 {
		top := scored[0].Similarity
		logEntry.TopScore = &top
	}
	if err := uow.SearchQueryRepository().Create(ctx, logEntry); err != nil {
		s.log.Warn("search", "failed to record search query", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return res, nil
}
