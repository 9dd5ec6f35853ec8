package mapper

import (
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(e *model.DocumentChunk) *entity.DocumentChunk {
	if e == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		ChunkIndex: e.ChunkIndex,
		Text:       e.Text,
		Section:    e.Section,
		ChunkType:  e.ChunkType,
		PageNumber: e.PageNumber,
		Embedding:  e.Embedding.Slice(),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	if e == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		ChunkIndex: e.ChunkIndex,
		Text:       e.Text,
		Section:    e.Section,
		ChunkType:  e.ChunkType,
		PageNumber: e.PageNumber,
		Embedding:  pgvector.NewVector(e.Embedding),
		CreatedAt:  e.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}

type SearchQueryMapper struct{}

func NewSearchQueryMapper() *SearchQueryMapper {
	return &SearchQueryMapper{}
}

func (m *SearchQueryMapper) ToModel(e *entity.SearchQuery) *model.SearchQuery {
	if e == nil {
		return nil
	}

	return &model.SearchQuery{
		Id:             e.Id,
		UserId:         e.UserId,
		QueryText:      e.QueryText,
		QueryEmbedding: pgvector.NewVector(e.QueryEmbedding),
		ResultsCount:   e.ResultsCount,
		TopScore:       e.TopScore,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SearchQueryMapper) ToEntity(e *model.SearchQuery) *entity.SearchQuery {
	if e == nil {
		return nil
	}

	return &entity.SearchQuery{
		Id:             e.Id,
		UserId:         e.UserId,
		QueryText:      e.QueryText,
		QueryEmbedding: e.QueryEmbedding.Slice(),
		ResultsCount:   e.ResultsCount,
		TopScore:       e.TopScore,
		CreatedAt:      e.CreatedAt,
	}
}
