package mapper

import (
	"encoding/json"
	"time"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/model"
	"paper-analysis-be/pkg/pdfextract"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(e *model.Document) *entity.Document {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var tables []pdfextract.Table
	if len(e.Tables) > 0 {
		_ = json.Unmarshal(e.Tables, &tables)
	}
	var figures []pdfextract.Figure
	if len(e.Figures) > 0 {
		_ = json.Unmarshal(e.Figures, &figures)
	}
	var references []pdfextract.Reference
	if len(e.References) > 0 {
		_ = json.Unmarshal(e.References, &references)
	}

	return &entity.Document{
		Id:                  e.Id,
		Filename:            e.Filename,
		FilePath:            e.FilePath,
		FileSize:            e.FileSize,
		PageCount:           e.PageCount,
		Title:               e.Title,
		Authors:             e.Authors,
		Doi:                 e.Doi,
		Abstract:            e.Abstract,
		Introduction:        e.Introduction,
		Methodology:         e.Methodology,
		Results:             e.Results,
		Conclusion:          e.Conclusion,
		ReferencesText:      e.ReferencesText,
		FullText:            e.FullText,
		Tables:              tables,
		Figures:             figures,
		References:          references,
		TablesExtracted:     e.TablesExtracted,
		FiguresExtracted:    e.FiguresExtracted,
		ReferencesExtracted: e.ReferencesExtracted,
		OcrApplied:          e.OcrApplied,
		UserId:              e.UserId,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	tables, _ := json.Marshal(e.Tables)
	figures, _ := json.Marshal(e.Figures)
	references, _ := json.Marshal(e.References)

	return &model.Document{
		Id:                  e.Id,
		Filename:            e.Filename,
		FilePath:            e.FilePath,
		FileSize:            e.FileSize,
		PageCount:           e.PageCount,
		Title:               e.Title,
		Authors:             datatypes.NewJSONSlice(e.Authors),
		Doi:                 e.Doi,
		Abstract:            e.Abstract,
		Introduction:        e.Introduction,
		Methodology:         e.Methodology,
		Results:             e.Results,
		Conclusion:          e.Conclusion,
		ReferencesText:      e.ReferencesText,
		FullText:            e.FullText,
		Tables:              datatypes.JSON(tables),
		Figures:             datatypes.JSON(figures),
		References:          datatypes.JSON(references),
		TablesExtracted:     e.TablesExtracted,
		FiguresExtracted:    e.FiguresExtracted,
		ReferencesExtracted: e.ReferencesExtracted,
		OcrApplied:          e.OcrApplied,
		UserId:              e.UserId,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, e := range documents {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
