package dto

import (
	"github.com/google/uuid"
)

type SearchRequest struct {
	Query      string     `json:"query" validate:"required"`
	TopK       int        `json:"top_k"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
	Section    *string    `json:"section,omitempty"`
	ChunkType  *string    `json:"chunk_type,omitempty"`
}

type SearchResultItem struct {
	ChunkId       uuid.UUID `json:"chunk_id"`
	DocumentId    uuid.UUID `json:"document_id"`
	DocumentTitle *string   `json:"document_title"`
	Filename      string    `json:"filename"`
	Section       string    `json:"section"`
	ChunkIndex    int       `json:"chunk_index"`
	Text          string    `json:"text"`
	Similarity    float64   `json:"similarity"`
	PageNumber    *int      `json:"page_number,omitempty"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
	Count   int                `json:"count"`
}
