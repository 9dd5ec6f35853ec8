package dto

import (
	"time"

	"paper-analysis-be/pkg/pdfextract"

	"github.com/google/uuid"
)

// ProcessDocumentMessage is the internal queue payload that triggers the
// extraction pipeline for one uploaded file.
type ProcessDocumentMessage struct {
	JobId            string     `json:"job_id"`
	FilePath         string     `json:"file_path"`
	OriginalFilename string     `json:"original_filename"`
	UserId           uuid.UUID  `json:"user_id"`
	DocumentId       *uuid.UUID `json:"document_id,omitempty"` // set on reprocess
	ForceOcr         bool       `json:"force_ocr,omitempty"`
}

type UploadDocumentResponse struct {
	JobId    string `json:"job_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

type BatchUploadResponse struct {
	BatchId string                   `json:"batch_id"`
	Jobs    []UploadDocumentResponse `json:"jobs"`
}

type DocumentListItem struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Title     *string   `json:"title"`
	Authors   []string  `json:"authors"`
	Doi       *string   `json:"doi"`
	PageCount int       `json:"page_count"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentListItem `json:"documents"`
	Count     int                `json:"count"`
}

type ShowDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	PageCount int       `json:"page_count"`
	FileSize  int64     `json:"file_size"`

	Title   *string  `json:"title"`
	Authors []string `json:"authors"`
	Doi     *string  `json:"doi"`

	Abstract       *string `json:"abstract"`
	Introduction   *string `json:"introduction"`
	Methodology    *string `json:"methodology"`
	Results        *string `json:"results"`
	Conclusion     *string `json:"conclusion"`
	ReferencesText *string `json:"references_text"`

	Tables     []pdfextract.Table     `json:"tables"`
	Figures    []pdfextract.Figure    `json:"figures"`
	References []pdfextract.Reference `json:"references"`

	TablesExtracted     bool `json:"tables_extracted"`
	FiguresExtracted    bool `json:"figures_extracted"`
	ReferencesExtracted bool `json:"references_extracted"`
	OcrApplied          bool `json:"ocr_applied"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ReprocessDocumentRequest struct {
	ForceOcr bool `json:"force_ocr"`
}

type ReprocessDocumentResponse struct {
	JobId      string    `json:"job_id"`
	DocumentId uuid.UUID `json:"document_id"`
	Status     string    `json:"status"`
}
