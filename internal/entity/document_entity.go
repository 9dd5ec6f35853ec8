package entity

import (
	"time"

	"paper-analysis-be/pkg/pdfextract"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename  string
	FilePath  string
	FileSize  int64
	PageCount int

	Title   *string
	Authors []string
	Doi     *string

	Abstract       *string
	Introduction   *string
	Methodology    *string
	Results        *string
	Conclusion     *string
	ReferencesText *string
	FullText       string

	Tables     []pdfextract.Table
	Figures    []pdfextract.Figure
	References []pdfextract.Reference

	TablesExtracted     bool
	FiguresExtracted    bool
	ReferencesExtracted bool
	OcrApplied          bool

	UserId    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt *time.Time
}
