package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByDoi struct {
	Doi string
}

func (s ByDoi) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doi = ?", s.Doi)
}

type BySection struct {
	Section string
}

func (s BySection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section = ?", s.Section)
}
