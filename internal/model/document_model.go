package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename  string    `gorm:"type:varchar(512);not null"`
	FilePath  string    `gorm:"type:varchar(1024);not null"`
	FileSize  int64     `gorm:"not null"`
	PageCount int       `gorm:"default:0"`

	Title   *string                     `gorm:"type:text"`
	Authors datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Doi     *string                     `gorm:"type:varchar(255);index"`

	Abstract       *string `gorm:"type:text"`
	Introduction   *string `gorm:"type:text"`
	Methodology    *string `gorm:"type:text"`
	Results        *string `gorm:"type:text"`
	Conclusion     *string `gorm:"type:text"`
	ReferencesText *string `gorm:"type:text"`
	FullText       string  `gorm:"type:text"`

	Tables     datatypes.JSON `gorm:"type:jsonb"`
	Figures    datatypes.JSON `gorm:"type:jsonb"`
	References datatypes.JSON `gorm:"type:jsonb"`

	TablesExtracted     bool `gorm:"default:false"`
	FiguresExtracted    bool `gorm:"default:false"`
	ReferencesExtracted bool `gorm:"default:false"`
	OcrApplied          bool `gorm:"default:false"`

	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
