package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByJobID struct {
	JobID string
}

func (s ByJobID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("job_id = ?", s.JobID)
}

type ByBatchID struct {
	BatchID string
}

func (s ByBatchID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("batch_id = ?", s.BatchID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
