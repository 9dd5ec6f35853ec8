package implementation

import (
	"context"
	"errors"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/mapper"
	"paper-analysis-be/internal/model"
	"paper-analysis-be/internal/repository/contract"
	"paper-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessingJobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProcessingJobMapper
}

func NewProcessingJobRepository(db *gorm.DB) contract.ProcessingJobRepository {
	return &ProcessingJobRepositoryImpl{
		db:     db,
		mapper: mapper.NewProcessingJobMapper(),
	}
}

func (r *ProcessingJobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProcessingJobRepositoryImpl) Create(ctx context.Context, job *entity.ProcessingJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProcessingJobRepositoryImpl) Update(ctx context.Context, job *entity.ProcessingJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProcessingJobRepositoryImpl) FindByJobId(ctx context.Context, jobId string) (*entity.ProcessingJob, error) {
	var m model.ProcessingJob
	err := r.db.WithContext(ctx).Where("job_id = ?", jobId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProcessingJobRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error) {
	var models []*model.ProcessingJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProcessingJobRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ProcessingJob{}).Count(&count).Error
	return count, err
}

func (r *ProcessingJobRepositoryImpl) ListByBatch(ctx context.Context, batchId string) ([]*entity.ProcessingJob, error) {
	return r.FindAll(ctx,
		specification.ByBatchID{BatchID: batchId},
		specification.OrderBy{Field: "created_at"},
	)
}

func (r *ProcessingJobRepositoryImpl) ListByUser(ctx context.Context, userId uuid.UUID, status *entity.JobStatus, limit, offset int) ([]*entity.ProcessingJob, error) {
	specs := []specification.Specification{
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if status != nil {
		specs = append(specs, specification.ByStatus{Status: string(*status)})
	}
	return r.FindAll(ctx, specs...)
}

type ProcessingStepRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProcessingStepMapper
}

func NewProcessingStepRepository(db *gorm.DB) contract.ProcessingStepRepository {
	return &ProcessingStepRepositoryImpl{
		db:     db,
		mapper: mapper.NewProcessingStepMapper(),
	}
}

func (r *ProcessingStepRepositoryImpl) Append(ctx context.Context, step *entity.ProcessingStep) error {
	m := r.mapper.ToModel(step)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProcessingStepRepositoryImpl) ListByJobId(ctx context.Context, jobId string) ([]*entity.ProcessingStep, error) {
	var models []*model.ProcessingStep
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
