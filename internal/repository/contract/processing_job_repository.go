package contract

import (
	"context"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProcessingJobRepository interface {
	Create(ctx context.Context, job *entity.ProcessingJob) error
	Update(ctx context.Context, job *entity.ProcessingJob) error
	FindByJobId(ctx context.Context, jobId string) (*entity.ProcessingJob, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	ListByBatch(ctx context.Context, batchId string) ([]*entity.ProcessingJob, error)
	ListByUser(ctx context.Context, userId uuid.UUID, status *entity.JobStatus, limit, offset int) ([]*entity.ProcessingJob, error)
}

// ProcessingStepRepository is append-only; steps are never updated or deleted.
type ProcessingStepRepository interface {
	Append(ctx context.Context, step *entity.ProcessingStep) error
	ListByJobId(ctx context.Context, jobId string) ([]*entity.ProcessingStep, error)
}
