package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/contract"
	"paper-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProcessingJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]*entity.ProcessingJob
}

func NewProcessingJobRepository() *ProcessingJobRepository {
	return &ProcessingJobRepository{
		jobs: make(map[string]*entity.ProcessingJob),
	}
}

var _ contract.ProcessingJobRepository = (*ProcessingJobRepository)(nil)

func (r *ProcessingJobRepository) Create(ctx context.Context, job *entity.ProcessingJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.Id == uuid.Nil {
		job.Id = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	cp := *job
	r.jobs[job.JobId] = &cp
	return nil
}

func (r *ProcessingJobRepository) Update(ctx context.Context, job *entity.ProcessingJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *job
	r.jobs[job.JobId] = &cp
	return nil
}

func (r *ProcessingJobRepository) FindByJobId(ctx context.Context, jobId string) (*entity.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobId]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (r *ProcessingJobRepository) matches(job *entity.ProcessingJob, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByJobID:
			if job.JobId != s.JobID {
				return false
			}
		case specification.ByBatchID:
			if job.BatchId == nil || *job.BatchId != s.BatchID {
				return false
			}
		case specification.ByStatus:
			if string(job.Status) != s.Status {
				return false
			}
		case specification.OwnedByUser:
			if job.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func (r *ProcessingJobRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.ProcessingJob
	for _, job := range r.jobs {
		if r.matches(job, specs) {
			cp := *job
			out = append(out, &cp)
		}
	}

	desc := false
	limit, offset := 0, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			desc = s.Desc
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProcessingJobRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, job := range r.jobs {
		if r.matches(job, specs) {
			count++
		}
	}
	return count, nil
}

func (r *ProcessingJobRepository) ListByBatch(ctx context.Context, batchId string) ([]*entity.ProcessingJob, error) {
	return r.FindAll(ctx,
		specification.ByBatchID{BatchID: batchId},
		specification.OrderBy{Field: "created_at"},
	)
}

func (r *ProcessingJobRepository) ListByUser(ctx context.Context, userId uuid.UUID, status *entity.JobStatus, limit, offset int) ([]*entity.ProcessingJob, error) {
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

type ProcessingStepRepository struct {
	mu    sync.RWMutex
	steps map[string][]*entity.ProcessingStep
}

func NewProcessingStepRepository() *ProcessingStepRepository {
	return &ProcessingStepRepository{
		steps: make(map[string][]*entity.ProcessingStep),
	}
}

var _ contract.ProcessingStepRepository = (*ProcessingStepRepository)(nil)

func (r *ProcessingStepRepository) Append(ctx context.Context, step *entity.ProcessingStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if step.Id == uuid.Nil {
		step.Id = uuid.New()
	}
	if step.CreatedAt.IsZero() {
		step.CreatedAt = time.Now()
	}
	cp := *step
	r.steps[step.JobId] = append(r.steps[step.JobId], &cp)
	return nil
}

func (r *ProcessingStepRepository) ListByJobId(ctx context.Context, jobId string) ([]*entity.ProcessingStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	steps := r.steps[jobId]
	out := make([]*entity.ProcessingStep, len(steps))
	for i, s := range steps {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}
