package service

import (
	"context"
	"errors"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrJobAlreadyTerminal = errors.New("job is already in a terminal state")

type IJobService interface {
	Show(ctx context.Context, userId uuid.UUID, jobId string) (*dto.ShowJobResponse, error)
	List(ctx context.Context, userId uuid.UUID, status *string, limit, offset int) (*dto.ListJobsResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, jobId string) (*dto.CancelJobResponse, error)
	BatchSummary(ctx context.Context, userId uuid.UUID, batchId string) (*dto.BatchSummaryResponse, error)
}

type jobService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewJobService(uowFactory unitofwork.RepositoryFactory) IJobService {
	return &jobService{
		uowFactory: uowFactory,
	}
}

func toJobResponse(job *entity.ProcessingJob) dto.JobResponse {
	return dto.JobResponse{
		JobId:        job.JobId,
		BatchId:      job.BatchId,
		DocumentId:   job.DocumentId,
		Filename:     job.Filename,
		Status:       string(job.Status),
		Progress:     job.Progress,
		CurrentStep:  job.CurrentStep,
		ErrorMessage: job.ErrorMessage,
		RetryCount:   job.RetryCount,
		JobMetadata:  job.JobMetadata,
		CreatedAt:    job.CreatedAt,
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
	}
}

func (s *jobService) findOwnedJob(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, jobId string) (*entity.ProcessingJob, error) {
	job, err := uow.ProcessingJobRepository().FindByJobId(ctx, jobId)
	if err != nil {
		return nil, err
	}
	if job == nil || job.UserId != userId {
		return nil, nil
	}
	return job, nil
}

func (s *jobService) Show(ctx context.Context, userId uuid.UUID, jobId string) (*dto.ShowJobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := s.findOwnedJob(ctx, uow, userId, jobId)
	if err != nil || job == nil {
		return nil, err
	}

	steps, err := uow.ProcessingStepRepository().ListByJobId(ctx, jobId)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowJobResponse{
		Job:   toJobResponse(job),
		Steps: make([]dto.StepResponse, len(steps)),
	}
	for i, st := range steps {
		res.Steps[i] = dto.StepResponse{
			StepName:   st.StepName,
			Status:     string(st.Status),
			Details:    st.Details,
			DurationMs: st.DurationMs,
			CreatedAt:  st.CreatedAt,
		}
	}
	return res, nil
}

func (s *jobService) List(ctx context.Context, userId uuid.UUID, status *string, limit, offset int) (*dto.ListJobsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var st *entity.JobStatus
	if status != nil && *status != "" {
		s := entity.JobStatus(*status)
		st = &s
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	jobs, err := uow.ProcessingJobRepository().ListByUser(ctx, userId, st, limit, offset)
	if err != nil {
		return nil, err
	}

	res := &dto.ListJobsResponse{
		Jobs:  make([]dto.JobResponse, len(jobs)),
		Count: len(jobs),
	}
	for i, j := range jobs {
		res.Jobs[i] = toJobResponse(j)
	}
	return res, nil
}

// Cancel marks a non-terminal job cancelled. The worker observes the new
// status at its next checkpoint and stops.
func (s *jobService) Cancel(ctx context.Context, userId uuid.UUID, jobId string) (*dto.CancelJobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := s.findOwnedJob(ctx, uow, userId, jobId)
	if err != nil || job == nil {
		return nil, err
	}

	if job.Status.IsTerminal() {
		return nil, ErrJobAlreadyTerminal
	}

	now := time.Now()
	job.Status = entity.JobStatusCancelled
	job.CompletedAt = &now
	if err := uow.ProcessingJobRepository().Update(ctx, job); err != nil {
		return nil, err
	}

	return &dto.CancelJobResponse{
		JobId:  job.JobId,
		Status: string(job.Status),
	}, nil
}

func (s *jobService) BatchSummary(ctx context.Context, userId uuid.UUID, batchId string) (*dto.BatchSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	jobs, err := uow.ProcessingJobRepository().ListByBatch(ctx, batchId)
	if err != nil {
		return nil, err
	}

	// scope to the caller's jobs
	owned := jobs[:0]
	for _, j := range jobs {
		if j.UserId == userId {
			owned = append(owned, j)
		}
	}
	if len(owned) == 0 {
		return nil, nil
	}

	res := &dto.BatchSummaryResponse{
		BatchId:   batchId,
		TotalJobs: len(owned),
	}
	progressSum := 0
	for _, j := range owned {
		progressSum += j.Progress
		switch j.Status {
		case entity.JobStatusCompleted:
			res.Completed++
		case entity.JobStatusFailed:
			res.Failed++
		case entity.JobStatusProcessing:
			res.Processing++
		case entity.JobStatusPending:
			res.Pending++
		case entity.JobStatusCancelled:
			res.Cancelled++
		}
	}
	res.AvgProgress = float64(progressSum) / float64(len(owned))

	switch {
	case res.Processing > 0 || res.Pending > 0:
		res.Status = "processing"
	case res.Failed > 0:
		res.Status = "completed_with_errors"
	default:
		res.Status = "completed"
	}
	return res, nil
}
