package mapper

import (
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/model"
)

type ProcessingJobMapper struct{}

func NewProcessingJobMapper() *ProcessingJobMapper {
	return &ProcessingJobMapper{}
}

func (m *ProcessingJobMapper) ToEntity(e *model.ProcessingJob) *entity.ProcessingJob {
	if e == nil {
		return nil
	}

	return &entity.ProcessingJob{
		Id:           e.Id,
		JobId:        e.JobId,
		BatchId:      e.BatchId,
		DocumentId:   e.DocumentId,
		Filename:     e.Filename,
		Status:       entity.JobStatus(e.Status),
		Progress:     e.Progress,
		CurrentStep:  e.CurrentStep,
		ErrorMessage: e.ErrorMessage,
		RetryCount:   e.RetryCount,
		UserId:       e.UserId,
		JobMetadata:  e.JobMetadata,
		CreatedAt:    e.CreatedAt,
		StartedAt:    e.StartedAt,
		CompletedAt:  e.CompletedAt,
	}
}

func (m *ProcessingJobMapper) ToModel(e *entity.ProcessingJob) *model.ProcessingJob {
	if e == nil {
		return nil
	}

	return &model.ProcessingJob{
		Id:           e.Id,
		JobId:        e.JobId,
		BatchId:      e.BatchId,
		DocumentId:   e.DocumentId,
		Filename:     e.Filename,
		Status:       string(e.Status),
		Progress:     e.Progress,
		CurrentStep:  e.CurrentStep,
		ErrorMessage: e.ErrorMessage,
		RetryCount:   e.RetryCount,
		UserId:       e.UserId,
		JobMetadata:  e.JobMetadata,
		CreatedAt:    e.CreatedAt,
		StartedAt:    e.StartedAt,
		CompletedAt:  e.CompletedAt,
	}
}

func (m *ProcessingJobMapper) ToEntities(jobs []*model.ProcessingJob) []*entity.ProcessingJob {
	entities := make([]*entity.ProcessingJob, len(jobs))
	for i, e := range jobs {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

type ProcessingStepMapper struct{}

func NewProcessingStepMapper() *ProcessingStepMapper {
	return &ProcessingStepMapper{}
}

func (m *ProcessingStepMapper) ToEntity(e *model.ProcessingStep) *entity.ProcessingStep {
	if e == nil {
		return nil
	}

	return &entity.ProcessingStep{
		Id:         e.Id,
		JobId:      e.JobId,
		StepName:   e.StepName,
		Status:     entity.StepStatus(e.Status),
		Details:    e.Details,
		DurationMs: e.DurationMs,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *ProcessingStepMapper) ToModel(e *entity.ProcessingStep) *model.ProcessingStep {
	if e == nil {
		return nil
	}

	return &model.ProcessingStep{
		Id:         e.Id,
		JobId:      e.JobId,
		StepName:   e.StepName,
		Status:     string(e.Status),
		Details:    e.Details,
		DurationMs: e.DurationMs,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *ProcessingStepMapper) ToEntities(steps []*model.ProcessingStep) []*entity.ProcessingStep {
	entities := make([]*entity.ProcessingStep, len(steps))
	for i, e := range steps {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
