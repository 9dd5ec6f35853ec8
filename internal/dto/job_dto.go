package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobResponse struct {
	JobId        string                 `json:"job_id"`
	BatchId      *string                `json:"batch_id,omitempty"`
	DocumentId   *uuid.UUID             `json:"document_id,omitempty"`
	Filename     string                 `json:"filename"`
	Status       string                 `json:"status"`
	Progress     int                    `json:"progress"`
	CurrentStep  *string                `json:"current_step,omitempty"`
	ErrorMessage *string                `json:"error_message,omitempty"`
	RetryCount   int                    `json:"retry_count"`
	JobMetadata  map[string]interface{} `json:"job_metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	StartedAt    *time.Time             `json:"started_at,omitempty"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

type StepResponse struct {
	StepName   string                 `json:"step_name"`
	Status     string                 `json:"status"`
	Details    map[string]interface{} `json:"details,omitempty"`
	DurationMs *int64                 `json:"duration_ms,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ShowJobResponse struct {
	Job   JobResponse    `json:"job"`
	Steps []StepResponse `json:"steps"`
}

type ListJobsResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}

// BatchSummaryResponse is derived from the batch's jobs on read; batches
// have no row of their own.
type BatchSummaryResponse struct {
	BatchId     string  `json:"batch_id"`
	TotalJobs   int     `json:"total_jobs"`
	Completed   int     `json:"completed"`
	Failed      int     `json:"failed"`
	Processing  int     `json:"processing"`
	Pending     int     `json:"pending"`
	Cancelled   int     `json:"cancelled"`
	AvgProgress float64 `json:"avg_progress"`
	Status      string  `json:"status"`
}

type CancelJobResponse struct {
	JobId  string `json:"job_id"`
	Status string `json:"status"`
}
