package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeDocumentProcessed = "DOCUMENT_PROCESSED"
	TypeJobFailed         = "JOB_FAILED"
)

// NewDocumentProcessed signals that a document finished the full pipeline.
func NewDocumentProcessed(jobID, documentID string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentProcessed,
		Data: map[string]interface{}{
			"job_id":      jobID,
			"document_id": documentID,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewJobFailed signals that a job exhausted its retries or failed terminally.
func NewJobFailed(jobID, errorMessage string, retryCount int) Event {
	return BaseEvent{
		Type: TypeJobFailed,
		Data: map[string]interface{}{
			"job_id":      jobID,
			"error":       errorMessage,
			"retry_count": retryCount,
		},
		OccurredAt: time.Now(),
	}
}
