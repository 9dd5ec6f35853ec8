package service

import (
	"context"
	"testing"
	"time"

	"paper-analysis-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedLog struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type capturingLogger struct {
	entries []capturedLog
}

func (l *capturingLogger) Debug(module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, capturedLog{"debug", module, message, details})
}

func (l *capturingLogger) Info(module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, capturedLog{"info", module, message, details})
}

func (l *capturingLogger) Warn(module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, capturedLog{"warn", module, message, details})
}

func (l *capturingLogger) Error(module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, capturedLog{"error", module, message, details})
}

func (l *capturingLogger) Sync() error { return nil }

func TestEventAuditLogsProcessedAsInfo(t *testing.T) {
	log := &capturingLogger{}
	audit := NewEventAuditService(log)

	event := events.NewDocumentProcessed("job_1", "doc_1", 12)
	err := audit.Handle(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, log.entries, 1)
	entry := log.entries[0]
	assert.Equal(t, "info", entry.level)
	assert.Equal(t, "EventAudit", entry.module)
	assert.Equal(t, events.TypeDocumentProcessed, entry.details["event_type"])
	assert.Equal(t, "job_1", entry.details["job_id"])
	assert.Equal(t, "doc_1", entry.details["document_id"])
	assert.Equal(t, 12, entry.details["chunk_count"])
}

func TestEventAuditLogsFailureAsWarning(t *testing.T) {
	log := &capturingLogger{}
	audit := NewEventAuditService(log)

	event := events.NewJobFailed("job_2", "parser exploded", 3)
	err := audit.Handle(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, log.entries, 1)
	entry := log.entries[0]
	assert.Equal(t, "warn", entry.level)
	assert.Equal(t, "parser exploded", entry.details["error"])
	assert.Equal(t, 3, entry.details["retry_count"])
}

func TestEventAuditHandlesSubjectPrefixedType(t *testing.T) {
	log := &capturingLogger{}
	audit := NewEventAuditService(log)

	// Durable consumers see the full subject as the event type.
	event := events.BaseEvent{
		Type:       "pipeline." + events.TypeJobFailed,
		Data:       map[string]interface{}{"job_id": "job_3"},
		OccurredAt: time.Now(),
	}
	err := audit.Handle(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, log.entries, 1)
	assert.Equal(t, "warn", log.entries[0].level)
}

func TestEventAuditToleratesEmptyPayload(t *testing.T) {
	log := &capturingLogger{}
	audit := NewEventAuditService(log)

	err := audit.Handle(context.Background(), events.BaseEvent{Type: "pipeline.custom", OccurredAt: time.Now()})

	require.NoError(t, err)
	require.Len(t, log.entries, 1)
	assert.Equal(t, "info", log.entries[0].level)
	assert.Equal(t, "pipeline.custom", log.entries[0].details["event_type"])
}
