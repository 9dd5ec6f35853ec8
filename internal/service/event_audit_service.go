package service

import (
	"context"
	"strings"

	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/pkg/events"
)

// IEventAuditService records every pipeline lifecycle event to the
// application log so operators can trace completed and failed jobs.
type IEventAuditService interface {
	Handle(ctx context.Context, event events.Event) error
}

type eventAuditService struct {
	logger logger.ILogger
}

func NewEventAuditService(log logger.ILogger) IEventAuditService {
	return &eventAuditService{logger: log}
}

// Handle logs the event and acknowledges it. Failures get a warning entry,
// everything else an info entry. It never returns an error so the durable
// consumer does not redeliver audit-only messages.
func (s *eventAuditService) Handle(_ context.Context, event events.Event) error {
	details := event.Payload()
	if details == nil {
		details = map[string]interface{}{}
	}
	details["event_type"] = event.EventType()
	details["occurred_at"] = event.Timestamp()

	if strings.HasSuffix(event.EventType(), events.TypeJobFailed) {
		s.logger.Warn("EventAudit", "Pipeline job failed", details)
		return nil
	}
	s.logger.Info("EventAudit", "Pipeline event received", details)
	return nil
}
