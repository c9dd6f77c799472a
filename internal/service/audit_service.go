package service

import (
	"context"

	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/repository/unitofwork"
	"kurazhelp-be/pkg/events"
	pkgNats "kurazhelp-be/pkg/nats"
)

// IAuditService persists audit events from the event stream into system_logs.
type IAuditService interface {
	Start() error
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pkgNats.Subscriber
	log        logger.ILogger
}

func NewAuditService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pkgNats.Subscriber,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		log:        log,
	}
}

// Start subscribes to the full event stream with a durable consumer and
// writes each event to the system log table.
func (s *auditService) Start() error {
	return s.subscriber.Subscribe("events.>", "audit-log-writer", s.handleEvent)
}

func (s *auditService) handleEvent(ctx context.Context, event events.Event) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.SystemLogRepository().Write(ctx, "info", "audit", event.EventType(), event.Payload()); err != nil {
		s.log.Error("AuditService", "Failed to persist audit event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
