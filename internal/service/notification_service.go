package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/config"
	"github.com/spec-kit/plot-service/internal/events"
)

// NotificationService consumes domain events for the audit trail and
// downstream webhook notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.WebhookConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.WebhookConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPlotAllocated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventPlotReleased, n.handleEvent)
	n.dispatcher.Subscribe(events.EventZoneCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("actor", event.Actor.Subject),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// sendWebhookNotificationStub logs intent instead of calling out. A real
// integration would POST the event to the configured URL.
func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.URL == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.URL),
		zap.String("event_id", event.ID),
	)
}
