package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/behnamfe76/user-service/internal/config"
	"github.com/behnamfe76/user-service/internal/events"
)

// NotificationService turns user lifecycle events into outbound notifications.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger, cfg: cfg}
}

// Notify delivers event through the channels configured for its type. Unknown types are ignored.
func (n *NotificationService) Notify(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventUserRegistered:
		n.logger.Info("user registered", zap.Int64("user_id", event.UserID), zap.String("event_id", event.ID))
		n.sendEmail(ctx, event)
		n.sendWebhook(ctx, event)
	case events.EventUserUpdated, events.EventUserDeleted:
		n.logger.Info(string(event.Type), zap.Int64("user_id", event.UserID), zap.String("event_id", event.ID))
		n.sendWebhook(ctx, event)
	}
	return nil
}

// sendEmail only logs; no mail transport is configured for this service.
func (n *NotificationService) sendEmail(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
