package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/profile-registry/internal/config"
	"github.com/spec-kit/profile-registry/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
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
	n.dispatcher.Subscribe(events.EventProfileCreated, n.handleProfileCreated)
	n.dispatcher.Subscribe(events.EventProfileUpdated, n.handleProfileUpdated)
	n.dispatcher.Subscribe(events.EventProfileDeleted, n.handleProfileDeleted)
}

func (n *NotificationService) handleProfileCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProfileCreated", zap.Int64("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProfileUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProfileUpdated", zap.Int64("profile_id", event.ProfileID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProfileDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ProfileDeleted", zap.Int64("profile_id", event.ProfileID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("profile_id", event.ProfileID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("profile_id", event.ProfileID),
		zap.String("event_type", string(event.Type)))
}
