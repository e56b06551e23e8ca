package events

import (
	"context"

	"finance-tracker-backend/internal/models"
)

type Publisher interface {
	PublishNotification(ctx context.Context, n models.Notification) error
}

// DefaultPublisher is set at startup when AMQP_URL is configured. A nil
// publisher disables event publishing.
var DefaultPublisher Publisher

// PublishNotification sends n through DefaultPublisher, if any.
func PublishNotification(ctx context.Context, n models.Notification) error {
	if DefaultPublisher == nil {
		return nil
	}
	return DefaultPublisher.PublishNotification(ctx, n)
}
