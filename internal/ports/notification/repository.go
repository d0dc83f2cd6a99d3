package notification

import (
	"context"

	"xclone/internal/core/notification"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
}

// NotificationPublisher hands a stored notification to downstream delivery.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *notification.Notification) error
}

// Emitter is what the interaction services depend on.
type Emitter interface {
	Emit(ctx context.Context, n *notification.Notification) error
}

type NotificationDTO struct {
	ID        string `json:"_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"createdAt"`
}

func NewNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID.String(),
		From:      n.From.String(),
		To:        n.To.String(),
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Unix(),
	}
}
