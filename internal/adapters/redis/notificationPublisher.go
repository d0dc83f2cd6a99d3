package redis

import (
	"context"
	"encoding/json"

	"xclone/internal/core/notification"
	notificationPort "xclone/internal/ports/notification"

	"github.com/go-redis/redis/v8"
)

// ChannelPrefix is followed by the recipient id.
const ChannelPrefix = "notifications:"

type NotificationPublisherRedis struct {
	Client *redis.Client
}

func NewNotificationPublisherRedis(client *redis.Client) *NotificationPublisherRedis {
	return &NotificationPublisherRedis{
		Client: client,
	}
}

// Publish: ارسال اعلان روی کانال گیرنده
func (r *NotificationPublisherRedis) Publish(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(notificationPort.NewNotificationDTO(n))
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, Channel(n.To.String()), payload).Err()
}

func Channel(userID string) string {
	return ChannelPrefix + userID
}
