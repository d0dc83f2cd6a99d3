package redis

import (
	"context"
	"encoding/json"
	"testing"

	"xclone/internal/core/notification"
	notificationPort "xclone/internal/ports/notification"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "notifications:abc", Channel("abc"))
}

func TestNotificationPayload(t *testing.T) {
	n := &notification.Notification{
		ID:   uuid.Must(uuid.NewV4()),
		From: uuid.Must(uuid.NewV4()),
		To:   uuid.Must(uuid.NewV4()),
		Type: notification.TypeFollow,
	}
	raw, err := json.Marshal(notificationPort.NewNotificationDTO(n))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "follow", got["type"])
	assert.Equal(t, n.To.String(), got["to"])
	assert.Equal(t, false, got["read"])
}

func TestPublish_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	pub := NewNotificationPublisherRedis(client)
	err := pub.Publish(context.Background(), &notification.Notification{
		ID:   uuid.Must(uuid.NewV4()),
		To:   uuid.Must(uuid.NewV4()),
		Type: notification.TypeLike,
	})
	assert.Error(t, err)
}
