package notificationapp

import (
	"context"
	"fmt"

	"xclone/internal/core/notification"
	notificationPort "xclone/internal/ports/notification"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// NotificationService stores notifications and hands them to the publisher.
// Delivery itself happens downstream.
type NotificationService struct {
	NotificationRepository notificationPort.NotificationRepository
	Publisher              notificationPort.NotificationPublisher
	Logger                 *zap.Logger
}

// NewNotificationService creates the emitter. publisher may be nil.
func NewNotificationService(
	repo notificationPort.NotificationRepository,
	publisher notificationPort.NotificationPublisher,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		NotificationRepository: repo,
		Publisher:              publisher,
		Logger:                 logger,
	}
}

// Emit persists n and then publishes it. Only the write can fail the call.
func (s *NotificationService) Emit(ctx context.Context, n *notification.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.Must(uuid.NewV4())
	}
	n.Read = false

	if err := s.NotificationRepository.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.Publisher == nil {
		return nil
	}
	if err := s.Publisher.Publish(ctx, n); err != nil {
		s.Logger.Warn("Could not publish notification",
			zap.String("notificationID", n.ID.String()),
			zap.String("to", n.To.String()),
			zap.Error(err))
	}
	return nil
}
