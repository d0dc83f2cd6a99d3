package database

import (
	"context"

	"xclone/internal/core/notification"

	"gorm.io/gorm"
)

type NotificationRepositoryDatabase struct {
	DB *gorm.DB
}

func NewNotificationRepositoryDatabase(db *gorm.DB) *NotificationRepositoryDatabase {
	return &NotificationRepositoryDatabase{DB: db}
}

func (repo *NotificationRepositoryDatabase) Create(ctx context.Context, n *notification.Notification) error {
	return repo.DB.WithContext(ctx).Create(n).Error
}
