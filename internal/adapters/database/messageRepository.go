package database

import (
	"context"

	"xclone/internal/core/message"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryDatabase struct {
	DB *gorm.DB
}

func NewMessageRepositoryDatabase(db *gorm.DB) *MessageRepositoryDatabase {
	return &MessageRepositoryDatabase{DB: db}
}

func (repo *MessageRepositoryDatabase) Create(ctx context.Context, m *message.Message) (*message.Message, error) {
	if err := repo.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (repo *MessageRepositoryDatabase) FindConversation(ctx context.Context, a, b uuid.UUID) ([]*message.Message, error) {
	msgs := []*message.Message{}
	err := repo.DB.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
