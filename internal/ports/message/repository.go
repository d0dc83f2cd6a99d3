package message

import (
	"context"
	"time"

	"xclone/internal/core/message"

	"github.com/gofrs/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) (*message.Message, error)
	// FindConversation returns the messages exchanged between a and b, oldest first.
	FindConversation(ctx context.Context, a, b uuid.UUID) ([]*message.Message, error)
}

type MessageDTO struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"timestamp"`
}

func NewMessageDTO(m *message.Message) *MessageDTO {
	return &MessageDTO{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
	}
}
