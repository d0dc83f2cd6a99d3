package messageapp

import (
	"context"
	"fmt"
	"strings"

	messageEntity "xclone/internal/core/message"
	userEntity "xclone/internal/core/user"
	messagePort "xclone/internal/ports/message"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// MessageService سرویس پیام‌های مستقیم
type MessageService struct {
	MessageRepository messagePort.MessageRepository
	UserRepository    userPort.UserRepository
	Logger            *zap.Logger
}

func NewMessageService(repo messagePort.MessageRepository, userRepo userPort.UserRepository, logger *zap.Logger) *MessageService {
	return &MessageService{
		MessageRepository: repo,
		UserRepository:    userRepo,
		Logger:            logger,
	}
}

func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID, text string) (*messagePort.MessageDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, messageEntity.ErrEmptyMessage
	}

	sender, err := uuid.FromString(senderID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	receiver, err := uuid.FromString(receiverID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	if _, err := s.UserRepository.FindByID(ctx, receiver); err != nil {
		return nil, err
	}

	m, err := s.MessageRepository.Create(ctx, &messageEntity.Message{
		ID:         uuid.Must(uuid.NewV4()),
		SenderID:   sender,
		ReceiverID: receiver,
		Message:    text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.Logger.Debug("Message sent", zap.String("sender", senderID), zap.String("receiver", receiverID))
	return messagePort.NewMessageDTO(m), nil
}

// GetChat returns the conversation between userID and otherID, oldest first.
func (s *MessageService) GetChat(ctx context.Context, userID, otherID string) ([]*messagePort.MessageDTO, error) {
	a, errA := uuid.FromString(userID)
	b, errB := uuid.FromString(otherID)
	if errA != nil || errB != nil {
		return []*messagePort.MessageDTO{}, nil
	}

	msgs, err := s.MessageRepository.FindConversation(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat: %w", err)
	}

	dtos := make([]*messagePort.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, messagePort.NewMessageDTO(m))
	}
	return dtos, nil
}
