package message

import (
	"time"

	"xclone/internal/core/apperr"

	"github.com/gofrs/uuid"
)

var ErrEmptyMessage = apperr.NewValidationError("message", "Message is required")

type Message struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	SenderID   uuid.UUID `gorm:"type:char(36);not null;index:idx_conversation"`
	ReceiverID uuid.UUID `gorm:"type:char(36);not null;index:idx_conversation"`
	Message    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}
