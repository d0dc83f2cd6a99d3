package notification

import (
	"time"

	"github.com/gofrs/uuid"
)

type Type string

const (
	TypeLike   Type = "like"
	TypeFollow Type = "follow"
)

type Notification struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	From      uuid.UUID `gorm:"column:from_user_id;type:char(36);not null"`
	To        uuid.UUID `gorm:"column:to_user_id;type:char(36);not null;index"`
	Type      Type      `gorm:"type:varchar(20);not null"`
	Read      bool      `gorm:"column:is_read;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
