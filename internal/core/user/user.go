package user

import (
	"time"

	"xclone/internal/core/apperr"

	"github.com/gofrs/uuid"
)

var (
	ErrUserNotFound = &apperr.NotFoundError{Resource: "User", Message: "User not found"}
)

type User struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	Username   string    `gorm:"type:varchar(64);unique;not null"`
	FullName   string    `gorm:"not null"`
	Email      string    `gorm:"type:varchar(255);unique;not null"`
	Mobile     string    `gorm:"type:varchar(32);unique;not null"`
	Password   string    `gorm:"not null" json:"-"`
	ProfileImg string    `gorm:"type:varchar(512);default:''"`
	CoverImg   string    `gorm:"type:varchar(512);default:''"`
	Bio        string    `gorm:"type:text"`
	Link       string    `gorm:"type:varchar(512);default:''"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// LikedPost mirrors a row of post_likes from the user's side. It is kept in
// step with the post likes inside the same transaction.
type LikedPost struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36);index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikedPost) TableName() string { return "liked_posts" }
