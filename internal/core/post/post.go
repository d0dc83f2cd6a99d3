package post

import (
	"time"

	"xclone/internal/core/apperr"
	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
)

var (
	ErrPostNotFound = &apperr.NotFoundError{Resource: "Post", Message: "Post not found"}
	ErrEmptyPost    = apperr.NewValidationError("text", "Post must have text or image")
	ErrEmptyComment = apperr.NewValidationError("text", "Text field is required")
)

type Post struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	User      user.User `gorm:"foreignkey:UserID"`
	Text      string    `gorm:"type:text"`
	Img       string    `gorm:"type:varchar(512);default:''"`
	Likes     []Like    `gorm:"foreignkey:PostID"`
	Comments  []Comment `gorm:"foreignkey:PostID"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Like is one entry of a post's like list. The composite key keeps a user
// from appearing twice.
type Like struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36);index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string { return "post_likes" }

type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `gorm:"type:char(36);not null"`
	User      user.User `gorm:"foreignkey:UserID"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// LikedBy reports whether userID is in the post's like list.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// HasContent reports whether the post still carries text or an image.
func (p *Post) HasContent() bool {
	return p.Text != "" || p.Img != ""
}
