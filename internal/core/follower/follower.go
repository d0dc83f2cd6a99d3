package follower

import (
	"time"

	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
)

// Follower is a single follow edge: FollowerID follows UserID. Both the
// followee's followers and the follower's following are read from it.
type Follower struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge"`
	User       user.User `gorm:"foreignkey:UserID"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge;index"`
	Follower   user.User `gorm:"foreignkey:FollowerID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
