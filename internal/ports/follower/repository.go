package follower

import (
	"context"

	"xclone/internal/core/follower"
	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
)

// FollowerRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowerRepository interface {
	// FollowUser inserts the edge and reports whether a new row was created.
	FollowUser(ctx context.Context, follower *follower.Follower) (bool, error)
	UnfollowUser(ctx context.Context, followerID, followeeID uuid.UUID) error
	GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follower, error)
	GetFollowingByUserID(ctx context.Context, followerID uuid.UUID) ([]*follower.Follower, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	// SuggestUsers returns up to limit users that userID does not follow,
	// excluding userID itself.
	SuggestUsers(ctx context.Context, userID uuid.UUID, limit int) ([]*user.User, error)
}

// FollowingIDs extracts the followee ids from edges returned by GetFollowingByUserID.
func FollowingIDs(edges []*follower.Follower) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(edges))
	for _, f := range edges {
		ids = append(ids, f.UserID)
	}
	return ids
}

// FollowerIDs extracts the follower ids from edges returned by GetFollowersByUserID.
func FollowerIDs(edges []*follower.Follower) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(edges))
	for _, f := range edges {
		ids = append(ids, f.FollowerID)
	}
	return ids
}
