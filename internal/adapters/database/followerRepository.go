package database

import (
	"context"

	"xclone/internal/core/follower"
	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	DB *gorm.DB
}

// NewFollowerRepositoryDatabase سازنده FollowerRepositoryDatabase
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{DB: db}
}

// FollowUser inserts the edge; an existing edge for the same pair is kept and
// false is returned.
func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follower) (bool, error) {
	res := repo.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return repo.DB.WithContext(ctx).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Delete(&follower.Follower{}).Error
}

// GetFollowersByUserID returns the edges pointing at userID with the
// follower loaded.
func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follower, error) {
	var followers []*follower.Follower
	err := repo.DB.WithContext(ctx).
		Preload("Follower").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}

// GetFollowingByUserID returns the edges leaving followerID with the followee
// loaded.
func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, followerID uuid.UUID) ([]*follower.Follower, error) {
	var following []*follower.Follower
	err := repo.DB.WithContext(ctx).
		Preload("User").
		Where("follower_id = ?", followerID).
		Order("created_at").
		Find(&following).Error
	if err != nil {
		return nil, err
	}
	return following, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := repo.DB.WithContext(ctx).
		Model(&follower.Follower{}).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) SuggestUsers(ctx context.Context, userID uuid.UUID, limit int) ([]*user.User, error) {
	followed := repo.DB.WithContext(ctx).
		Model(&follower.Follower{}).
		Select("user_id").
		Where("follower_id = ?", userID)

	var users []*user.User
	err := repo.DB.WithContext(ctx).
		Where("id <> ?", userID).
		Where("id NOT IN (?)", followed).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
