package database

import (
	"context"

	"xclone/internal/core/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeIndexRepositoryDatabase compares post_likes with liked_posts for the
// reconciler. post_likes is the authoritative side.
type LikeIndexRepositoryDatabase struct {
	DB *gorm.DB
}

func NewLikeIndexRepositoryDatabase(db *gorm.DB) *LikeIndexRepositoryDatabase {
	return &LikeIndexRepositoryDatabase{DB: db}
}

// FindMissingLikedPosts returns post_likes rows with no liked_posts mirror.
func (repo *LikeIndexRepositoryDatabase) FindMissingLikedPosts(ctx context.Context, limit int) ([]*user.LikedPost, error) {
	var rows []*user.LikedPost
	err := repo.DB.WithContext(ctx).
		Table("post_likes").
		Select("post_likes.user_id, post_likes.post_id, post_likes.created_at").
		Joins("LEFT JOIN liked_posts ON liked_posts.user_id = post_likes.user_id AND liked_posts.post_id = post_likes.post_id").
		Where("liked_posts.user_id IS NULL").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// FindOrphanLikedPosts returns liked_posts rows with no post_likes row.
func (repo *LikeIndexRepositoryDatabase) FindOrphanLikedPosts(ctx context.Context, limit int) ([]*user.LikedPost, error) {
	var rows []*user.LikedPost
	err := repo.DB.WithContext(ctx).
		Table("liked_posts").
		Select("liked_posts.user_id, liked_posts.post_id, liked_posts.created_at").
		Joins("LEFT JOIN post_likes ON post_likes.user_id = liked_posts.user_id AND post_likes.post_id = liked_posts.post_id").
		Where("post_likes.user_id IS NULL").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (repo *LikeIndexRepositoryDatabase) InsertLikedPosts(ctx context.Context, rows []*user.LikedPost) error {
	if len(rows) == 0 {
		return nil
	}
	return repo.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (repo *LikeIndexRepositoryDatabase) DeleteLikedPosts(ctx context.Context, rows []*user.LikedPost) error {
	if len(rows) == 0 {
		return nil
	}
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			if err := tx.Where("user_id = ? AND post_id = ?", r.UserID, r.PostID).Delete(&user.LikedPost{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
