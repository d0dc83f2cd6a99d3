package database

import (
	"context"

	"xclone/internal/core/post"
	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FeedRepositoryDatabase serves the read-only post queries behind the feeds.
type FeedRepositoryDatabase struct {
	DB *gorm.DB
}

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{DB: db}
}

func (repo *FeedRepositoryDatabase) FindAll(ctx context.Context) ([]*post.Post, error) {
	return repo.find(repo.newest(ctx))
}

func (repo *FeedRepositoryDatabase) FindByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]*post.Post, error) {
	if len(ownerIDs) == 0 {
		return []*post.Post{}, nil
	}
	return repo.find(repo.newest(ctx).Where("user_id IN ?", ownerIDs))
}

func (repo *FeedRepositoryDatabase) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}
	return repo.find(repo.newest(ctx).Where("id IN ?", ids))
}

func (repo *FeedRepositoryDatabase) Search(ctx context.Context, query string) ([]*post.Post, error) {
	pattern := containsPattern(query)
	authors := repo.DB.WithContext(ctx).
		Model(&user.User{}).
		Select("id").
		Where("LOWER(username) LIKE ?", pattern)

	return repo.find(repo.newest(ctx).
		Where("LOWER(text) LIKE ? OR user_id IN (?)", pattern, authors))
}

func (repo *FeedRepositoryDatabase) newest(ctx context.Context) *gorm.DB {
	return withPostRelations(repo.DB.WithContext(ctx)).Order("created_at DESC")
}

func (repo *FeedRepositoryDatabase) find(q *gorm.DB) ([]*post.Post, error) {
	posts := []*post.Post{}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
