package database

import (
	"context"
	"errors"

	"xclone/internal/core/post"
	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	DB *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{DB: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.DB.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := withPostRelations(repo.DB.WithContext(ctx)).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) UpdateContent(ctx context.Context, p *post.Post) error {
	res := repo.DB.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{"text": p.Text, "img": p.Img})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

// Delete removes the post with its likes, comments and mirrored liked_posts
// rows in one transaction.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&user.LikedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&post.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&post.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return post.ErrPostNotFound
		}
		return nil
	})
}

// AddLike writes both sides of the like. Existing rows are left alone so a
// repeated or concurrent like is harmless.
func (repo *PostRepositoryDatabase) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ignore := tx.Clauses(clause.OnConflict{DoNothing: true})
		if err := ignore.Create(&post.Like{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return ignore.Create(&user.LikedPost{UserID: userID, PostID: postID}).Error
	})
}

func (repo *PostRepositoryDatabase) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&post.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&user.LikedPost{}).Error
	})
}

func (repo *PostRepositoryDatabase) LikeUserIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := repo.DB.WithContext(ctx).
		Model(&post.Like{}).
		Where("post_id = ?", postID).
		Order("created_at").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *PostRepositoryDatabase) AddComment(ctx context.Context, c *post.Comment) error {
	return repo.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at")
}

// withPostRelations preloads author, likes, comments and comment authors.
func withPostRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Likes", oldestFirst).
		Preload("Comments", oldestFirst).
		Preload("Comments.User")
}
