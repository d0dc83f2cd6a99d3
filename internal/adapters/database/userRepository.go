package database

import (
	"context"
	"errors"
	"strings"

	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	DB *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{DB: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, userError(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, userError(err)
	}
	return &u, nil
}

// FindTaken ignores empty values so a partial profile update only checks the
// fields it changes.
func (repo *UserRepositoryDatabase) FindTaken(ctx context.Context, username, email, mobile string, excludeID uuid.UUID) (*user.User, error) {
	var conds []string
	var args []interface{}
	if username != "" {
		conds = append(conds, "username = ?")
		args = append(args, username)
	}
	if email != "" {
		conds = append(conds, "email = ?")
		args = append(args, email)
	}
	if mobile != "" {
		conds = append(conds, "mobile = ?")
		args = append(args, mobile)
	}
	if len(conds) == 0 {
		return nil, user.ErrUserNotFound
	}

	q := repo.DB.WithContext(ctx).Where(strings.Join(conds, " OR "), args...)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var u user.User
	if err := q.First(&u).Error; err != nil {
		return nil, userError(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) Search(ctx context.Context, query string) ([]*user.User, error) {
	var users []*user.User
	err := repo.DB.WithContext(ctx).
		Where("LOWER(username) LIKE ?", containsPattern(query)).
		Order("username").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) error {
	return repo.DB.WithContext(ctx).Save(u).Error
}

// LikedPostIDs reads the user-side like index, oldest like first.
func (repo *UserRepositoryDatabase) LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := repo.DB.WithContext(ctx).
		Model(&user.LikedPost{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func userError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrUserNotFound
	}
	return err
}
