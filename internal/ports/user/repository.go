package user

import (
	"context"
	"time"

	"xclone/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	// FindTaken returns a user other than excludeID already holding one of the
	// given username, email or mobile values.
	FindTaken(ctx context.Context, username, email, mobile string, excludeID uuid.UUID) (*user.User, error)
	Search(ctx context.Context, query string) ([]*user.User, error)
	Update(ctx context.Context, user *user.User) error
	LikedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// UserDTO is the public view of a user. The password hash never leaves the
// entity.
type UserDTO struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ProfileDTO struct {
	UserDTO
	Followers  []string `json:"followers"`
	Following  []string `json:"following"`
	LikedPosts []string `json:"likedPosts"`
}

// SearchUserDTO carries only what the search results render.
type SearchUserDTO struct {
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg"`
}

type UpdateUserInput struct {
	FullName        *string
	Username        *string
	Email           *string
	Bio             *string
	Link            *string
	CurrentPassword string
	NewPassword     string
	ProfileImg      string
	CoverImg        string
}

func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:         u.ID.String(),
		Username:   u.Username,
		FullName:   u.FullName,
		Email:      u.Email,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
		Bio:        u.Bio,
		Link:       u.Link,
		CreatedAt:  u.CreatedAt,
	}
}

func NewUserDTOs(users []*user.User) []*UserDTO {
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, NewUserDTO(u))
	}
	return dtos
}

// IDStrings converts ids to their string form, never returning nil.
func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
