package post

import (
	"context"
	"time"

	"xclone/internal/core/post"
	"xclone/internal/core/user"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	// FindByID loads the post with its author, likes and comments.
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	UpdateContent(ctx context.Context, post *post.Post) error
	// Delete removes the post together with its likes, comments and the
	// mirrored liked_posts rows.
	Delete(ctx context.Context, id uuid.UUID) error
	// AddLike and RemoveLike write post_likes and liked_posts in one transaction.
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	LikeUserIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	AddComment(ctx context.Context, comment *post.Comment) error
}

// LikeIndexRepository finds and repairs drift between post_likes and liked_posts.
type LikeIndexRepository interface {
	FindMissingLikedPosts(ctx context.Context, limit int) ([]*user.LikedPost, error)
	FindOrphanLikedPosts(ctx context.Context, limit int) ([]*user.LikedPost, error)
	InsertLikedPosts(ctx context.Context, rows []*user.LikedPost) error
	DeleteLikedPosts(ctx context.Context, rows []*user.LikedPost) error
}

// DTOها برای UseCase
type PostDTO struct {
	ID        string            `json:"_id"`
	User      *userPort.UserDTO `json:"user,omitempty"`
	Text      string            `json:"text"`
	Img       string            `json:"img"`
	Likes     []string          `json:"likes"`
	Comments  []*CommentDTO     `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type CommentDTO struct {
	ID        string            `json:"_id"`
	Text      string            `json:"text"`
	User      *userPort.UserDTO `json:"user"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewPostDTO builds the response for a post. Likes and comments are always
// non-nil so an untouched post serializes as empty arrays.
func NewPostDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID.String(),
		Text:      p.Text,
		Img:       p.Img,
		Likes:     make([]string, 0, len(p.Likes)),
		Comments:  make([]*CommentDTO, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User.ID != uuid.Nil {
		dto.User = userPort.NewUserDTO(&p.User)
	} else {
		dto.User = &userPort.UserDTO{ID: p.UserID.String()}
	}
	for _, l := range p.Likes {
		dto.Likes = append(dto.Likes, l.UserID.String())
	}
	for i := range p.Comments {
		c := &p.Comments[i]
		author := &userPort.UserDTO{ID: c.UserID.String()}
		if c.User.ID != uuid.Nil {
			author = userPort.NewUserDTO(&c.User)
		}
		dto.Comments = append(dto.Comments, &CommentDTO{
			ID:        c.ID.String(),
			Text:      c.Text,
			User:      author,
			CreatedAt: c.CreatedAt,
		})
	}
	return dto
}

func NewPostDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, NewPostDTO(p))
	}
	return dtos
}
