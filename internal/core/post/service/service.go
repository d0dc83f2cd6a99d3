package postapp

import (
	"context"
	"fmt"
	"strings"

	"xclone/internal/core/apperr"
	"xclone/internal/core/notification"
	postEntity "xclone/internal/core/post"
	userEntity "xclone/internal/core/user"
	notificationPort "xclone/internal/ports/notification"
	"xclone/internal/ports/objectstore"
	postPort "xclone/internal/ports/post"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// PostService mutates posts: create, update, delete, like/unlike and comment.
type PostService struct {
	PostRepository  postPort.PostRepository
	UserRepository  userPort.UserRepository
	Images          objectstore.ImageStore
	Notifier        notificationPort.Emitter
	NotifySelfLikes bool
	Logger          *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	images objectstore.ImageStore,
	notifier notificationPort.Emitter,
	notifySelfLikes bool,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		UserRepository:  userRepo,
		Images:          images,
		Notifier:        notifier,
		NotifySelfLikes: notifySelfLikes,
		Logger:          logger,
	}
}

// CreatePost creates a post. Any image is uploaded first and only its URL is
// stored on the post.
func (s *PostService) CreatePost(ctx context.Context, userID, text string, img *objectstore.Image) (*postPort.PostDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" && img == nil {
		return nil, postEntity.ErrEmptyPost
	}

	author, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: author.ID,
		Text:   text,
	}

	if img != nil {
		url, err := s.Images.Upload(ctx, objectstore.FolderPosts, img)
		if err != nil {
			return nil, fmt.Errorf("upload post image: %w", err)
		}
		p.Img = url
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		if p.Img != "" {
			s.deleteImage(ctx, p.Img)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	created.User = *author

	s.Logger.Info("Created post", zap.String("postID", created.ID.String()), zap.String("userID", userID))
	return postPort.NewPostDTO(created), nil
}

// UpdatePost replaces the text and/or image of a post owned by userID. A nil
// text leaves the current text untouched.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID string, text *string, img *objectstore.Image) (*postPort.PostDTO, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID.String() != userID {
		return nil, &apperr.UnauthorizedError{Message: "You are not authorized to update this post"}
	}

	if text != nil {
		p.Text = strings.TrimSpace(*text)
	}
	if img == nil && !p.HasContent() {
		return nil, postEntity.ErrEmptyPost
	}

	if img != nil {
		if p.Img != "" {
			s.deleteImage(ctx, p.Img)
		}
		url, err := s.Images.Upload(ctx, objectstore.FolderPosts, img)
		if err != nil {
			return nil, fmt.Errorf("upload post image: %w", err)
		}
		p.Img = url
	}

	if err := s.PostRepository.UpdateContent(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	updated, err := s.PostRepository.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(updated), nil
}

// DeletePost removes the stored image before the record. If the image cannot
// be removed the record is left intact.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID.String() != userID {
		return &apperr.UnauthorizedError{Message: "You are not authorized to delete this post"}
	}

	if p.Img != "" {
		if err := s.Images.Delete(ctx, p.Img); err != nil {
			return fmt.Errorf("delete post image: %w", err)
		}
	}

	if err := s.PostRepository.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.Logger.Info("Deleted post", zap.String("postID", postID), zap.String("userID", userID))
	return nil
}

// LikeUnlikePost flips userID's membership in the post's likes and returns
// the resulting like list. A new like notifies the post owner.
func (s *PostService) LikeUnlikePost(ctx context.Context, userID, postID string) ([]string, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}

	if p.LikedBy(uid) {
		if err := s.PostRepository.RemoveLike(ctx, p.ID, uid); err != nil {
			return nil, fmt.Errorf("failed to unlike post: %w", err)
		}
	} else {
		if err := s.PostRepository.AddLike(ctx, p.ID, uid); err != nil {
			return nil, fmt.Errorf("failed to like post: %w", err)
		}
		if uid != p.UserID || s.NotifySelfLikes {
			s.notify(ctx, &notification.Notification{
				ID:   uuid.Must(uuid.NewV4()),
				From: uid,
				To:   p.UserID,
				Type: notification.TypeLike,
			})
		}
	}

	likes, err := s.PostRepository.LikeUserIDs(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	return userPort.IDStrings(likes), nil
}

// CommentOnPost appends a comment and returns the whole post.
func (s *PostService) CommentOnPost(ctx context.Context, userID, postID, text string) (*postPort.PostDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, postEntity.ErrEmptyComment
	}

	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}

	c := &postEntity.Comment{
		ID:     uuid.Must(uuid.NewV4()),
		PostID: p.ID,
		UserID: uid,
		Text:   text,
	}
	if err := s.PostRepository.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to comment on post: %w", err)
	}

	updated, err := s.PostRepository.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(updated), nil
}

func (s *PostService) findPost(ctx context.Context, postID string) (*postEntity.Post, error) {
	id, err := uuid.FromString(postID)
	if err != nil {
		return nil, postEntity.ErrPostNotFound
	}
	return s.PostRepository.FindByID(ctx, id)
}

func (s *PostService) findUser(ctx context.Context, userID string) (*userEntity.User, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	return s.UserRepository.FindByID(ctx, id)
}

func (s *PostService) deleteImage(ctx context.Context, url string) {
	if err := s.Images.Delete(ctx, url); err != nil {
		s.Logger.Warn("Could not delete stored image", zap.String("url", url), zap.Error(err))
	}
}

func (s *PostService) notify(ctx context.Context, n *notification.Notification) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Emit(ctx, n); err != nil {
		s.Logger.Warn("Could not emit notification",
			zap.String("type", string(n.Type)),
			zap.String("from", n.From.String()),
			zap.String("to", n.To.String()),
			zap.Error(err))
	}
}
