package feedapp

import (
	"context"
	"fmt"
	"strings"

	"xclone/internal/core/apperr"
	userEntity "xclone/internal/core/user"
	feedPort "xclone/internal/ports/feed"
	followerPort "xclone/internal/ports/follower"
	postPort "xclone/internal/ports/post"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ErrNothingFound is returned by Search when neither users nor posts match.
var ErrNothingFound = &apperr.NotFoundError{Resource: "Search", Message: "No users or posts found."}

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = apperr.NewValidationError("query", "query is required")

// FeedService سرویس خواندن فیدها
type FeedService struct {
	FeedRepository     feedPort.FeedRepository
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	Logger             *zap.Logger
}

func NewFeedService(
	feedRepo feedPort.FeedRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		FeedRepository:     feedRepo,
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
		Logger:             logger,
	}
}

// GetAllPosts returns every post, newest first.
func (s *FeedService) GetAllPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.FeedRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return postPort.NewPostDTOs(posts), nil
}

// GetFollowingPosts returns posts authored by the users userID follows.
func (s *FeedService) GetFollowingPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	edges, err := s.FollowerRepository.GetFollowingByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}
	owners := followerPort.FollowingIDs(edges)
	if len(owners) == 0 {
		return []*postPort.PostDTO{}, nil
	}

	posts, err := s.FeedRepository.FindByOwners(ctx, owners)
	if err != nil {
		return nil, fmt.Errorf("failed to load following posts: %w", err)
	}
	return postPort.NewPostDTOs(posts), nil
}

// GetUserPosts returns the posts written by username.
func (s *FeedService) GetUserPosts(ctx context.Context, username string) ([]*postPort.PostDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.FeedRepository.FindByOwners(ctx, []uuid.UUID{u.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load user posts: %w", err)
	}
	return postPort.NewPostDTOs(posts), nil
}

// GetLikedPosts resolves the user's liked-post index into posts. Ids whose
// post no longer exists are skipped.
func (s *FeedService) GetLikedPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.UserRepository.LikedPostIDs(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked posts: %w", err)
	}
	if len(ids) == 0 {
		return []*postPort.PostDTO{}, nil
	}

	posts, err := s.FeedRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked posts: %w", err)
	}
	if len(posts) < len(ids) {
		s.Logger.Debug("Liked post index references missing posts",
			zap.String("userID", userID),
			zap.Int("indexed", len(ids)),
			zap.Int("found", len(posts)))
	}
	return postPort.NewPostDTOs(posts), nil
}

// Search matches users by username and posts by text or author username.
func (s *FeedService) Search(ctx context.Context, query string) (*feedPort.SearchResultDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	users, err := s.UserRepository.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	posts, err := s.FeedRepository.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	if len(users) == 0 && len(posts) == 0 {
		return nil, ErrNothingFound
	}

	result := &feedPort.SearchResultDTO{
		Posts: postPort.NewPostDTOs(posts),
		Users: make([]*userPort.SearchUserDTO, 0, len(users)),
	}
	for _, u := range users {
		result.Users = append(result.Users, &userPort.SearchUserDTO{
			Username:   u.Username,
			ProfileImg: u.ProfileImg,
		})
	}
	return result, nil
}

func (s *FeedService) findUser(ctx context.Context, userID string) (*userEntity.User, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	return s.UserRepository.FindByID(ctx, id)
}
