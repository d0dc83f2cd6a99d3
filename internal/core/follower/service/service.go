package followerapp

import (
	"context"
	"fmt"

	"xclone/internal/core/apperr"
	followerEntity "xclone/internal/core/follower"
	"xclone/internal/core/notification"
	userEntity "xclone/internal/core/user"
	followerPort "xclone/internal/ports/follower"
	notificationPort "xclone/internal/ports/notification"
	userPort "xclone/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// SuggestedUsersLimit caps GetSuggestedUsers.
const SuggestedUsersLimit = 4

var ErrFollowSelf = apperr.NewValidationError("id", "You can't follow/unfollow yourself")

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	Notifier           notificationPort.Emitter
	Logger             *zap.Logger
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	notifier notificationPort.Emitter,
	logger *zap.Logger,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Notifier:           notifier,
		Logger:             logger,
	}
}

// FollowUnfollowUser toggles the follow edge from followerID to followeeID and
// reports whether the edge exists afterwards.
func (s *FollowerService) FollowUnfollowUser(ctx context.Context, followerID, followeeID string) (bool, error) {
	me, err := s.findUser(ctx, followerID)
	if err != nil {
		return false, err
	}
	target, err := s.findUser(ctx, followeeID)
	if err != nil {
		return false, err
	}
	// ids are compared parsed, "ABC..." and "abc..." are the same user
	if me.ID == target.ID {
		s.Logger.Warn("Cannot follow yourself", zap.String("userID", me.ID.String()))
		return false, ErrFollowSelf
	}

	following, err := s.FollowerRepository.IsFollowing(ctx, me.ID, target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow state: %w", err)
	}

	if following {
		if err := s.FollowerRepository.UnfollowUser(ctx, me.ID, target.ID); err != nil {
			return false, fmt.Errorf("failed to unfollow user: %w", err)
		}
		s.Logger.Info("User unfollowed", zap.String("follower", followerID), zap.String("followee", followeeID))
		return false, nil
	}

	f := &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     target.ID,
		FollowerID: me.ID,
	}
	created, err := s.FollowerRepository.FollowUser(ctx, f)
	if err != nil {
		return false, fmt.Errorf("failed to follow user: %w", err)
	}
	if !created {
		// a concurrent request inserted the edge first and already notified
		return true, nil
	}
	s.Logger.Info("User followed", zap.String("follower", followerID), zap.String("followee", followeeID))

	if s.Notifier != nil {
		n := &notification.Notification{
			ID:   uuid.Must(uuid.NewV4()),
			From: me.ID,
			To:   target.ID,
			Type: notification.TypeFollow,
		}
		if err := s.Notifier.Emit(ctx, n); err != nil {
			s.Logger.Warn("Could not emit follow notification", zap.String("to", followeeID), zap.Error(err))
		}
	}
	return true, nil
}

// GetFollowingUsers returns the users userID follows.
func (s *FollowerService) GetFollowingUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	edges, err := s.FollowerRepository.GetFollowingByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}

	users := make([]*userEntity.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, &e.User)
	}
	return userPort.NewUserDTOs(users), nil
}

// GetFollowersByUserID returns the users following userID.
func (s *FollowerService) GetFollowersByUserID(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	edges, err := s.FollowerRepository.GetFollowersByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}

	users := make([]*userEntity.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, &e.Follower)
	}
	return userPort.NewUserDTOs(users), nil
}

// GetSuggestedUsers returns users not yet followed by userID, newest first.
func (s *FollowerService) GetSuggestedUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.FollowerRepository.SuggestUsers(ctx, u.ID, SuggestedUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load suggested users: %w", err)
	}
	return userPort.NewUserDTOs(users), nil
}

func (s *FollowerService) findUser(ctx context.Context, userID string) (*userEntity.User, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	return s.UserRepository.FindByID(ctx, id)
}
