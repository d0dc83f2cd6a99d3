package userapp

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"xclone/internal/core/apperr"
	userEntity "xclone/internal/core/user"
	followerPort "xclone/internal/ports/follower"
	"xclone/internal/ports/objectstore"
	userPort "xclone/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = &apperr.UnauthorizedError{Message: "Invalid username or password"}
	ErrInvalidToken       = &apperr.UnauthorizedError{Message: "Unauthorized: Invalid Token"}
	ErrInvalidEmail       = apperr.NewValidationError("email", "Invalid email format")
	ErrShortPassword      = apperr.NewValidationError("password", "Password must be at least 6 characters long")
	ErrEmptyQuery         = apperr.NewValidationError("query", "query is required")
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	Images             objectstore.ImageStore
	Logger             *zap.Logger
	jwtKey             []byte
	tokenTTL           time.Duration
}

func NewUserService(
	repo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	images objectstore.ImageStore,
	jwtKey []byte,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		UserRepository:     repo,
		FollowerRepository: followerRepo,
		Images:             images,
		Logger:             logger,
		jwtKey:             jwtKey,
		tokenTTL:           tokenTTL,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, fullName, username, email, mobile, password string) (*userPort.UserDTO, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)

	required := []struct{ field, value string }{
		{"fullName", fullName},
		{"username", username},
		{"email", email},
		{"mobile", mobile},
		{"password", password},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, apperr.NewValidationError(r.field, r.field+" is required")
		}
	}
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrShortPassword
	}

	// بررسی اینکه آیا یوزرنیم، ایمیل یا موبایل قبلاً ثبت شده است
	if err := s.ensureAvailable(ctx, username, email, mobile, uuid.Nil); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		FullName: fullName,
		Username: username,
		Email:    email,
		Mobile:   mobile,
		Password: string(hashedPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Logger.Info("User registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.Logger.Debug("Invalid password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// generateJWT برای تولید توکن JWT
func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    "xclone",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ValidateToken returns the user id carried by a token issued by LoginUser.
func (s *UserService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// GetMe returns the profile of the authenticated user.
func (s *UserService) GetMe(ctx context.Context, userID string) (*userPort.ProfileDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u)
}

func (s *UserService) GetUserProfile(ctx context.Context, username string) (*userPort.ProfileDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, u)
}

// SearchUsers matches usernames case-insensitively.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*userPort.UserDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	users, err := s.UserRepository.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return userPort.NewUserDTOs(users), nil
}

// UpdateUser applies the non-nil fields of in. Changing the password needs
// both the current and the new one.
func (s *UserService) UpdateUser(ctx context.Context, userID string, in *userPort.UpdateUserInput) (*userPort.ProfileDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return nil, apperr.NewValidationError("password", "Please provide both current password and new password")
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, apperr.NewValidationError("currentPassword", "Current password is incorrect")
		}
		if len(in.NewPassword) < minPasswordLength {
			return nil, ErrShortPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = string(hashed)
	}

	var username, email string
	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" && v != u.Username {
			username = v
		}
	}
	if in.Email != nil {
		if v := strings.TrimSpace(*in.Email); v != "" && v != u.Email {
			if !validEmail(v) {
				return nil, ErrInvalidEmail
			}
			email = v
		}
	}
	if username != "" || email != "" {
		if err := s.ensureAvailable(ctx, username, email, "", u.ID); err != nil {
			return nil, err
		}
		if username != "" {
			u.Username = username
		}
		if email != "" {
			u.Email = email
		}
	}

	if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Link != nil {
		u.Link = strings.TrimSpace(*in.Link)
	}

	profileImg, err := objectstore.ParseDataURI(in.ProfileImg)
	if err != nil {
		return nil, err
	}
	coverImg, err := objectstore.ParseDataURI(in.CoverImg)
	if err != nil {
		return nil, err
	}

	// old images are dropped only once the new ones are stored and saved
	uploaded, err := s.uploadImages(ctx, profileImg, coverImg)
	if err != nil {
		return nil, err
	}
	var stale []string
	if profileImg != nil {
		stale = append(stale, u.ProfileImg)
		u.ProfileImg = uploaded[0]
	}
	if coverImg != nil {
		stale = append(stale, u.CoverImg)
		u.CoverImg = uploaded[1]
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		s.deleteImages(ctx, uploaded[:]...)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.deleteImages(ctx, stale...)
	return s.profile(ctx, u)
}

// uploadImages stores the profile and cover images, skipping nil ones. If an
// upload fails the images already stored are removed.
func (s *UserService) uploadImages(ctx context.Context, imgs ...*objectstore.Image) ([2]string, error) {
	var urls [2]string
	for i, img := range imgs {
		if img == nil {
			continue
		}
		url, err := s.Images.Upload(ctx, objectstore.FolderProfiles, img)
		if err != nil {
			s.deleteImages(ctx, urls[:]...)
			return [2]string{}, fmt.Errorf("upload profile image: %w", err)
		}
		urls[i] = url
	}
	return urls, nil
}

func (s *UserService) deleteImages(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.Images.Delete(ctx, url); err != nil {
			s.Logger.Warn("Could not delete stored image", zap.String("url", url), zap.Error(err))
		}
	}
}

func (s *UserService) ensureAvailable(ctx context.Context, username, email, mobile string, exclude uuid.UUID) error {
	taken, err := s.UserRepository.FindTaken(ctx, username, email, mobile, exclude)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("check user availability: %w", err)
	}
	switch {
	case username != "" && strings.EqualFold(taken.Username, username):
		return &apperr.ConflictError{Message: "Username is already taken"}
	case email != "" && strings.EqualFold(taken.Email, email):
		return &apperr.ConflictError{Message: "Email is already taken"}
	default:
		return &apperr.ConflictError{Message: "Mobile is already taken"}
	}
}

func (s *UserService) profile(ctx context.Context, u *userEntity.User) (*userPort.ProfileDTO, error) {
	followers, err := s.FollowerRepository.GetFollowersByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}
	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}
	liked, err := s.UserRepository.LikedPostIDs(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked posts: %w", err)
	}

	return &userPort.ProfileDTO{
		UserDTO:    *userPort.NewUserDTO(u),
		Followers:  userPort.IDStrings(followerPort.FollowerIDs(followers)),
		Following:  userPort.IDStrings(followerPort.FollowingIDs(following)),
		LikedPosts: userPort.IDStrings(liked),
	}, nil
}

func (s *UserService) findUser(ctx context.Context, userID string) (*userEntity.User, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	return s.UserRepository.FindByID(ctx, id)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, ".")
}

