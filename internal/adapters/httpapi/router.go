package httpapi

import (
	"context"

	"xclone/internal/adapters/httpapi/middleware"
	feedPort "xclone/internal/ports/feed"
	messagePort "xclone/internal/ports/message"
	"xclone/internal/ports/objectstore"
	postPort "xclone/internal/ports/post"
	userPort "xclone/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	RegisterUser(ctx context.Context, fullName, username, email, mobile, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	ValidateToken(token string) (string, error)
	GetMe(ctx context.Context, userID string) (*userPort.ProfileDTO, error)
	GetUserProfile(ctx context.Context, username string) (*userPort.ProfileDTO, error)
	SearchUsers(ctx context.Context, query string) ([]*userPort.UserDTO, error)
	UpdateUser(ctx context.Context, userID string, in *userPort.UpdateUserInput) (*userPort.ProfileDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, text string, img *objectstore.Image) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, userID, postID string, text *string, img *objectstore.Image) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID string) error
	LikeUnlikePost(ctx context.Context, userID, postID string) ([]string, error)
	CommentOnPost(ctx context.Context, userID, postID, text string) (*postPort.PostDTO, error)
}

type FeedUseCase interface {
	GetAllPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetFollowingPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error)
	GetUserPosts(ctx context.Context, username string) ([]*postPort.PostDTO, error)
	GetLikedPosts(ctx context.Context, userID string) ([]*postPort.PostDTO, error)
	Search(ctx context.Context, query string) (*feedPort.SearchResultDTO, error)
}

type FollowerUseCase interface {
	FollowUnfollowUser(ctx context.Context, followerID, followeeID string) (bool, error)
	GetFollowingUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
	GetFollowersByUserID(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
	GetSuggestedUsers(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
}

type MessageUseCase interface {
	SendMessage(ctx context.Context, senderID, receiverID, text string) (*messagePort.MessageDTO, error)
	GetChat(ctx context.Context, userID, otherID string) ([]*messagePort.MessageDTO, error)
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	feedUC FeedUseCase,
	followerUC FollowerUseCase,
	messageUC MessageUseCase,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	uc := NewUserController(userUC, logger)
	pc := NewPostController(postUC, logger)
	fd := NewFeedController(feedUC, logger)
	fc := NewFollowerController(followerUC, logger)
	mc := NewMessageController(messageUC, logger)
	auth := middleware.JWTAuthMiddleware(userUC)

	api := r.Group("/api")

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", uc.Signup)
	authGroup.POST("/login", uc.Login)
	authGroup.POST("/logout", uc.Logout)
	authGroup.GET("/me", auth, uc.GetMe)

	posts := api.Group("/posts", auth)
	posts.GET("/all", fd.GetAllPosts)
	posts.GET("/following", fd.GetFollowingPosts)
	posts.GET("/user/:username", fd.GetUserPosts)
	posts.GET("/likes/:id", fd.GetLikedPosts)
	posts.GET("/search", fd.Search)
	posts.POST("/create", pc.CreatePost)
	posts.POST("/like/:id", pc.LikeUnlikePost)
	posts.POST("/comment/:id", pc.CommentOnPost)
	posts.PUT("/:id", pc.UpdatePost)
	posts.DELETE("/:id", pc.DeletePost)

	users := api.Group("/users", auth)
	users.GET("/profile/:username", uc.GetUserProfile)
	users.GET("/search", uc.SearchUsers)
	users.POST("/update", uc.UpdateUser)
	users.GET("/suggested", fc.GetSuggestedUsers)
	users.GET("/following", fc.GetFollowingUsers)
	users.GET("/followers", fc.GetFollowers)
	users.POST("/follow/:id", fc.FollowUnfollowUser)

	messages := api.Group("/messages", auth)
	messages.POST("/send", mc.SendMessage)
	messages.GET("/:userId", mc.GetChat)

	return r
}
