package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "xclone/internal/adapters/database"
	"xclone/internal/adapters/httpapi"
	objectstoreadapter "xclone/internal/adapters/objectstore"
	redisadapter "xclone/internal/adapters/redis"
	"xclone/internal/config"
	feedapp "xclone/internal/core/feed/service"
	"xclone/internal/core/follower"
	followerapp "xclone/internal/core/follower/service"
	"xclone/internal/core/message"
	messageapp "xclone/internal/core/message/service"
	"xclone/internal/core/notification"
	notificationapp "xclone/internal/core/notification/service"
	"xclone/internal/core/post"
	postapp "xclone/internal/core/post/service"
	"xclone/internal/core/user"
	userapp "xclone/internal/core/user/service"
	"xclone/internal/ports/objectstore"
	"xclone/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// بارگذاری تنظیمات از .env، فایل و متغیرهای محیطی
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() // flush buffer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&user.User{},
		&user.LikedPost{},
		&follower.Follower{},
		&post.Post{},
		&post.Like{},
		&post.Comment{},
		&notification.Notification{},
		&message.Message{},
	); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed", zap.String("driver", cfg.Database.Driver))

	// اتصال به Redis
	redisClient, err := config.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(logger, db, redisClient)

	images := newImageStore(ctx, cfg.S3, logger)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)                 // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(db)                 // آداپتر خروجی
	feedRepo := dbadapter.NewFeedRepositoryDatabase(db)                 // آداپتر خروجی
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)         // آداپتر خروجی
	notificationRepo := dbadapter.NewNotificationRepositoryDatabase(db) // آداپتر خروجی
	messageRepo := dbadapter.NewMessageRepositoryDatabase(db)           // آداپتر خروجی
	likeIndexRepo := dbadapter.NewLikeIndexRepositoryDatabase(db)       // آداپتر خروجی
	publisher := redisadapter.NewNotificationPublisherRedis(redisClient)

	notificationSvc := notificationapp.NewNotificationService(notificationRepo, publisher, logger)
	userSvc := userapp.NewUserService(userRepo, followerRepo, images, []byte(cfg.JWT.Secret), cfg.JWT.TTL, logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, images, notificationSvc, cfg.NotifySelfLikes, logger)
	feedSvc := feedapp.NewFeedService(feedRepo, userRepo, followerRepo, logger)
	followerSvc := followerapp.NewFollowerService(followerRepo, userRepo, notificationSvc, logger)
	messageSvc := messageapp.NewMessageService(messageRepo, userRepo, logger)

	// تزریق یوزکیس به آداپتر ورودی
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.SetupRoutes(userSvc, postSvc, feedSvc, followerSvc, messageSvc, logger)

	// اجرای worker در پس‌زمینه
	reconciler := workers.NewLikeReconciler(likeIndexRepo, cfg.Reconcile.Interval, cfg.Reconcile.BatchSize, logger)
	go reconciler.Run(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newImageStore(ctx context.Context, cfg config.S3Config, logger *zap.Logger) objectstore.ImageStore {
	if cfg.Bucket == "" {
		logger.Warn("S3_BUCKET is not set, image uploads are disabled")
		return objectstoreadapter.DisabledImageStore{}
	}
	store, err := objectstoreadapter.NewS3ImageStore(ctx, objectstoreadapter.Options{
		Region:        cfg.Region,
		Bucket:        cfg.Bucket,
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		Endpoint:      cfg.Endpoint,
		PublicBaseURL: cfg.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize S3 image store", zap.Error(err))
	}
	return store
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if err := redisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
