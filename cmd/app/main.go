package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mirrelia/quillpost/internal/blogservice"
	"github.com/mirrelia/quillpost/internal/common"
	"github.com/mirrelia/quillpost/internal/mediaservice"
	"github.com/mirrelia/quillpost/internal/sessionservice"
	"github.com/mirrelia/quillpost/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	userService    *userservice.UserService
	blogService    *blogservice.BlogService
	sessionService *sessionservice.SessionService
	mediaService   *mediaservice.MediaService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	var sessionStore sessionservice.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()

		sessionStore = sessionservice.NewRedisStore(client)
	} else {
		sessionStore = sessionservice.NewMemoryStore()
	}

	var uploader *mediaservice.Uploader
	if cfg.MediaCloudName != "" && cfg.MediaAPIKey != "" && cfg.MediaAPISecret != "" {
		uploader = mediaservice.NewUploader("", cfg.MediaCloudName, cfg.MediaAPIKey, cfg.MediaAPISecret)
	} else {
		logger.Info("media host credentials not configured, uploads stay local")
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		userService:    userservice.NewUserService(db),
		blogService:    blogservice.NewBlogService(db),
		sessionService: sessionservice.NewSessionService(sessionStore),
		mediaService:   mediaservice.New(mediaservice.NewLocalStore(cfg.UploadDir), uploader),
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
