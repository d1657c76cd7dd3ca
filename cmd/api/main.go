package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/router"
	"github.com/recipebook/backend/internal/server"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Environment == config.Development,
	})

	ctx := context.Background()

	// Block until the database accepts connections; a database that never
	// shows up fails the process instead of masking misconfiguration.
	if err := database.WaitForDB(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("database readiness check failed")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	var images api.ImageUploader
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise image storage")
		}
		images = service.NewImageService(s3cfg)
	} else {
		log.Warn().Msg("S3_BUCKET_NAME not set, recipe image upload disabled")
	}

	userService := service.NewUserService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)

	engine := router.SetupRouter(
		api.NewAuthHandler(userService, authService),
		api.NewProfileHandler(userService),
		api.NewRecipeHandler(recipeService, images),
		authService,
		middleware.NewLoginRateLimiter(redisClient),
	)

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
