package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messagely/internal/config"
	"messagely/internal/logger"
	"messagely/internal/repository"
	"messagely/internal/router"
	"messagely/internal/service"
	"messagely/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Env)
	log := logger.Get()

	if cfg.Env != "development" && cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Storage ---
	var (
		userRepo    repository.UserRepository
		messageRepo repository.MessageRepository
		store       router.Pinger
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbPool, err := config.ConnectDB(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer dbPool.Close()

		if err := config.AutoMigrate(context.Background(), dbPool); err != nil {
			log.Fatal().Err(err).Msg("Failed to auto-migrate database")
		}

		userRepo = repository.NewUserRepository(dbPool)
		messageRepo = repository.NewMessageRepository(dbPool)
		store = dbPool
	case config.StorageMemory:
		mem := repository.NewMemoryStore()
		userRepo = mem.Users()
		messageRepo = mem.Messages()
		store = mem
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
	}

	// --- Services ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)
	authService := service.NewAuthService(userRepo, jwtUtil, cfg.BcryptWorkFactor)
	userService := service.NewUserService(userRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	engine := router.New(router.Deps{
		Auth:     authService,
		Users:    userService,
		Messages: messageService,
		Store:    store,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("storage", cfg.StorageDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
