package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/jaeyeonyy/moacc/internal/cache"
	"github.com/jaeyeonyy/moacc/internal/command"
	"github.com/jaeyeonyy/moacc/internal/config"
	"github.com/jaeyeonyy/moacc/internal/database"
	"github.com/jaeyeonyy/moacc/internal/handler"
	"github.com/jaeyeonyy/moacc/internal/middleware"
	"github.com/jaeyeonyy/moacc/internal/query"
	"github.com/jaeyeonyy/moacc/internal/repository"
	"github.com/jaeyeonyy/moacc/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	tokens := token.NewProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	readRepo := repository.NewUserReadRepository(db, redisClient, 0)

	userCommands := command.NewUserCommandService(db, repository.NewUserRepository, readRepo, logger)
	authCommands := command.NewAuthCommandService(db, repository.NewUserRepository, tokens, logger)
	userQueries := query.NewUserQueryService(readRepo)

	userHandler := handler.NewUserHandler(userCommands, userQueries)
	authHandler := handler.NewAuthHandler(authCommands)

	router := gin.Default()

	users := router.Group("/api/v1/users")
	{
		users.POST("/sign-up", userHandler.SignUp)
		users.GET("/me", middleware.Auth(tokens), userHandler.GetMe)
		users.PATCH("/password", middleware.Auth(tokens), userHandler.ChangePassword)
		users.PATCH("/language", middleware.Auth(tokens), userHandler.ChangeLanguage)
		users.PATCH("/name", middleware.Auth(tokens), userHandler.ChangeName)
	}

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
