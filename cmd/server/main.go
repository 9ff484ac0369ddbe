package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/workmatch-api/internal/config"
	"github.com/yukikurage/workmatch-api/internal/constants"
	"github.com/yukikurage/workmatch-api/internal/database"
	"github.com/yukikurage/workmatch-api/internal/handlers"
	"github.com/yukikurage/workmatch-api/internal/logger"
	"github.com/yukikurage/workmatch-api/internal/middleware"
	"github.com/yukikurage/workmatch-api/internal/realtime"
	"github.com/yukikurage/workmatch-api/internal/repository"
	"github.com/yukikurage/workmatch-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.AppEnv)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	store := newSessionStore(cfg)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Live channels, fanned out through Redis when several instances run
	registry := realtime.NewRegistry()
	var notifier services.Notifier = registry
	if cfg.RedisRelay && cfg.RedisAddr() != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr(),
			Password:     cfg.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		defer client.Close()

		relay := realtime.NewRelay(registry, client)
		notifier = relay
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error("realtime relay stopped", "error", err)
			}
		}()
	}

	// Initialize services
	repos := repository.NewGormStore(database.GetDB())
	authService := services.NewAuthService(repos.Users)
	profileService := services.NewProfileService(repos.Users, repos.Profiles)
	jobService := services.NewJobService(repos.Jobs, repos.Users)
	matchingService := services.NewMatchingService(repos.Users, repos.Profiles, repos.Jobs)
	applicationService := services.NewApplicationService(repos.Applications, repos.Jobs, repos.Users, repos.Profiles)
	ratingService := services.NewRatingService(repos.Ratings, repos.Users, repos.Jobs, repos.Applications)
	messageService := services.NewMessageService(repos.Messages, repos.Notifications, repos.Users, notifier)
	notificationService := services.NewNotificationService(repos.Notifications)
	suggester := services.NewSkillSuggester(cfg.OpenAIAPIKey)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workmatch API is running",
		})
	})

	// API routes
	handlers.RegisterRoutes(r.Group("/api"), handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Profile:     handlers.NewProfileHandler(profileService),
		Job:         handlers.NewJobHandler(jobService, matchingService, suggester),
		Application: handlers.NewApplicationHandler(applicationService),
		Rating:      handlers.NewRatingHandler(ratingService),
		Message:     handlers.NewMessageHandler(messageService, notificationService),
		Realtime: handlers.NewRealtimeHandler(registry, messageService, realtime.ConnOptions{
			RatePerSec: cfg.WSRatePerSec,
			Burst:      cfg.WSRateBurst,
		}),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}

// newSessionStore uses Redis when it is configured and falls back to signed cookies
func newSessionStore(cfg *config.Config) sessions.Store {
	if addr := cfg.RedisAddr(); addr != "" {
		store, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			logger.Fatal("failed to create Redis session store", "error", err)
		}
		return store
	}

	logger.Warn("REDIS_HOST not set, using cookie sessions")
	return cookie.NewStore([]byte(cfg.SessionSecret))
}
