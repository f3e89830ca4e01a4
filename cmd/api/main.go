// @title Mini Games Hub API
// @version 1.0
// @description Users, game sessions, leaderboards and spelling lists for the MathMode, Snake and TypeMaster mini games.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey UserIDHeader
// @in header
// @name x-user-id
// @description Id of the signed-in user, set by the identity provider in front of this API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/moicalder/moimac.com/cmd/api/docs"
	"github.com/moicalder/moimac.com/internal/adapter"
	"github.com/moicalder/moimac.com/internal/cache"
	"github.com/moicalder/moimac.com/internal/config"
	"github.com/moicalder/moimac.com/internal/database"
	"github.com/moicalder/moimac.com/internal/handler"
	"github.com/moicalder/moimac.com/internal/logger"
	"github.com/moicalder/moimac.com/internal/middleware"
	"github.com/moicalder/moimac.com/internal/repository"
	"github.com/moicalder/moimac.com/internal/service"
	"github.com/moicalder/moimac.com/internal/spelling"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db.DB); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	userRepository := repository.NewSQLXUserRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	leaderboardRepository := repository.NewSQLXLeaderboardRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	userService := service.NewUserService(userRepository)
	sessionService := service.NewSessionService(txManager, sessionRepository, userRepository)
	leaderboardService := service.NewLeaderboardService(leaderboardRepository, sessionRepository)
	statsService := service.NewProfileStatsService(userRepository, sessionRepository)
	spellingListService := service.NewSpellingListService(spelling.NewStore(cfg.SpellingLists.Path))

	limiter := newRateLimiter(cfg, appLogger)

	app := fiber.New(fiber.Config{
		AppName:      "minigames-hub",
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.UserIDHeader,
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, handler.Handlers{
		User:         handler.NewUserHandler(userService, statsService),
		Session:      handler.NewSessionHandler(sessionService),
		Leaderboard:  handler.NewLeaderboardHandler(leaderboardService),
		SpellingList: handler.NewSpellingListHandler(spellingListService),
		Health:       handler.NewHealthHandler(db),
	}, limiter)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newRateLimiter returns nil when rate limiting is disabled. Redis backs the
// counters when configured and reachable; otherwise each instance limits
// on its own.
func newRateLimiter(cfg *config.Config, appLogger *zap.Logger) middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err == nil {
			appLogger.Info("Rate limiting session submissions via Redis",
				zap.String("address", cfg.Redis.Address),
				zap.Int("requests", cfg.RateLimit.Requests),
				zap.Duration("window", cfg.RateLimit.Window))
			return middleware.NewCounterLimiter(adapter.NewRedisCounterAdapter(redisClient), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
		appLogger.Warn("Redis unavailable, falling back to in-process rate limiting", zap.Error(err))
	}
	return middleware.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
