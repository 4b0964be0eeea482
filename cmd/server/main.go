package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mente-leve/wellbeing-service/internal/auth"
	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/config"
	"github.com/mente-leve/wellbeing-service/internal/handlers"
	"github.com/mente-leve/wellbeing-service/internal/repositories/postgres"
	"github.com/mente-leve/wellbeing-service/internal/services"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"github.com/mente-leve/wellbeing-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "development" {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "error", err)
		cacheService = cache.NewMemoryCache()
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cacheService)
	manager := services.NewManager(repo, cacheService, tokens, publisher, slogger, utils.NewValidator())

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(manager, tokens, cacheService, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
