package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipsearch/adapters/event"
	httpAdapter "github.com/clipstream/clipsearch/adapters/http"
	"github.com/clipstream/clipsearch/adapters/persistence"
	authUC "github.com/clipstream/clipsearch/internal/application/usecase/auth"
	catalogUC "github.com/clipstream/clipsearch/internal/application/usecase/catalog"
	searchUC "github.com/clipstream/clipsearch/internal/application/usecase/search"
	trendingUC "github.com/clipstream/clipsearch/internal/application/usecase/trending"
	"github.com/clipstream/clipsearch/internal/config"
	"github.com/clipstream/clipsearch/pkg/auth"
	"github.com/clipstream/clipsearch/pkg/logger"
	"github.com/clipstream/clipsearch/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting clipsearch API server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "clipsearch-api")
		if err != nil {
			appLogger.Fatal("Cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	videoRepo := persistence.NewPostgresVideoRepo(dbPool, appLogger)
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	statsRepo := persistence.NewRedisQueryStatsRepo(redisClient, appLogger)
	videoCache := persistence.NewRedisVideoCache(redisClient, cfg.Search.CacheTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	searchVideosUseCase := searchUC.NewSearchVideosUseCase(videoRepo, kafkaClient, appLogger)
	searchUsersUseCase := searchUC.NewSearchUsersUseCase(userRepo, kafkaClient, appLogger)
	listVideosUseCase := catalogUC.NewListVideosUseCase(videoRepo, videoCache, appLogger)
	createVideoUseCase := catalogUC.NewCreateVideoUseCase(videoRepo, videoCache, appLogger)
	deleteVideoUseCase := catalogUC.NewDeleteVideoUseCase(videoRepo, videoCache, appLogger)
	trendingUseCase := trendingUC.NewTrendingQueriesUseCase(statsRepo, appLogger)

	// HTTP handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	searchHandler := httpAdapter.NewSearchHandler(searchVideosUseCase, searchUsersUseCase, appLogger)
	catalogHandler := httpAdapter.NewCatalogHandler(listVideosUseCase, createVideoUseCase, deleteVideoUseCase, appLogger)
	trendingHandler := httpAdapter.NewTrendingHandler(trendingUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)
	searchRateLimit := httpAdapter.RateLimitMiddleware(cfg.Search.RateLimit, cfg.Search.RateBurst)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), errorMiddleware)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

	// Collaborator surface consumed by the session clients.
	router.GET("/video-list", catalogHandler.ListVideos)
	router.GET("/video-search", searchRateLimit, searchHandler.SearchVideos)
	router.GET("/search-users", searchRateLimit, searchHandler.SearchUsers)
	router.GET("/search/trending", trendingHandler.Trending)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				videos := adminPrivate.Group("/videos")
				{
					videos.POST("", catalogHandler.CreateVideo)
					videos.DELETE("/:id", catalogHandler.DeleteVideo)
				}
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
