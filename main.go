package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigmatch/config"
	"gigmatch/cron"
	"gigmatch/database"
	"gigmatch/database/repository"
	"gigmatch/handlers"
	"gigmatch/metrics"
	"gigmatch/middleware"
	"gigmatch/routes"
	"gigmatch/services/matching"
	"gigmatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.DatabaseName)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	// repositories.
	musicianRepo := repository.NewMongoMusicianRepo(db)
	eventRepo := repository.NewMongoEventRepo(db)
	if err := musicianRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("main: failed to ensure musician indexes", zap.Error(err))
	}
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("main: failed to ensure event indexes", zap.Error(err))
	}

	// metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.New(registry)

	// services.
	scorer := matching.NewScorer(
		matching.WithWeights(matching.Weights{
			Instrument:   cfg.WeightInstrument,
			Availability: cfg.WeightAvailability,
			Experience:   cfg.WeightExperience,
			Rating:       cfg.WeightRating,
			Budget:       cfg.WeightBudget,
		}),
		matching.WithExperienceCeiling(cfg.ExperienceCeiling),
	)
	matchingService := matching.NewMatchingService(musicianRepo, eventRepo, scorer, logger.Named("matching"))
	matchingService.Workers = cfg.MatchWorkers
	matchingService.RecommendedLimit = cfg.RecommendedLimit
	matchingService.Metrics = metricsManager

	var (
		service     matching.MatchingService = matchingService
		invalidator handlers.RecommendationInvalidator
		cacheClient *redis.Client
	)
	if cfg.CacheEnabled {
		cacheClient, err = utils.InitCache(ctx, cfg)
		if err != nil {
			logger.Warn("main: Redis unavailable, recommendation cache disabled", zap.Error(err))
		}
	}
	if cacheClient != nil {
		defer cacheClient.Close()
		recommender := matching.NewCachedRecommender(
			matchingService,
			matching.NewRedisRecommendationCache(cacheClient, cfg.CacheTTL),
			logger.Named("cache"),
		)
		service, invalidator = recommender, recommender

		worker := cron.NewWorker(cfg, recommender, logger.Named("worker"), metricsManager)
		if err := worker.Start(); err != nil {
			logger.Error("main: refresh worker disabled", zap.Error(err))
		} else {
			defer worker.Shutdown()

			queue := asynq.NewClient(cron.RedisOpt(cfg))
			defer queue.Close()
			sweeper := &cron.Sweeper{
				Events:   eventRepo,
				Queue:    queue,
				Interval: cfg.RefreshInterval,
				Logger:   logger.Named("sweep"),
			}
			sweeper.Start(ctx)
		}
	}

	health := utils.NewHealthMonitor(cacheClient, mongoClient, time.Minute)
	health.Start(ctx)

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger(logger, metricsManager))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.NewRateLimiter(cfg.MaxRequestsPerMin).Middleware())

	matchingHandler := handlers.NewMatchingHandler(service, invalidator)
	handlerBundle := handlers.NewHandlerBundle(
		matchingHandler,
		handlers.HealthHandler(health),
		handlers.MetricsHandler(metricsManager.Gatherer()),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
