package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simToDec/app/echo-server/metrics"
	"simToDec/app/echo-server/router"
	"simToDec/business/features"
	"simToDec/business/inference"
	"simToDec/domain"
	"simToDec/internal/middleware"
	"simToDec/internal/repository/checkpoint"
	"simToDec/internal/repository/eia"
	"simToDec/internal/repository/mapbox"
	"simToDec/internal/repository/openmeteo"
	psqlRepo "simToDec/internal/repository/postgres"
	redisRepo "simToDec/internal/repository/redis"
	"simToDec/internal/repository/routecache"
	"simToDec/internal/rest"
	"simToDec/pkg/config"
	"simToDec/pkg/database"
	redisdb "simToDec/pkg/database/redis"
	"simToDec/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting sim-to-dec inference service", "version", cfg.App.Version, "environment", cfg.App.Environment)

	metrics.Init()

	// Load checkpoints
	ckptRepo := checkpoint.NewFileRepository()
	sims := make([]domain.SimulatorCheckpoint, 0, len(cfg.Model.SimulatorCheckpoints))
	for _, path := range cfg.Model.SimulatorCheckpoints[:cfg.Model.EnsembleK] {
		ckpt, err := ckptRepo.LoadSimulator(path)
		if err != nil {
			logger.Fatal("Failed to load simulator checkpoint", "path", path, "error", err)
		}
		sims = append(sims, ckpt)
	}
	actorCkpt, err := ckptRepo.LoadActor(cfg.Model.ActorCheckpoint)
	if err != nil {
		logger.Fatal("Failed to load actor checkpoint", "path", cfg.Model.ActorCheckpoint, "error", err)
	}

	inferenceCfg := inference.DefaultConfig()
	inferenceCfg.EnsembleK = cfg.Model.EnsembleK
	inferenceCfg.MCSamples = cfg.Model.MCSamples
	inferenceCfg.SeqLen = cfg.Model.SeqLen
	inferenceCfg.MCDropout = cfg.Model.MCDropout

	ictx, err := inference.LoadInferenceContext(sims, actorCkpt, inferenceCfg)
	if err != nil {
		logger.Fatal("Checkpoints are incompatible with the network layout", "error", err)
	}
	logger.Info("Models loaded", "modes", ictx.Modes(), "ensemble_k", cfg.Model.EnsembleK, "mc_samples", cfg.Model.MCSamples)

	// Init route cache
	var cache features.RouteCache
	switch cfg.Cache.Backend {
	case config.CacheBackendPostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		cache = psqlRepo.NewRouteCacheRepository(db)
		logger.Info("Route cache backed by postgres")
	case config.CacheBackendRedis:
		client, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() { _ = redisdb.CloseRedisClient(client) }()
		cache = redisRepo.NewRouteCacheRepository(client)
		logger.Info("Route cache backed by redis")
	default:
		cache = routecache.NewCSVRepository(cfg.Cache.CSVPath)
		logger.Info("Route cache backed by csv", "path", cfg.Cache.CSVPath)
	}

	// Init third-party clients
	httpClient := &http.Client{}
	mapboxRepo := mapbox.NewMapboxRepository(mapbox.MapboxConfig{
		APIKey:  cfg.Mapbox.APIKey,
		BaseURL: cfg.Mapbox.BaseURL,
	}, httpClient)
	weatherRepo := openmeteo.NewOpenMeteoRepository(cfg.Weather.BaseURL, httpClient)
	fuelRepo := eia.NewEIARepository(eia.EIAConfig{
		APIKey:   cfg.Fuel.APIKey,
		BaseURL:  cfg.Fuel.BaseURL,
		SeriesID: cfg.Fuel.SeriesID,
	}, httpClient)

	if !mapboxRepo.Configured() {
		logger.Warn("MAPBOX_API_KEY not set, distances will use fallback values")
	}
	if !fuelRepo.Configured() {
		logger.Warn("EIA_API_KEY not set, fuel prices will be simulated")
	}

	provider := features.NewProvider(cache, mapboxRepo, weatherRepo, fuelRepo, features.RandomFallback{}, features.ProviderConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})

	// Init service & handler
	inferenceService := inference.NewService(ictx, provider)
	inferenceHandler := rest.NewInferenceHandler(inferenceService, validator.New())

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	router.SetupInferenceRoutes(e, inferenceHandler)
	router.SetupMetricsRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
