package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/al426285/mone-routing/internal/application"
	"github.com/al426285/mone-routing/internal/cache"
	"github.com/al426285/mone-routing/internal/config"
	"github.com/al426285/mone-routing/internal/connectivity"
	"github.com/al426285/mone-routing/internal/domain/place"
	"github.com/al426285/mone-routing/internal/domain/route"
	"github.com/al426285/mone-routing/internal/events"
	"github.com/al426285/mone-routing/internal/handler"
	"github.com/al426285/mone-routing/internal/platform/httpx"
	"github.com/al426285/mone-routing/internal/platform/logger"
	"github.com/al426285/mone-routing/internal/provider/ors"
	"github.com/al426285/mone-routing/internal/provider/price"
	"github.com/al426285/mone-routing/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.App.Env, cfg.App.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting mone-routing",
		zap.String("port", cfg.HTTP.Port),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.RouteModel{},
		&repository.VehicleModel{},
		&repository.PlaceModel{},
		&repository.PreferencesModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize Redis-backed cache store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	defer func() { _ = redisClient.Close() }()
	store := cache.NewRedisStore(redisClient, cfg.Redis.CacheTTL)

	// Initialize Kafka publisher
	publisher := events.NewPublisher(cfg.Kafka.Brokers, log)
	defer func() { _ = publisher.Close() }()

	// Initialize route provider behind its substitution proxy
	orsClient, err := ors.NewClient(cfg.ORS.BaseURL, cfg.ORS.APIKey, cfg.ORS.Timeout, log)
	if err != nil {
		log.Fatal("failed to create route provider", zap.Error(err))
	}
	provider := ors.NewProxy(orsClient, cfg.ORS.Timeout)

	// Initialize price feed gateway
	priceGateway, err := price.NewGateway(cfg.Prices.URL, cfg.Prices.Timeout, log)
	if err != nil {
		log.Fatal("failed to create price gateway", zap.Error(err))
	}

	// Initialize repositories
	routeRepo := repository.NewGormRouteRepository(db)
	vehicleRepo := repository.NewGormVehicleRepository(db)
	placeRepo := repository.NewGormPlaceRepository(db)
	prefsRepo := repository.NewGormPreferencesRepository(db)

	// Initialize resilient read-through caches
	routeCache := cache.NewResilient[route.Saved]("route", store, routeRepo.List, log)
	vehicleCache := cache.NewResilient[application.VehicleDTO]("vehicle", store, application.VehicleFetch(vehicleRepo), log)
	placeCache := cache.NewResilient[place.Place]("place", store, placeRepo.List, log)

	// Connectivity probe; the server process itself is always online.
	probe := connectivity.Always{}

	// Initialize application services
	routeService := application.NewRouteService(
		provider,
		priceGateway,
		route.NewEstimator(),
		routeRepo,
		routeCache,
		probe,
		publisher,
		log,
	)
	vehicleService := application.NewVehicleService(vehicleRepo, vehicleCache, probe, publisher, log)
	placeService := application.NewPlaceService(placeRepo, orsClient, placeCache, probe, log)
	preferencesService := application.NewPreferencesService(prefsRepo, probe, log)

	// Initialize HTTP handlers
	routeHandler := handler.NewRouteHandler(routeService, vehicleService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	placeHandler := handler.NewPlaceHandler(placeService)
	preferencesHandler := handler.NewPreferencesHandler(preferencesService)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(httpx.Recovery(log))
	router.Use(httpx.RequestLogger(log))
	router.Use(httpx.RequestID())
	router.Use(httpx.CORS(cfg.HTTP.AllowedOrigins))

	router.GET("/health", handler.Health)

	// Register routes
	auth := httpx.Auth(cfg.Token.Secret)
	routeHandler.RegisterRoutes(&router.RouterGroup, auth)
	vehicleHandler.RegisterRoutes(&router.RouterGroup, auth)
	placeHandler.RegisterRoutes(&router.RouterGroup, auth)
	preferencesHandler.RegisterRoutes(&router.RouterGroup, auth)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down mone-routing...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("mone-routing stopped")
}
