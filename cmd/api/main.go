package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charge-finder/internal/api"
	"charge-finder/internal/config"
	"charge-finder/internal/modules/admin"
	"charge-finder/internal/modules/bookings"
	"charge-finder/internal/modules/stations"
	"charge-finder/internal/modules/trips"
	"charge-finder/internal/modules/users"
	"charge-finder/pkg/email"
	"charge-finder/pkg/logging"
	"charge-finder/pkg/places"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(cfg.IsProduction())

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Unable to parse database configuration", zap.Error(err))
	}
	dbConfig.MaxConns = cfg.DBMaxConns
	dbConfig.MaxConnIdleTime = 30 * time.Minute
	dbConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal("Unable to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to the database")

	// 4. --- Shared Services ---
	discovery := places.NewClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, logger)

	// Mail is optional: without a from-address the services skip sending.
	var emailer email.ServiceInterface
	var templateManager *email.TemplateManager
	if cfg.EmailFrom != "" {
		sender, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			logger.Fatal("Unable to initialize email sender", zap.Error(err))
		}
		templateManager, err = email.NewTemplateManager()
		if err != nil {
			logger.Fatal("Unable to parse email templates", zap.Error(err))
		}
		emailer = sender
	}

	// 5. --- Dependency Injection (Wiring everything up) ---
	// --- Users Module ---
	userRepo := users.NewRepository(dbPool)
	userService := users.NewService(userRepo, emailer, templateManager, cfg.JWTSecret, logger)
	userHandler := users.NewHandler(userService)

	// --- Stations Module ---
	stationRepo := stations.NewRepository(dbPool)
	stationService := stations.NewService(stationRepo, discovery, logger)
	stationHandler := stations.NewHandler(stationService)

	// --- Bookings Module ---
	bookingRepo := bookings.NewRepository(dbPool)
	bookingService := bookings.NewService(bookingRepo, userRepo, emailer, templateManager, logger)
	bookingHandler := bookings.NewHandler(bookingService)

	// --- Trips Module ---
	tripRepo := trips.NewRepository(dbPool)
	evaluator := trips.NewSuggestionEvaluator(discovery)
	tripService := trips.NewService(tripRepo, evaluator, logger)
	tripHandler := trips.NewHandler(tripService)

	// --- Admin Module ---
	adminRepo := admin.NewRepository(dbPool)
	adminService := admin.NewService(adminRepo, stationRepo)
	adminHandler := admin.NewHandler(adminService)

	healthCheck := func(c echo.Context) error {
		if err := dbPool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	}

	// 6. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret,
		userHandler,
		stationHandler,
		bookingHandler,
		tripHandler,
		adminHandler,
		healthCheck,
	)

	// 7. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server, an error occurred", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exiting")
}
