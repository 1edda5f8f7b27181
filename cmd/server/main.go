package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/db"
	"juris_dashboard_go/handlers"
	"juris_dashboard_go/logging"
	"juris_dashboard_go/middleware"
	"juris_dashboard_go/models"
	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"
	"juris_dashboard_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.New(cfg.Environment)
	defer logger.Sync() //nolint:errcheck

	if err := i18n.Load(); err != nil {
		logger.Fatalw("failed to load translations", "error", err)
	}

	// The sqlite source is optional; without it that source serves mock data
	conn := openDatabase(cfg, logger)
	defer db.Close(conn) //nolint:errcheck

	normalizer := services.NewNormalizer(
		services.WithLogger(logger),
		services.WithSeed(cfg.RandomSeed),
		services.WithStrict(cfg.StrictNormalization),
	)
	loader := services.NewLoader(services.LoaderConfig{
		PGMLocation:    cfg.PGMDataURL,
		UnimedLocation: cfg.UnimedDataURL,
		DB:             conn,
		FetchTimeout:   time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		Seed:           cfg.RandomSeed,
	}, normalizer, logger)
	store := services.NewStore(loader, logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.FetchTimeoutSeconds+5)*time.Second)
	if _, err := store.SwitchSource(startupCtx, models.DataSource(cfg.DataSource)); err != nil {
		cancel()
		logger.Fatalw("failed to load initial data source", "source", cfg.DataSource, "error", err)
	}
	cancel()

	generator := services.NewTemplateGenerator(services.OfficeData{
		Name:      cfg.OfficeName,
		City:      cfg.OfficeCity,
		Signature: cfg.OfficeSignature,
	}, time.Duration(cfg.GenerationDelayMS)*time.Millisecond)
	storage := services.InitializeStorage(cfg, logger)

	var documentLimiter *middleware.RateLimiter
	if cfg.DocumentRateLimit > 0 {
		documentLimiter = middleware.NewDocumentRateLimiter(cfg.DocumentRateLimit, time.Minute)
		defer documentLimiter.Stop()
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.RequestLogger(logger))

	// Locally stored exports are served as static files
	if _, ok := storage.(*services.LocalStorage); ok {
		e.Static("/"+cfg.UploadDir, cfg.UploadDir)
	}

	handlers.New(store, cfg, logger, generator, storage).Register(e, documentLimiter)

	scheduler, err := jobs.StartScheduler(store, cfg, logger)
	if err != nil {
		logger.Fatalw("failed to start scheduler", "error", err)
	}

	// Start server
	go func() {
		logger.Infow("server starting", "port", cfg.ServerPort, "source", cfg.DataSource)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	quit, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-quit.Done()

	logger.Infow("shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("server shutdown failed", "error", err)
	}
}

// openDatabase connects to Turso when configured, else to the local file,
// and migrates the schema. Connection failures are logged and yield a nil
// connection; a failed migration keeps the connection.
func openDatabase(cfg *config.Config, logger *zap.SugaredLogger) *gorm.DB {
	var (
		conn *gorm.DB
		err  error
	)
	if cfg.UsesTurso() {
		conn, err = db.InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	} else {
		conn, err = db.Initialize(cfg.DBPath, cfg.Environment)
	}
	if err != nil {
		logger.Warnw("database unavailable, sqlite source will serve mock data", "error", err)
		return nil
	}
	if err := db.AutoMigrate(conn); err != nil {
		logger.Warnw("database migration failed", "error", err)
	}
	return conn
}
