package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/BlackPool25/AI-Detector-Web/internal/config"
	"github.com/BlackPool25/AI-Detector-Web/internal/delivery/httpd"
	"github.com/BlackPool25/AI-Detector-Web/internal/middleware"
	"github.com/BlackPool25/AI-Detector-Web/internal/repository"
	"github.com/BlackPool25/AI-Detector-Web/internal/service"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/extract"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/inference"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/storage"
)

type App struct {
	server      *http.Server
	logger      zerolog.Logger
	config      *config.Config
	db          *sql.DB
	rateLimiter *middleware.RateLimiter
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	storageRepo, err := repository.NewMinIORepository(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.Region,
		cfg.Storage.UseSSL,
		cfg.Storage.ConnectTimeout,
		log,
	)
	if err != nil {
		return nil, err
	}

	historyRepo := repository.NewHistoryRepository(db, log)

	archiveService := storage.NewArchiveService(storageRepo, cfg.Storage.PresignExpiry, log)
	extractor := extract.NewExtractor(log)
	inferenceClient := inference.NewClient(cfg.Inference, log)

	detectionService := service.NewDetectionService(inferenceClient, log)
	uploadService := service.NewUploadService(archiveService, extractor, detectionService, log)
	historyService := service.NewHistoryService(historyRepo, archiveService, log)

	handler := httpd.NewHandler(
		detectionService,
		uploadService,
		historyService,
		extractor,
		cfg.Auth.JWTSecret,
		cfg.Site.PublicURL,
		log,
	)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	router.Use(middleware.NewCORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
		cfg.CORS.ExposedHeaders,
		cfg.CORS.AllowCredentials,
		cfg.CORS.MaxAge,
	))

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware)
	}

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:      server,
		logger:      log,
		config:      cfg,
		db:          db,
		rateLimiter: rateLimiter,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting detection gateway on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down detection gateway...")

	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("Detection gateway stopped")
	return nil
}
