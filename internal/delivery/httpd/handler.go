package httpd

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/BlackPool25/AI-Detector-Web/internal/middleware"
	"github.com/BlackPool25/AI-Detector-Web/internal/service"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/extract"
)

type Handler struct {
	detectionService service.DetectionService
	uploadService    service.UploadService
	historyService   service.HistoryService
	extractor        *extract.Extractor
	jwtSecret        string
	publicURL        string
	logger           zerolog.Logger
}

func NewHandler(
	detectionService service.DetectionService,
	uploadService service.UploadService,
	historyService service.HistoryService,
	extractor *extract.Extractor,
	jwtSecret string,
	publicURL string,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		detectionService: detectionService,
		uploadService:    uploadService,
		historyService:   historyService,
		extractor:        extractor,
		jwtSecret:        jwtSecret,
		publicURL:        publicURL,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/ready", h.ReadyCheck)
	router.Get("/robots.txt", h.Robots)

	router.Route("/api/v1", func(api chi.Router) {
		// Detection is open; a valid session only adds history recording.
		api.With(middleware.OptionalAuth(h.jwtSecret, h.logger)).Post("/detect", h.Detect)
		api.Options("/detect", h.CORSPreflight)

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(h.jwtSecret, h.logger))

			authed.Post("/extract-text", h.ExtractText)
			authed.Post("/upload", h.Upload)
			authed.Get("/history", h.ListHistory)
			authed.Delete("/history/{record_id}", h.DeleteHistory)
		})
		api.Options("/extract-text", h.CORSPreflight)
	})
}
