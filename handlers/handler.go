package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/middleware"
	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PDFRenderer converts a generated draft to PDF
type PDFRenderer func(ctx context.Context, doc *services.GeneratedDocument) ([]byte, error)

// Handler serves the dashboard API over the collection held by a store
type Handler struct {
	store     *services.Store
	cfg       *config.Config
	logger    *zap.SugaredLogger
	generator services.DocumentGenerator
	storage   services.StorageProvider
	renderPDF PDFRenderer
	now       func() time.Time
}

// New creates a handler. A nil storage disables stored reports.
func New(store *services.Store, cfg *config.Config, logger *zap.SugaredLogger, generator services.DocumentGenerator, storage services.StorageProvider) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		store:     store,
		cfg:       cfg,
		logger:    logger,
		generator: generator,
		storage:   storage,
		renderPDF: func(ctx context.Context, doc *services.GeneratedDocument) ([]byte, error) {
			return services.GenerateDocumentPDF(ctx, doc, services.DefaultPDFOptions())
		},
		now: time.Now,
	}
}

// Register mounts every route on e. Document generation goes through
// documentLimiter when one is given.
func (h *Handler) Register(e *echo.Echo, documentLimiter *middleware.RateLimiter) {
	e.GET("/health", h.Health)

	api := e.Group("/api")

	api.GET("/source", h.GetSource)
	api.PUT("/source", h.SwitchSource)
	api.POST("/source/reload", h.ReloadSource)

	api.GET("/processes", h.ListProcesses)
	api.GET("/processes/:id", h.GetProcess)
	api.GET("/processes/:id/export", h.ExportProcess)
	api.PUT("/processes/:id/assignee", h.AssignProcess)

	var docMiddleware []echo.MiddlewareFunc
	if documentLimiter != nil {
		docMiddleware = append(docMiddleware, documentLimiter.Middleware())
	}
	api.POST("/processes/:id/documents", h.GenerateDocument, docMiddleware...)
	api.GET("/documents/types", h.DocumentTypes)
	api.GET("/documents/variables", h.DocumentVariables)

	api.GET("/dashboard/kpis", h.KPIs)
	api.GET("/dashboard/alerts", h.Alerts)

	api.GET("/exports/cases.csv", h.ExportCSV)
	api.GET("/exports/report.xlsx", h.ExportWorkbook)
	api.POST("/exports/report", h.StoreReport)
	api.GET("/exports/files/*", h.GetStoredFile)
	api.DELETE("/exports/files/*", h.DeleteStoredFile)
}

// Health reports liveness
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// httpError maps service errors to HTTP errors with a localized message
func (h *Handler) httpError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, services.ErrUnknownSource):
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "errors.unknown_source"))
	case errors.Is(err, services.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "errors.not_found"))
	case errors.Is(err, services.ErrUnknownDocumentType):
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "errors.unknown_document"))
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warnw("request timed out", "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusGatewayTimeout, i18n.T(ctx, "errors.timeout"))
	}
	h.logger.Errorw("request failed", "path", c.Path(), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, i18n.T(ctx, "errors.internal"))
}

func (h *Handler) badRequest(c echo.Context) error {
	return echo.NewHTTPError(http.StatusBadRequest, i18n.T(c.Request().Context(), "errors.invalid_body"))
}
