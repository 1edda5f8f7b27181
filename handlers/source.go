package handlers

import (
	"net/http"
	"time"

	"juris_dashboard_go/models"
	"juris_dashboard_go/services"

	"github.com/labstack/echo/v4"
)

// SourceResponse describes the active collection
type SourceResponse struct {
	Source         models.DataSource `json:"source"`
	Total          int               `json:"total"`
	Alerts         int               `json:"alerts"`
	LoadedAt       *time.Time        `json:"loaded_at,omitempty"`
	Fallback       bool              `json:"fallback"`
	FallbackReason string            `json:"fallback_reason,omitempty"`
}

func sourceResponse(col services.Collection) SourceResponse {
	resp := SourceResponse{
		Source:         col.Source,
		Total:          len(col.Records),
		Alerts:         len(col.Alerts),
		Fallback:       col.Fallback,
		FallbackReason: col.FallbackReason,
	}
	if !col.LoadedAt.IsZero() {
		loadedAt := col.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}

// GetSource returns the active data source
func (h *Handler) GetSource(c echo.Context) error {
	return c.JSON(http.StatusOK, sourceResponse(h.store.Current()))
}

type switchSourceRequest struct {
	Source string `json:"source"`
}

// SwitchSource loads another data source and makes it active
func (h *Handler) SwitchSource(c echo.Context) error {
	var req switchSourceRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c)
	}

	col, err := h.store.SwitchSource(c.Request().Context(), models.DataSource(req.Source))
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, sourceResponse(col))
}

// ReloadSource reloads the active data source
func (h *Handler) ReloadSource(c echo.Context) error {
	col, err := h.store.Reload(c.Request().Context())
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, sourceResponse(col))
}
