package handlers

import (
	"net/http"

	"juris_dashboard_go/models"
	"juris_dashboard_go/services"

	"github.com/labstack/echo/v4"
)

// KPIs returns the indicators of the full active collection
func (h *Handler) KPIs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Current().KPIs)
}

// AlertsResponse is the ordered alert list
type AlertsResponse struct {
	Data  []models.Alert `json:"data"`
	Total int            `json:"total"`
}

// Alerts returns the ordered alerts, optionally of one severity
func (h *Handler) Alerts(c echo.Context) error {
	severity := models.AlertSeverity(c.QueryParam("severidade"))
	if severity != "" && !severity.IsValid() {
		return h.badRequest(c)
	}

	alerts := services.FilterAlertsBySeverity(h.store.Current().Alerts, severity)
	return c.JSON(http.StatusOK, AlertsResponse{Data: alerts, Total: len(alerts)})
}
