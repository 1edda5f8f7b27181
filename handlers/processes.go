package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"juris_dashboard_go/models"
	"juris_dashboard_go/services"

	"github.com/labstack/echo/v4"
)

// ProcessListResponse is the filtered process list
type ProcessListResponse struct {
	Data     []models.CaseRecord `json:"data"`
	Total    int                 `json:"total"`
	Filtered int                 `json:"filtered"`
	Filters  models.FilterState  `json:"filters"`
}

// ListProcesses applies the query filter to the active collection
func (h *Handler) ListProcesses(c echo.Context) error {
	col := h.store.Current()
	filter := models.FilterStateFromQuery(c.QueryParams())
	filtered := services.ApplyFilters(col.Records, filter)

	return c.JSON(http.StatusOK, ProcessListResponse{
		Data:     filtered,
		Total:    len(col.Records),
		Filtered: len(filtered),
		Filters:  filter,
	})
}

// GetProcess returns one record with its derived metrics
func (h *Handler) GetProcess(c echo.Context) error {
	record, err := h.store.Get(c.Param("id"))
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// ExportProcess downloads the JSON dump of a record
func (h *Handler) ExportProcess(c echo.Context) error {
	record, err := h.store.Get(c.Param("id"))
	if err != nil {
		return h.httpError(c, err)
	}

	data, err := services.ExportRecordJSON(record)
	if err != nil {
		return h.httpError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="processo_%s.json"`, safeFilename(record.NumeroProcesso)))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

type assignRequest struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	Role string `json:"role"`
}

// AssignProcess sets the person responsible for a record
func (h *Handler) AssignProcess(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c)
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if req.ID == "" || req.Nome == "" {
		return h.badRequest(c)
	}

	record, err := h.store.Assign(c.Param("id"), models.Assignee{ID: req.ID, Nome: req.Nome, Role: req.Role})
	if err != nil {
		return h.httpError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// safeFilename keeps digits, letters, dots and dashes
func safeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}
