package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"juris_dashboard_go/models"
	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// signedURLExpiry is the lifetime of download links for stored reports
const signedURLExpiry = time.Hour

func (h *Handler) filteredRecords(c echo.Context) (services.Collection, []models.CaseRecord) {
	col := h.store.Current()
	return col, services.ApplyFilters(col.Records, models.FilterStateFromQuery(c.QueryParams()))
}

func (h *Handler) exportFilename(source models.DataSource, ext string) string {
	return fmt.Sprintf("processos_%s_%s%s", source, h.now().Format("20060102_1504"), ext)
}

// ExportCSV downloads the filtered list as CSV
func (h *Handler) ExportCSV(c echo.Context) error {
	col, records := h.filteredRecords(c)

	var buf bytes.Buffer
	if err := services.WriteCasesCSV(c.Request().Context(), &buf, records); err != nil {
		return h.httpError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.exportFilename(col.Source, ".csv")))
	return c.Blob(http.StatusOK, services.ContentTypeCSV, buf.Bytes())
}

// ExportWorkbook downloads the filtered list, the KPIs and the alerts as xlsx.
// KPIs cover the full collection; alerts follow the filter.
func (h *Handler) ExportWorkbook(c echo.Context) error {
	col, records := h.filteredRecords(c)

	buf, err := services.BuildWorkbook(c.Request().Context(), records, col.KPIs, services.AlertsForRecords(col.Alerts, records))
	if err != nil {
		return h.httpError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.exportFilename(col.Source, ".xlsx")))
	return c.Blob(http.StatusOK, services.ContentTypeXLSX, buf.Bytes())
}

// StoredReportResponse points to a workbook saved in storage
type StoredReportResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
	Total    int    `json:"total"`
}

// StoreReport saves the workbook of the filtered list and returns its location
func (h *Handler) StoreReport(c echo.Context) error {
	ctx := c.Request().Context()
	if h.storage == nil || !h.storage.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, i18n.T(ctx, "errors.storage_unavailable"))
	}

	col, records := h.filteredRecords(c)
	buf, err := services.BuildWorkbook(ctx, records, col.KPIs, services.AlertsForRecords(col.Alerts, records))
	if err != nil {
		return h.httpError(c, err)
	}

	key := services.GenerateReportKey(col.Source, h.now())
	size := int64(buf.Len())
	result, err := h.storage.UploadReader(ctx, bytes.NewReader(buf.Bytes()), key, services.ContentTypeXLSX, size)
	if err != nil {
		return h.httpError(c, err)
	}

	url := result.URL
	if url == "" {
		if url, err = h.storage.GetSignedURL(ctx, key, signedURLExpiry); err != nil {
			return h.httpError(c, err)
		}
	}

	h.logger.Infow("report stored", "key", key, "size", size, "records", len(records))
	return c.JSON(http.StatusCreated, StoredReportResponse{
		Key:      key,
		URL:      url,
		FileSize: size,
		Total:    len(records),
	})
}
