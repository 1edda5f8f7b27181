package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// storedPrefixes are the key prefixes served by the stored file routes
var storedPrefixes = []string{"reports/", "documents/"}

// storedKey reads the wildcard key and checks it points below a known prefix
func storedKey(c echo.Context) (string, bool) {
	key := c.Param("*")
	if key == "" || path.Clean(key) != key {
		return "", false
	}
	for _, prefix := range storedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return key, true
		}
	}
	return "", false
}

func (h *Handler) storageError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, services.ErrObjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "errors.file_not_found"))
	case errors.Is(err, services.ErrInvalidKey):
		return h.badRequest(c)
	}
	return h.httpError(c, err)
}

// GetStoredFile streams a stored report or document
func (h *Handler) GetStoredFile(c echo.Context) error {
	ctx := c.Request().Context()
	if h.storage == nil || !h.storage.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, i18n.T(ctx, "errors.storage_unavailable"))
	}
	key, ok := storedKey(c)
	if !ok {
		return h.badRequest(c)
	}

	body, contentType, err := h.storage.Get(ctx, key)
	if err != nil {
		return h.storageError(c, err)
	}
	defer body.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+path.Base(key)+`"`)
	return c.Stream(http.StatusOK, contentType, body)
}

// DeleteStoredFile removes a stored report or document
func (h *Handler) DeleteStoredFile(c echo.Context) error {
	ctx := c.Request().Context()
	if h.storage == nil || !h.storage.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, i18n.T(ctx, "errors.storage_unavailable"))
	}
	key, ok := storedKey(c)
	if !ok {
		return h.badRequest(c)
	}

	if err := h.storage.Delete(ctx, key); err != nil {
		return h.storageError(c, err)
	}
	h.logger.Infow("stored file deleted", "key", key)
	return c.NoContent(http.StatusNoContent)
}
