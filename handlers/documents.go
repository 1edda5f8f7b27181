package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"juris_dashboard_go/services"
	"juris_dashboard_go/services/i18n"

	"github.com/labstack/echo/v4"
)

type generateDocumentRequest struct {
	Tipo       string `json:"tipo"`
	Instrucoes string `json:"instrucoes"`
	Format     string `json:"format"`
	Store      bool   `json:"store"`
}

// StoredDocumentResponse points to a PDF draft saved in storage
type StoredDocumentResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

// GenerateDocument drafts a legal document for a record, as JSON or PDF
func (h *Handler) GenerateDocument(c echo.Context) error {
	var req generateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return h.badRequest(c)
	}
	if req.Format == "" {
		req.Format = "text"
	}
	if req.Format != "text" && req.Format != "pdf" {
		return h.badRequest(c)
	}
	// only PDF drafts are stored
	if req.Store && req.Format != "pdf" {
		return h.badRequest(c)
	}
	ctx := c.Request().Context()
	if req.Store && (h.storage == nil || !h.storage.IsConfigured()) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, i18n.T(ctx, "errors.storage_unavailable"))
	}

	record, err := h.store.Get(c.Param("id"))
	if err != nil {
		return h.httpError(c, err)
	}

	doc, err := h.generator.Generate(ctx, services.DocumentType(req.Tipo), record, services.DocumentOptions{
		Instructions: req.Instrucoes,
	})
	if err != nil {
		return h.httpError(c, err)
	}
	h.logger.Infow("document generated",
		"case", record.NumeroProcesso,
		"type", doc.Tipo,
		"format", req.Format,
		"elapsed_ms", doc.Metadados.TempoGeracaoMS,
	)

	if req.Format == "text" {
		return c.JSON(http.StatusOK, doc)
	}

	pdf, err := h.renderPDF(ctx, doc)
	if err != nil {
		return h.httpError(c, err)
	}
	if req.Store {
		return h.storeDocument(c, safeFilename(record.ID), pdf)
	}
	filename := fmt.Sprintf("%s_%s.pdf", doc.Tipo, safeFilename(record.NumeroProcesso))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, services.ContentTypePDF, pdf)
}

func (h *Handler) storeDocument(c echo.Context, recordID string, pdf []byte) error {
	ctx := c.Request().Context()
	key := services.GenerateDocumentKey(recordID, ".pdf", h.now())
	size := int64(len(pdf))
	result, err := h.storage.UploadReader(ctx, bytes.NewReader(pdf), key, services.ContentTypePDF, size)
	if err != nil {
		return h.httpError(c, err)
	}

	url := result.URL
	if url == "" {
		if url, err = h.storage.GetSignedURL(ctx, key, signedURLExpiry); err != nil {
			return h.httpError(c, err)
		}
	}

	h.logger.Infow("document stored", "key", key, "size", size)
	return c.JSON(http.StatusCreated, StoredDocumentResponse{Key: key, URL: url, FileSize: size})
}

// DocumentTypeInfo describes one supported draft type
type DocumentTypeInfo struct {
	Tipo   services.DocumentType `json:"tipo"`
	Titulo string                `json:"titulo"`
}

// DocumentTypes lists the supported draft types
func (h *Handler) DocumentTypes(c echo.Context) error {
	types := services.DocumentTypes()
	out := make([]DocumentTypeInfo, len(types))
	for i, t := range types {
		out[i] = DocumentTypeInfo{Tipo: t, Titulo: t.Title()}
	}
	return c.JSON(http.StatusOK, out)
}

// DocumentVariables lists the placeholders available in templates
func (h *Handler) DocumentVariables(c echo.Context) error {
	return c.JSON(http.StatusOK, services.GetVariableDictionary())
}
