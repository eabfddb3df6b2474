package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"keyVaultAPI/internal/openapi"
)

// DocsHandler serves the API description and the Swagger UI
type DocsHandler struct {
	Document       *openapi.Document
	Prefix         string
	DefaultVersion string
	DocumentKey    string
	// TrustForwarded honors X-Forwarded-Proto and X-Forwarded-Host set by a front end
	TrustForwarded bool
	Log            *slog.Logger
}

func NewDocsHandler(doc *openapi.Document, prefix, defaultVersion, documentKey string, log *slog.Logger) *DocsHandler {
	if log == nil {
		log = slog.Default()
	}
	if defaultVersion == "" {
		defaultVersion = openapi.VersionV2
	}
	return &DocsHandler{
		Document:       doc,
		Prefix:         prefix,
		DefaultVersion: defaultVersion,
		DocumentKey:    documentKey,
		TrustForwarded: true,
		Log:            log,
	}
}

// SwaggerJSON handles GET /swagger.json
func (h *DocsHandler) SwaggerJSON(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.DefaultVersion, openapi.FormatJSON)
}

// SwaggerYAML handles GET /swagger.yaml
func (h *DocsHandler) SwaggerYAML(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.DefaultVersion, openapi.FormatYAML)
}

// OpenAPIFile handles GET /openapi/{file} where file is v2.json, v3.yaml and so on
func (h *DocsHandler) OpenAPIFile(w http.ResponseWriter, r *http.Request) {
	version, format, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, version, format)
}

// SwaggerUI handles GET /swagger/ui
func (h *DocsHandler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	server := openapi.ServerURL(r, h.Prefix, h.TrustForwarded)

	page, err := openapi.RenderUI(h.Document.Info.Title, openapi.DocumentURL(server, h.DocumentKey))
	if err != nil {
		h.Log.Error("render swagger ui failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page) //nolint:errcheck
}

func (h *DocsHandler) render(w http.ResponseWriter, r *http.Request, version, format string) {
	doc := h.Document.WithServer(openapi.ServerURL(r, h.Prefix, h.TrustForwarded))

	out, err := openapi.Render(doc, version, format)
	if errors.Is(err, openapi.ErrUnsupportedVersion) || errors.Is(err, openapi.ErrUnsupportedFormat) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Log.Error("render document failed", "version", version, "format", format, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", openapi.ContentType(format))
	w.Write(out) //nolint:errcheck
}
