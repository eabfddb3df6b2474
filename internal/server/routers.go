package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"keyVaultAPI/internal/auth"
	"keyVaultAPI/internal/handlers"
	"keyVaultAPI/internal/metrics"
)

// scopedRoute represents a single API route
type scopedRoute struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
	Protected   bool // wrapped by the authorization policy
	Document    bool // wrapped by the document key when one is configured
}

// Dependencies is built once at startup and never mutated afterwards
type Dependencies struct {
	Secrets handlers.SecretsHandlerInterface
	Docs    handlers.DocsHandlerInterface

	// Auth guards the secrets routes
	Auth auth.Policy
	// DocumentKey guards the machine-readable documents; nil leaves them public
	DocumentKey *auth.FunctionKey
	// Metrics is nil when /metrics is disabled
	Metrics *metrics.Metrics

	Prefix  string
	Backend string
	Log     *slog.Logger
}

// NewRouter initializes all routes and returns an http.Handler
func NewRouter(deps Dependencies) http.Handler {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	routes := []scopedRoute{
		{
			Name:        "ListSecrets",
			Method:      http.MethodGet,
			Pattern:     "/secrets",
			HandlerFunc: deps.Secrets.ListSecrets,
			Protected:   true,
		},
		{
			Name:        "GetSecret",
			Method:      http.MethodGet,
			Pattern:     "/secrets/{name}",
			HandlerFunc: deps.Secrets.GetSecret,
			Protected:   true,
		},
		{
			// trailing slash without a name, answered with 400 by GetSecret
			Name:        "GetSecretEmptyName",
			Method:      http.MethodGet,
			Pattern:     "/secrets/{$}",
			HandlerFunc: deps.Secrets.GetSecret,
			Protected:   true,
		},
		{
			Name:        "SwaggerJSON",
			Method:      http.MethodGet,
			Pattern:     "/swagger.json",
			HandlerFunc: deps.Docs.SwaggerJSON,
			Document:    true,
		},
		{
			Name:        "SwaggerYAML",
			Method:      http.MethodGet,
			Pattern:     "/swagger.yaml",
			HandlerFunc: deps.Docs.SwaggerYAML,
			Document:    true,
		},
		{
			Name:        "OpenAPIDocument",
			Method:      http.MethodGet,
			Pattern:     "/openapi/{file}",
			HandlerFunc: deps.Docs.OpenAPIFile,
			Document:    true,
		},
		{
			Name:        "SwaggerUI",
			Method:      http.MethodGet,
			Pattern:     "/swagger/ui",
			HandlerFunc: deps.Docs.SwaggerUI,
		},
	}

	mux := http.NewServeMux()
	for _, route := range routes {
		var handler http.Handler = route.HandlerFunc

		if route.Protected {
			handler = deps.Auth.Middleware(handler)
		}
		if route.Document && deps.DocumentKey != nil {
			handler = auth.FunctionKeyMiddleware(deps.DocumentKey, log, handler)
		}

		mux.Handle(route.Method+" "+prefixed(deps.Prefix, route.Pattern), handler)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "backend": deps.Backend}) //nolint:errcheck
	})
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = recoveryMiddleware(handler, log)
	handler = loggingMiddleware(handler, log, deps.Metrics)
	handler = requestIDMiddleware(handler)
	return handler
}

// prefixed joins the route prefix ("api", "/api/" or "") and a pattern starting with "/"
func prefixed(prefix, pattern string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return pattern
	}
	return "/" + prefix + pattern
}
