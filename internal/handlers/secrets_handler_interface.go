package handlers

import "net/http"

// SecretsHandlerInterface defines the behavior the router expects from the secrets facade (real or mock)
type SecretsHandlerInterface interface {
	ListSecrets(w http.ResponseWriter, r *http.Request)
	GetSecret(w http.ResponseWriter, r *http.Request)
}

// DocsHandlerInterface defines the behavior the router expects from the documentation facade
type DocsHandlerInterface interface {
	SwaggerJSON(w http.ResponseWriter, r *http.Request)
	SwaggerYAML(w http.ResponseWriter, r *http.Request)
	OpenAPIFile(w http.ResponseWriter, r *http.Request)
	SwaggerUI(w http.ResponseWriter, r *http.Request)
}

var (
	_ SecretsHandlerInterface = (*SecretsHandler)(nil)
	_ DocsHandlerInterface    = (*DocsHandler)(nil)
)
