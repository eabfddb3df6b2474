package handlers

import (
	"log/slog"
	"net/http"

	"keyVaultAPI/internal/logger"
	"keyVaultAPI/internal/models"
	"keyVaultAPI/internal/vault"
)

// SecretsHandler exposes the read operations of a secret store
type SecretsHandler struct {
	Store vault.Store
	Log   *slog.Logger
}

// NewSecretsHandler creates a new SecretsHandler
func NewSecretsHandler(store vault.Store, log *slog.Logger) *SecretsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SecretsHandler{
		Store: store,
		Log:   log,
	}
}

// ListSecrets handles GET /secrets
func (h *SecretsHandler) ListSecrets(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListSecrets(r.Context())
	if err != nil {
		h.fail(w, r, "list secrets", err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSecretCollection(items))
}

// GetSecret handles GET /secrets/{name}
func (h *SecretsHandler) GetSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "secret name required")
		return
	}

	secret, err := h.Store.GetSecret(r.Context(), name)
	if err != nil {
		h.fail(w, r, "get secret", err, "secret", name)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSecretResponse(secret))
}

// fail reuses the store's status and message when the store reported one,
// everything else becomes a 500 carrying the error text.
func (h *SecretsHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error, attrs ...any) {
	log := logger.FromContext(r.Context(), h.Log).With(attrs...)

	if storeErr, ok := vault.AsError(err); ok {
		log.Warn(op+" rejected by store", "backend", h.Store.Backend(), "status", storeErr.StatusCode, "error", storeErr.Message)
		WriteError(w, storeErr.StatusCode, storeErr.Message)
		return
	}

	log.Error(op+" failed", "backend", h.Store.Backend(), "error", err)
	WriteError(w, http.StatusInternalServerError, err.Error())
}
