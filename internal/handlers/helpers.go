package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/i18n"
	"github.com/diewo77/orcafacil/internal/services"
	"github.com/diewo77/orcafacil/internal/validation"
)

// writeServiceError reduces a service failure to a JSON error. Nothing here
// is fatal: backend failures become transient messages and the attempted
// state change was already rolled back by the service transaction.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	switch {
	case errors.Is(err, backend.ErrNaoConfigurado):
		httpx.JSONError(w, http.StatusServiceUnavailable, "backend_not_configured", i18n.T(lang, "backend_not_configured"))
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrStatusConflict):
		httpx.JSONError(w, http.StatusConflict, "status_conflict", i18n.T(lang, "status_conflict"))
	case errors.Is(err, services.ErrClienteEmUso):
		httpx.JSONError(w, http.StatusConflict, "cliente_em_uso", i18n.T(lang, "cliente_em_uso"))
	case errors.Is(err, services.ErrClienteInexistente):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"cliente_id": "cliente_inexistente"})
	default:
		httpx.JSONError(w, http.StatusBadGateway, "backend_error", nil)
	}
}

func writeViolations(w http.ResponseWriter, r *http.Request, v validation.Violations) {
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	localized := make(map[string]string, len(v))
	for field, code := range v {
		localized[field] = i18n.T(lang, code)
	}
	httpx.JSON(w, http.StatusBadRequest, map[string]any{"error": "validation_failed", "fields": localized})
}

// idParam parses the numeric id query parameter.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
