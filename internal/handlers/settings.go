package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/probe"
	"github.com/diewo77/orcafacil/internal/settings"
)

// SettingsHandler manages the backend credentials and exposes the
// connection-status probe.
type SettingsHandler struct {
	Store  settings.Store
	Handle *backend.Handle
	Prober *probe.Prober
}

func NewSettingsHandler(store settings.Store, h *backend.Handle, p *probe.Prober) *SettingsHandler {
	return &SettingsHandler{Store: store, Handle: h, Prober: p}
}

// Get: GET /config — reports whether credentials exist; the key itself is
// never echoed back.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, err := h.Store.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "settings_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"configured":  creds.Configured(),
		"backend_url": creds.URL,
	})
}

// Save: POST /config — persists new credentials, rebuilds the backend
// handle and force-checks the probe.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"backend_url"`
		Key string `json:"backend_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.URL == "" || req.Key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{
			"backend_url": "required", "backend_key": "required",
		})
		return
	}
	if err := h.Store.Save(settings.Credentials{URL: req.URL, Key: req.Key}); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "settings_error", nil)
		return
	}
	if err := h.Handle.Rebuild(); err != nil {
		// Credentials are saved even if they do not connect yet; the probe
		// will report disconnected.
		logrus.WithError(err).Warn("backend rebuild after credential change failed")
	}
	h.Prober.ForceCheck()
	httpx.JSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// Clear: DELETE /config — removes the saved credentials and drops the
// connection built from them.
func (h *SettingsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "settings_error", nil)
		return
	}
	h.Handle.Drop()
	h.Prober.ForceCheck()
	httpx.JSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// Status: GET /config/status — the probe's current classification.
func (h *SettingsHandler) Status(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": string(h.Prober.Status())})
}
