package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/handlers"
	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/probe"
	"github.com/diewo77/orcafacil/internal/services"
	"github.com/diewo77/orcafacil/internal/settings"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(h *backend.Handle, store settings.Store, prober *probe.Prober) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		db, err := h.DB()
		if err == nil {
			err = db.Exec("SELECT 1").Error
		}
		if err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Client endpoints
	ch := handlers.NewClienteHandler(services.NewClienteService(h))
	mux.HandleFunc("/clientes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/clientes/update", postOnly(ch.Update))
	mux.HandleFunc("/clientes/delete", postOnly(ch.Delete))

	// Quote endpoints
	empSvc := services.NewEmpresaService(h)
	oh := handlers.NewOrcamentoHandler(services.NewOrcamentoService(h), empSvc)
	mux.HandleFunc("/orcamentos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.List(w, r)
		case http.MethodPost:
			oh.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/orcamentos/update", postOnly(oh.Update))
	mux.HandleFunc("/orcamentos/delete", postOnly(oh.Delete))
	mux.HandleFunc("/orcamentos/status", postOnly(oh.Status))
	mux.HandleFunc("/orcamentos/pdf", oh.PDF)

	// Company info
	eh := handlers.NewEmpresaHandler(empSvc)
	mux.HandleFunc("/empresa", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			eh.Get(w, r)
		case http.MethodPost:
			eh.Save(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})

	// Dashboard statistics
	dh := handlers.NewDashboardHandler(services.NewDashboardService(h))
	mux.HandleFunc("/dashboard", dh.Get)

	// Connection settings + probe
	sh := handlers.NewSettingsHandler(store, h, prober)
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPost:
			sh.Save(w, r)
		case http.MethodDelete:
			sh.Clear(w, r)
		default:
			methodNotAllowed(w, "GET,POST,DELETE")
		}
	})
	mux.HandleFunc("/config/status", sh.Status)

	return withRecover(withLogging(mux))
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		next(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).Error("recovered from handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
