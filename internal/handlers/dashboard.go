package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/services"
)

type DashboardHandler struct {
	Svc *services.DashboardService
	Now func() time.Time
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Now: time.Now}
}

// Get: GET /dashboard?cliente_id=&inicio=&fim= — summary statistics over the
// filtered quote set. The period defaults to the current calendar month;
// cliente_id defaults to "todos". Filters always recompute from the full
// set, never from a previous filtered view.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clienteID := q.Get("cliente_id")
	if clienteID == "" {
		clienteID = services.FiltroTodos
	}
	inicio, fim := services.DefaultPeriod(h.Now())
	if v := q.Get("inicio"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"inicio": v})
			return
		}
		inicio = d
	}
	if v := q.Get("fim"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", map[string]string{"fim": v})
			return
		}
		fim = d
	}
	resumo, err := h.Svc.Resumo(clienteID, inicio, fim)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"cliente_id": clienteID,
		"inicio":     inicio.Format("2006-01-02"),
		"fim":        fim.Format("2006-01-02"),
		"resumo":     resumo,
	})
}
