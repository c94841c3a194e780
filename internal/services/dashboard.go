package services

import (
	"sort"
	"time"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/models"
)

// FiltroTodos selects every client in a dashboard filter.
const FiltroTodos = "todos"

// StatusResumo holds per-status aggregates over a filtered quote set.
type StatusResumo struct {
	Quantidade int     `json:"quantidade"`
	ValorTotal float64 `json:"valor_total"`
}

type Resumo struct {
	PorStatus  map[string]StatusResumo `json:"por_status"`
	ValorGeral float64                 `json:"valor_geral"`
	Recentes   []models.Orcamento      `json:"recentes"`
}

// DefaultPeriod returns the first and last calendar day of now's month.
func DefaultPeriod(now time.Time) (time.Time, time.Time) {
	inicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fim := inicio.AddDate(0, 1, -1)
	return inicio, fim
}

// FilterOrcamentos derives a filtered view of the full quote set. It always
// starts from the unfiltered input, so re-applying with different inputs is
// never cumulative. The date range is inclusive at day granularity:
// time-of-day components never exclude a quote dated exactly on a boundary.
func FilterOrcamentos(all []models.Orcamento, clienteID string, inicio, fim time.Time) []models.Orcamento {
	out := make([]models.Orcamento, 0, len(all))
	byCliente := clienteID != "" && clienteID != FiltroTodos
	byPeriodo := !inicio.IsZero() && !fim.IsZero()
	for _, o := range all {
		if byCliente && o.ClienteID != clienteID {
			continue
		}
		if byPeriodo {
			d := dateOnly(o.Data)
			if d.Before(dateOnly(inicio)) || d.After(dateOnly(fim)) {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}

// Summarize aggregates a filtered set: count and valor_total per status, the
// grand total, and the 5 most recently created quotes (created_at desc, id
// desc as the stable tie-break).
func Summarize(filtered []models.Orcamento) Resumo {
	r := Resumo{PorStatus: map[string]StatusResumo{
		models.StatusPendente:  {},
		models.StatusAprovado:  {},
		models.StatusRejeitado: {},
	}}
	for _, o := range filtered {
		sr := r.PorStatus[o.Status]
		sr.Quantidade++
		sr.ValorTotal = RoundCents(sr.ValorTotal + o.ValorTotal)
		r.PorStatus[o.Status] = sr
		r.ValorGeral = RoundCents(r.ValorGeral + o.ValorTotal)
	}
	recentes := make([]models.Orcamento, len(filtered))
	copy(recentes, filtered)
	sort.SliceStable(recentes, func(i, j int) bool {
		if !recentes[i].CreatedAt.Equal(recentes[j].CreatedAt) {
			return recentes[i].CreatedAt.After(recentes[j].CreatedAt)
		}
		return recentes[i].ID > recentes[j].ID
	})
	if len(recentes) > 5 {
		recentes = recentes[:5]
	}
	r.Recentes = recentes
	return r
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DashboardService loads the full quote set and computes the filtered
// summary for the statistics endpoint.
type DashboardService struct {
	H *backend.Handle
}

func NewDashboardService(h *backend.Handle) *DashboardService { return &DashboardService{H: h} }

func (s *DashboardService) Resumo(clienteID string, inicio, fim time.Time) (Resumo, error) {
	db, err := s.H.DB()
	if err != nil {
		return Resumo{}, err
	}
	var all []models.Orcamento
	if err := db.Order("created_at desc, id desc").Find(&all).Error; err != nil {
		return Resumo{}, err
	}
	return Summarize(FilterOrcamentos(all, clienteID, inicio, fim)), nil
}
