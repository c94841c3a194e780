package services

import (
	"testing"
	"time"

	"github.com/diewo77/orcafacil/internal/models"
)

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultPeriod(t *testing.T) {
	inicio, fim := DefaultPeriod(time.Date(2024, 2, 14, 10, 30, 0, 0, time.UTC))
	if !inicio.Equal(dia(2024, 2, 1)) {
		t.Fatalf("unexpected inicio %v", inicio)
	}
	if !fim.Equal(dia(2024, 2, 29)) {
		t.Fatalf("unexpected fim %v", fim)
	}
}

func TestFilterByPeriodoInclusiveBoundaries(t *testing.T) {
	all := []models.Orcamento{
		{ID: 1, ClienteID: "a", Data: dia(2024, 1, 5), ValorTotal: 100, Status: models.StatusPendente},
		{ID: 2, ClienteID: "a", Data: dia(2024, 1, 15), ValorTotal: 200, Status: models.StatusAprovado},
		{ID: 3, ClienteID: "b", Data: dia(2024, 2, 1), ValorTotal: 300, Status: models.StatusPendente},
	}
	got := FilterOrcamentos(all, FiltroTodos, dia(2024, 1, 1), dia(2024, 1, 31))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected filtered set: %#v", got)
	}
	r := Summarize(got)
	if r.ValorGeral != 300 {
		t.Fatalf("expected grand total 300 got %v", r.ValorGeral)
	}

	// A quote dated exactly on the start or end boundary is included even
	// when the boundary carries a time-of-day component.
	boundary := FilterOrcamentos(all, FiltroTodos,
		time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 1, 0, time.UTC))
	if len(boundary) != 2 {
		t.Fatalf("boundary dates must be inclusive, got %d", len(boundary))
	}
}

func TestFilterByCliente(t *testing.T) {
	all := []models.Orcamento{
		{ID: 1, ClienteID: "a", Data: dia(2024, 1, 5)},
		{ID: 2, ClienteID: "b", Data: dia(2024, 1, 6)},
	}
	got := FilterOrcamentos(all, "b", time.Time{}, time.Time{})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected client filter result: %#v", got)
	}
}

func TestFilterNotCumulative(t *testing.T) {
	all := []models.Orcamento{
		{ID: 1, ClienteID: "a", Data: dia(2024, 1, 5)},
		{ID: 2, ClienteID: "b", Data: dia(2024, 1, 6)},
		{ID: 3, ClienteID: "b", Data: dia(2024, 3, 1)},
	}
	// Applying filter A, then filter B, must equal applying B alone.
	_ = FilterOrcamentos(all, "a", time.Time{}, time.Time{})
	afterA := FilterOrcamentos(all, "b", time.Time{}, time.Time{})
	direct := FilterOrcamentos(all, "b", time.Time{}, time.Time{})
	if len(afterA) != len(direct) || afterA[0].ID != direct[0].ID {
		t.Fatalf("filters must recompute from the unfiltered set")
	}
}

func TestSummarizePerStatus(t *testing.T) {
	all := []models.Orcamento{
		{ID: 1, Status: models.StatusPendente, ValorTotal: 10.10},
		{ID: 2, Status: models.StatusPendente, ValorTotal: 20.20},
		{ID: 3, Status: models.StatusAprovado, ValorTotal: 50},
		{ID: 4, Status: models.StatusRejeitado, ValorTotal: 5},
	}
	r := Summarize(all)
	if r.PorStatus[models.StatusPendente].Quantidade != 2 {
		t.Fatalf("expected 2 pendentes")
	}
	if r.PorStatus[models.StatusPendente].ValorTotal != 30.30 {
		t.Fatalf("expected pendente sum 30.30 got %v", r.PorStatus[models.StatusPendente].ValorTotal)
	}
	if r.PorStatus[models.StatusAprovado].ValorTotal != 50 {
		t.Fatalf("expected aprovado sum 50")
	}
	if r.ValorGeral != 85.30 {
		t.Fatalf("expected grand total 85.30 got %v", r.ValorGeral)
	}
}

func TestSummarizeRecentes(t *testing.T) {
	base := dia(2024, 1, 1)
	var all []models.Orcamento
	for i := 1; i <= 7; i++ {
		all = append(all, models.Orcamento{
			ID:        uint(i),
			Status:    models.StatusPendente,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	// Two quotes share a creation timestamp; load order breaks the tie.
	all = append(all, models.Orcamento{ID: 8, Status: models.StatusPendente, CreatedAt: base.Add(7 * time.Hour)})
	r := Summarize(all)
	if len(r.Recentes) != 5 {
		t.Fatalf("expected 5 recentes got %d", len(r.Recentes))
	}
	if r.Recentes[0].ID != 8 || r.Recentes[1].ID != 7 {
		t.Fatalf("unexpected recent ordering: %d, %d", r.Recentes[0].ID, r.Recentes[1].ID)
	}
}
