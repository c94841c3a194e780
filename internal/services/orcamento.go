package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/models"
	"github.com/diewo77/orcafacil/internal/validation"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrStatusConflict     = errors.New("status_conflict")
	ErrClienteInexistente = errors.New("cliente_inexistente")
)

// Total derives a quote total from its line items: the sum of
// quantidade * valor_unitario, rounded to cents. Must stay formula-identical
// to the recompute trigger on itens_orcamento.
func Total(items []models.ItemOrcamento) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantidade) * it.ValorUnitario
	}
	return RoundCents(sum)
}

// RoundCents represents a value in the currency's minor-unit convention.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// QuickActions lists the status values the quick-action affordance offers.
// Only a pending quote exposes transitions; approved/rejected quotes are
// re-opened through a full edit, never through the quick action.
func QuickActions(status string) []string {
	if status == models.StatusPendente {
		return []string{models.StatusAprovado, models.StatusRejeitado}
	}
	return nil
}

// OrcamentoService encapsulates quote business logic over the backend handle.
type OrcamentoService struct {
	H *backend.Handle
}

func NewOrcamentoService(h *backend.Handle) *OrcamentoService { return &OrcamentoService{H: h} }

// List returns every quote with items preloaded, most recent first.
func (s *OrcamentoService) List() ([]models.Orcamento, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var orcs []models.Orcamento
	if err := db.Preload("Itens").Order("created_at desc, id desc").Find(&orcs).Error; err != nil {
		return nil, err
	}
	return orcs, nil
}

func (s *OrcamentoService) GetByID(id uint) (*models.Orcamento, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var orc models.Orcamento
	err = db.Preload("Itens").Preload("Cliente").First(&orc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &orc, nil
}

// Create writes the quote and its items as a single transaction. The total
// is computed here so the record is never visible in a state inconsistent
// with its items, trigger or no trigger on the backend side.
func (s *OrcamentoService) Create(in validation.OrcamentoInput) (*models.Orcamento, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	if err := s.ensureCliente(db, in.ClienteID); err != nil {
		return nil, err
	}
	items := buildItems(in.Itens)
	status := in.Status
	if status == "" {
		status = models.StatusPendente
	}
	orc := models.Orcamento{
		ClienteID:   in.ClienteID,
		Data:        in.Data,
		Status:      status,
		Observacoes: in.Observacoes,
		ValorTotal:  Total(items),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&orc).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrcamentoID = orc.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	orc.Itens = items
	return &orc, nil
}

// Update performs a full edit: the entire item set is replaced
// (delete-all-then-reinsert) and the total recomputed, all in one
// transaction. The status may be set to any value here, which is the only
// path that re-opens an approved or rejected quote.
func (s *OrcamentoService) Update(id uint, in validation.OrcamentoInput) (*models.Orcamento, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var orc models.Orcamento
	if err := db.First(&orc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.ensureCliente(db, in.ClienteID); err != nil {
		return nil, err
	}
	items := buildItems(in.Itens)
	orc.ClienteID = in.ClienteID
	orc.Data = in.Data
	orc.Observacoes = in.Observacoes
	if in.Status != "" {
		orc.Status = in.Status
	}
	orc.ValorTotal = Total(items)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("orcamento_id = ?", orc.ID).Delete(&models.ItemOrcamento{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			for i := range items {
				items[i].OrcamentoID = orc.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Save(&orc).Error
	})
	if err != nil {
		return nil, err
	}
	orc.Itens = items
	return &orc, nil
}

// Delete removes the quote and its items together.
func (s *OrcamentoService) Delete(id uint) error {
	db, err := s.H.DB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("orcamento_id = ?", id).Delete(&models.ItemOrcamento{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Orcamento{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// QuickStatus applies a quick-action transition. Only a pending quote may
// move, and only to aprovado or rejeitado; nothing but the status column is
// touched.
func (s *OrcamentoService) QuickStatus(id uint, novo string) error {
	if novo != models.StatusAprovado && novo != models.StatusRejeitado {
		return ErrStatusConflict
	}
	db, err := s.H.DB()
	if err != nil {
		return err
	}
	var orc models.Orcamento
	if err := db.Select("id", "status").First(&orc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if orc.Status != models.StatusPendente {
		return ErrStatusConflict
	}
	return db.Model(&models.Orcamento{}).Where("id = ?", id).Update("status", novo).Error
}

func (s *OrcamentoService) ensureCliente(db *gorm.DB, clienteID string) error {
	var count int64
	if err := db.Model(&models.Cliente{}).Where("id = ?", clienteID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrClienteInexistente
	}
	return nil
}

func buildItems(in []validation.ItemInput) []models.ItemOrcamento {
	items := make([]models.ItemOrcamento, 0, len(in))
	for _, it := range in {
		items = append(items, models.ItemOrcamento{
			Descricao:     it.Descricao,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
		})
	}
	return items
}
