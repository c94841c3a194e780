package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/models"
	"github.com/diewo77/orcafacil/internal/validation"
)

// ErrClienteEmUso is returned when deleting a client that still has quotes.
var ErrClienteEmUso = errors.New("cliente_em_uso")

type ClienteService struct {
	H *backend.Handle
}

func NewClienteService(h *backend.Handle) *ClienteService { return &ClienteService{H: h} }

func (s *ClienteService) List() ([]models.Cliente, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var clientes []models.Cliente
	if err := db.Order("nome").Find(&clientes).Error; err != nil {
		return nil, err
	}
	return clientes, nil
}

func (s *ClienteService) GetByID(id string) (*models.Cliente, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var c models.Cliente
	err = db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create assumes the input already passed validation (documento normalized).
func (s *ClienteService) Create(in validation.ClienteInput) (*models.Cliente, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	c := models.Cliente{
		Nome:          in.Nome,
		TipoDocumento: in.TipoDocumento,
		Documento:     in.Documento,
		Email:         in.Email,
		Telefone:      in.Telefone,
		Endereco:      in.Endereco,
	}
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClienteService) Update(id string, in validation.ClienteInput) (*models.Cliente, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var c models.Cliente
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Nome = in.Nome
	c.TipoDocumento = in.TipoDocumento
	c.Documento = in.Documento
	c.Email = in.Email
	c.Telefone = in.Telefone
	c.Endereco = in.Endereco
	if err := db.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete refuses while quotes still reference the client, instead of letting
// the foreign key error bubble up.
func (s *ClienteService) Delete(id string) error {
	db, err := s.H.DB()
	if err != nil {
		return err
	}
	var count int64
	if err := db.Model(&models.Orcamento{}).Where("cliente_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrClienteEmUso
	}
	res := db.Delete(&models.Cliente{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
