package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/orcafacil/internal/backend"
	"github.com/diewo77/orcafacil/internal/models"
	"github.com/diewo77/orcafacil/internal/validation"
)

// EmpresaService manages the singleton company-info record.
type EmpresaService struct {
	H *backend.Handle
}

func NewEmpresaService(h *backend.Handle) *EmpresaService { return &EmpresaService{H: h} }

// Get returns the company record if present, otherwise nil. A missing row is
// a normal empty state, not an error.
func (s *EmpresaService) Get() (*models.InformacoesEmpresa, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	var emp models.InformacoesEmpresa
	err = db.First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// Save creates the record on first use and updates it afterwards.
func (s *EmpresaService) Save(in validation.EmpresaInput) (*models.InformacoesEmpresa, error) {
	db, err := s.H.DB()
	if err != nil {
		return nil, err
	}
	existing, err := s.Get()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		emp := models.InformacoesEmpresa{
			NomeEmpresa:       in.NomeEmpresa,
			TipoDocumento:     in.TipoDocumento,
			Documento:         in.Documento,
			Endereco:          in.Endereco,
			Telefone:          in.Telefone,
			Email:             in.Email,
			LogoURL:           in.LogoURL,
			AssinaturaURL:     in.AssinaturaURL,
			ObservacoesPadrao: in.ObservacoesPadrao,
		}
		if err := db.Create(&emp).Error; err != nil {
			return nil, err
		}
		return &emp, nil
	}
	existing.NomeEmpresa = in.NomeEmpresa
	existing.TipoDocumento = in.TipoDocumento
	existing.Documento = in.Documento
	existing.Endereco = in.Endereco
	existing.Telefone = in.Telefone
	existing.Email = in.Email
	existing.LogoURL = in.LogoURL
	existing.AssinaturaURL = in.AssinaturaURL
	existing.ObservacoesPadrao = in.ObservacoesPadrao
	if err := db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
