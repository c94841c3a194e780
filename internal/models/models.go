package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status values for an Orcamento. The quick actions only move a quote out of
// StatusPendente; a full save may set any of the three (manual re-open).
const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// Document type tags. CPF carries 11 digits, CNPJ 14.
const (
	DocumentoCPF  = "cpf"
	DocumentoCNPJ = "cnpj"
)

// Cliente entity
type Cliente struct {
	ID            string `gorm:"primaryKey;size:36"`
	Nome          string `gorm:"not null;index"`
	TipoDocumento string `gorm:"not null"` // cpf | cnpj
	Documento     string `gorm:"not null"` // digits only
	Email         string
	Telefone      string
	Endereco      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "clientes" }

// BeforeCreate assigns an opaque identifier when the caller did not.
func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// InformacoesEmpresa is the single record describing the issuing business.
// At most one row is expected; its absence is a normal empty state.
type InformacoesEmpresa struct {
	ID                uint   `gorm:"primaryKey"`
	NomeEmpresa       string `gorm:"not null"`
	TipoDocumento     string `gorm:"not null"`
	Documento         string `gorm:"not null"`
	Endereco          string
	Telefone          string
	Email             string
	LogoURL           string
	AssinaturaURL     string
	ObservacoesPadrao string // appended to every rendered quote
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (InformacoesEmpresa) TableName() string { return "informacoes_empresa" }

// Orcamento and its items. The quote owns its items: deleting the quote
// cascades, and an edit replaces the whole item set.
type Orcamento struct {
	ID          uint    `gorm:"primaryKey"`
	ClienteID   string  `gorm:"not null;size:36;index"`
	Cliente     Cliente `gorm:"foreignKey:ClienteID"`
	Data        time.Time
	ValorTotal  float64 `gorm:"not null;default:0"`
	Status      string  `gorm:"not null;default:'pendente'"`
	Observacoes string
	Itens       []ItemOrcamento `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Orcamento) TableName() string { return "orcamentos" }

type ItemOrcamento struct {
	ID            uint    `gorm:"primaryKey"`
	OrcamentoID   uint    `gorm:"not null;index"`
	Descricao     string  `gorm:"not null"`
	Quantidade    int     `gorm:"not null"`
	ValorUnitario float64 `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ItemOrcamento) TableName() string { return "itens_orcamento" }

// All lists every persisted model in migration order.
func All() []any {
	return []any{&Cliente{}, &InformacoesEmpresa{}, &Orcamento{}, &ItemOrcamento{}}
}
