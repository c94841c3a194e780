package validation

import (
	"time"

	"github.com/diewo77/orcafacil/internal/models"
)

// Record validators: pure functions returning field-level violations, run
// before any backend call. Invalid input never reaches the database.

type ClienteInput struct {
	Nome          string
	TipoDocumento string
	Documento     string
	Email         string
	Telefone      string
	Endereco      string
}

func Cliente(in *ClienteInput) Violations {
	v := Violations{}
	Required("nome", in.Nome, v)
	Required("tipo_documento", in.TipoDocumento, v)
	if _, ok := v["tipo_documento"]; !ok {
		Documento("documento", in.TipoDocumento, in.Documento, v)
	}
	Email("email", in.Email, v)
	if v.Empty() {
		in.Documento = Digits(in.Documento)
	}
	return v
}

type EmpresaInput struct {
	NomeEmpresa       string
	TipoDocumento     string
	Documento         string
	Endereco          string
	Telefone          string
	Email             string
	LogoURL           string
	AssinaturaURL     string
	ObservacoesPadrao string
}

func Empresa(in *EmpresaInput) Violations {
	v := Violations{}
	Required("nome_empresa", in.NomeEmpresa, v)
	Required("tipo_documento", in.TipoDocumento, v)
	if _, ok := v["tipo_documento"]; !ok {
		Documento("documento", in.TipoDocumento, in.Documento, v)
	}
	Email("email", in.Email, v)
	URL("logo_url", in.LogoURL, v)
	URL("assinatura_url", in.AssinaturaURL, v)
	if v.Empty() {
		in.Documento = Digits(in.Documento)
	}
	return v
}

type ItemInput struct {
	Descricao     string
	Quantidade    int
	ValorUnitario float64
}

type OrcamentoInput struct {
	ClienteID   string
	Data        time.Time
	Status      string
	Observacoes string
	Itens       []ItemInput
}

func Orcamento(in *OrcamentoInput) Violations {
	v := Violations{}
	Required("cliente_id", in.ClienteID, v)
	if in.Data.IsZero() {
		v["data"] = "required"
	}
	switch in.Status {
	case "", models.StatusPendente, models.StatusAprovado, models.StatusRejeitado:
	default:
		v["status"] = "status_invalid"
	}
	for _, it := range in.Itens {
		Required("itens.descricao", it.Descricao, v)
		PositiveInt("itens.quantidade", it.Quantidade, v)
		NonNegativeFloat("itens.valor_unitario", it.ValorUnitario, v)
	}
	return v
}
