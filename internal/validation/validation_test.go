package validation

import (
	"testing"
	"time"
)

func TestDigits(t *testing.T) {
	if got := Digits("123.456.789-00"); got != "12345678900" {
		t.Fatalf("unexpected normalization: %s", got)
	}
	if got := Digits("12.345.678/0001-95"); got != "12345678000195" {
		t.Fatalf("unexpected normalization: %s", got)
	}
}

func TestClienteDocumentoCPF(t *testing.T) {
	in := ClienteInput{Nome: "Maria", TipoDocumento: "cpf", Documento: "123.456.789-00"}
	v := Cliente(&in)
	if !v.Empty() {
		t.Fatalf("expected valid cpf, got %v", v)
	}
	if in.Documento != "12345678900" {
		t.Fatalf("documento not normalized: %s", in.Documento)
	}
}

func TestClienteDocumentoWrongLength(t *testing.T) {
	// The same 11-digit input under cnpj must be rejected.
	in := ClienteInput{Nome: "Maria", TipoDocumento: "cnpj", Documento: "123.456.789-00"}
	v := Cliente(&in)
	if v["documento"] != "cnpj_length" {
		t.Fatalf("expected cnpj_length, got %v", v)
	}
}

func TestClienteRequiredFields(t *testing.T) {
	in := ClienteInput{}
	v := Cliente(&in)
	if v["nome"] != "required" || v["tipo_documento"] != "required" {
		t.Fatalf("expected required violations, got %v", v)
	}
}

func TestClienteEmailShape(t *testing.T) {
	in := ClienteInput{Nome: "M", TipoDocumento: "cpf", Documento: "12345678900", Email: "not-an-email"}
	v := Cliente(&in)
	if v["email"] != "email_invalid" {
		t.Fatalf("expected email_invalid, got %v", v)
	}
}

func TestEmpresaURLShape(t *testing.T) {
	in := EmpresaInput{
		NomeEmpresa: "ACME", TipoDocumento: "cnpj", Documento: "12345678000195",
		LogoURL: "notaurl",
	}
	v := Empresa(&in)
	if v["logo_url"] != "url_invalid" {
		t.Fatalf("expected url_invalid, got %v", v)
	}
	in.LogoURL = "https://example.com/logo.png"
	if v := Empresa(&in); !v.Empty() {
		t.Fatalf("expected valid empresa, got %v", v)
	}
}

func TestOrcamentoItems(t *testing.T) {
	in := OrcamentoInput{
		ClienteID: "c1",
		Data:      time.Now(),
		Itens: []ItemInput{
			{Descricao: "ok", Quantidade: 0, ValorUnitario: -1},
		},
	}
	v := Orcamento(&in)
	if v["itens.quantidade"] != "must_be_positive" {
		t.Fatalf("expected must_be_positive, got %v", v)
	}
	if v["itens.valor_unitario"] != "must_not_be_negative" {
		t.Fatalf("expected must_not_be_negative, got %v", v)
	}
}

func TestOrcamentoStatusEnum(t *testing.T) {
	in := OrcamentoInput{ClienteID: "c1", Data: time.Now(), Status: "cancelado"}
	v := Orcamento(&in)
	if v["status"] != "status_invalid" {
		t.Fatalf("expected status_invalid, got %v", v)
	}
}
