package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/services"
	"github.com/diewo77/orcafacil/internal/validation"
)

type EmpresaHandler struct {
	Svc *services.EmpresaService
}

func NewEmpresaHandler(svc *services.EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{Svc: svc}
}

// Get: GET /empresa — a missing record answers 200 with configured=false.
func (h *EmpresaHandler) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Svc.Get()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if emp == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"configured": false})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"configured": true, "empresa": emp})
}

// Save: POST /empresa — creates on first use, updates afterwards.
func (h *EmpresaHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NomeEmpresa       string `json:"nome_empresa"`
		TipoDocumento     string `json:"tipo_documento"`
		Documento         string `json:"documento"`
		Endereco          string `json:"endereco"`
		Telefone          string `json:"telefone"`
		Email             string `json:"email"`
		LogoURL           string `json:"logo_url"`
		AssinaturaURL     string `json:"assinatura_url"`
		ObservacoesPadrao string `json:"observacoes_padrao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in := validation.EmpresaInput{
		NomeEmpresa:       req.NomeEmpresa,
		TipoDocumento:     req.TipoDocumento,
		Documento:         req.Documento,
		Endereco:          req.Endereco,
		Telefone:          req.Telefone,
		Email:             req.Email,
		LogoURL:           req.LogoURL,
		AssinaturaURL:     req.AssinaturaURL,
		ObservacoesPadrao: req.ObservacoesPadrao,
	}
	if v := validation.Empresa(&in); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	emp, err := h.Svc.Save(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, emp)
}
