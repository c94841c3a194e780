package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/orcafacil/internal/httpx"
	"github.com/diewo77/orcafacil/internal/services"
	"github.com/diewo77/orcafacil/internal/validation"
)

type ClienteHandler struct {
	Svc *services.ClienteService
}

func NewClienteHandler(svc *services.ClienteService) *ClienteHandler {
	return &ClienteHandler{Svc: svc}
}

type clienteRequest struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	TipoDocumento string `json:"tipo_documento"`
	Documento     string `json:"documento"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Endereco      string `json:"endereco"`
}

func (req *clienteRequest) input() validation.ClienteInput {
	return validation.ClienteInput{
		Nome:          req.Nome,
		TipoDocumento: req.TipoDocumento,
		Documento:     req.Documento,
		Email:         req.Email,
		Telefone:      req.Telefone,
		Endereco:      req.Endereco,
	}
}

// List: GET /clientes
func (h *ClienteHandler) List(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clientes, "total": len(clientes)})
}

// Create: POST /clientes
func (h *ClienteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in := req.input()
	if v := validation.Cliente(&in); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	c, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /clientes/update
func (h *ClienteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	in := req.input()
	if v := validation.Cliente(&in); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	c, err := h.Svc.Update(req.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /clientes/delete
func (h *ClienteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(req.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
