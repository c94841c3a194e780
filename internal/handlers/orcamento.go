package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/sirupsen/logrus"

	"github.com/diewo77/orcafacil/internal/httpx"
	pdfgen "github.com/diewo77/orcafacil/internal/pdf"
	"github.com/diewo77/orcafacil/internal/services"
	"github.com/diewo77/orcafacil/internal/validation"
)

type OrcamentoHandler struct {
	Svc        *services.OrcamentoService
	EmpresaSvc *services.EmpresaService
}

func NewOrcamentoHandler(svc *services.OrcamentoService, emp *services.EmpresaService) *OrcamentoHandler {
	return &OrcamentoHandler{Svc: svc, EmpresaSvc: emp}
}

type itemRequest struct {
	Descricao     string  `json:"descricao"`
	Quantidade    int     `json:"quantidade"`
	ValorUnitario float64 `json:"valor_unitario"`
}

type orcamentoRequest struct {
	ID          uint          `json:"id"`
	ClienteID   string        `json:"cliente_id"`
	Data        string        `json:"data"` // YYYY-MM-DD
	Status      string        `json:"status"`
	Observacoes string        `json:"observacoes"`
	Itens       []itemRequest `json:"itens"`
}

func (req *orcamentoRequest) input() (validation.OrcamentoInput, error) {
	in := validation.OrcamentoInput{
		ClienteID:   req.ClienteID,
		Status:      req.Status,
		Observacoes: req.Observacoes,
	}
	if req.Data != "" {
		d, err := time.Parse("2006-01-02", req.Data)
		if err != nil {
			return in, err
		}
		in.Data = d
	}
	for _, it := range req.Itens {
		in.Itens = append(in.Itens, validation.ItemInput{
			Descricao:     it.Descricao,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
		})
	}
	return in, nil
}

// List: GET /orcamentos — items preloaded, most recent first. Each entry
// carries the quick actions its status offers so the client never renders a
// transition control for a non-pending quote.
func (h *OrcamentoHandler) List(w http.ResponseWriter, r *http.Request) {
	orcs, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items := make([]map[string]any, 0, len(orcs))
	for _, o := range orcs {
		items = append(items, map[string]any{
			"orcamento":     o,
			"acoes_rapidas": services.QuickActions(o.Status),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(orcs)})
}

// Create: POST /orcamentos
func (h *OrcamentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orcamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in, err := req.input()
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"data": "invalid_date"})
		return
	}
	if v := validation.Orcamento(&in); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	orc, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, orc)
}

// Update: POST /orcamentos/update — full edit, replaces the item set.
func (h *OrcamentoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req orcamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	in, err := req.input()
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"data": "invalid_date"})
		return
	}
	if v := validation.Orcamento(&in); !v.Empty() {
		writeViolations(w, r, v)
		return
	}
	orc, err := h.Svc.Update(req.ID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orc)
}

// Delete: POST /orcamentos/delete
func (h *OrcamentoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(req.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Status: POST /orcamentos/status — the quick-action transition.
func (h *OrcamentoHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.QuickStatus(req.ID, req.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// PDF: GET /orcamentos/pdf?id=...
func (h *OrcamentoHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	orc, err := h.Svc.GetByID(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	emp, err := h.EmpresaSvc.Get()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if emp == nil {
		httpx.JSONError(w, http.StatusConflict, "empresa_not_configured", nil)
		return
	}

	doc := pdfgen.Documento{Orcamento: *orc, Cliente: orc.Cliente, Empresa: *emp}
	if emp.LogoURL != "" {
		doc.Logo, doc.LogoExt = fetchImage(emp.LogoURL)
	}
	if emp.AssinaturaURL != "" {
		doc.Assinatura, doc.AssinExt = fetchImage(emp.AssinaturaURL)
	}
	data, genErr := pdfgen.Render(doc)
	if genErr != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"orcamento-%04d.pdf\"", orc.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var imageClient = &http.Client{Timeout: 5 * time.Second}

// fetchImage downloads an image reference. Failures are tolerated: the
// document renders without the image.
func fetchImage(url string) ([]byte, extension.Type) {
	resp, err := imageClient.Get(url)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Warn("image fetch failed")
		return nil, extension.Png
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logrus.WithField("url", url).WithField("status", resp.StatusCode).Warn("image fetch failed")
		return nil, extension.Png
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, extension.Png
	}
	ext := extension.Jpg
	if strings.HasSuffix(strings.ToLower(url), ".png") {
		ext = extension.Png
	}
	return data, ext
}
