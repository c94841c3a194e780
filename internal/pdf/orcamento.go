// Package pdf renders a quote as a printable A4 document. The mapping from
// (quote, client, company) to the document is deterministic: identical
// inputs produce an identical layout.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/orcafacil/internal/models"
	"github.com/diewo77/orcafacil/internal/moedas"
	"github.com/diewo77/orcafacil/internal/services"
)

// Documento bundles everything the renderer needs. Logo and Assinatura hold
// already-fetched image bytes; either may be nil, in which case the block is
// simply omitted.
type Documento struct {
	Orcamento  models.Orcamento
	Cliente    models.Cliente
	Empresa    models.InformacoesEmpresa
	Logo       []byte
	LogoExt    extension.Type
	Assinatura []byte
	AssinExt   extension.Type
}

var (
	titleColor   = &props.Color{Red: 43, Green: 108, Blue: 176}
	labelColor   = &props.Color{Red: 102, Green: 102, Blue: 102}
	statusColors = map[string]*props.Color{
		models.StatusPendente:  {Red: 151, Green: 90, Blue: 22},
		models.StatusAprovado:  {Red: 34, Green: 120, Blue: 52},
		models.StatusRejeitado: {Red: 155, Green: 44, Blue: 44},
	}
)

// Render produces the PDF bytes.
func Render(d Documento) ([]byte, error) {
	m := build(d)
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func build(d Documento) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(headerRows(d)...)
	m.AddRows(empresaRows(d.Empresa)...)
	m.AddRows(clienteRows(d.Cliente)...)
	m.AddRows(itensRows(d.Orcamento.Itens)...)
	m.AddRows(totalRow(d.Orcamento.ValorTotal))
	m.AddRows(observacoesRows(d.Orcamento.Observacoes, d.Empresa.ObservacoesPadrao)...)
	m.AddRows(assinaturaRows(d)...)
	return m
}

func headerRows(d Documento) []core.Row {
	title := fmt.Sprintf("ORÇAMENTO Nº %04d", d.Orcamento.ID)
	head := row.New(16)
	if d.Logo != nil {
		head.Add(
			image.NewFromBytesCol(4, d.Logo, d.LogoExt, props.Rect{Center: false, Percent: 90}),
			text.NewCol(8, title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right, Color: titleColor}),
		)
	} else {
		head.Add(text.NewCol(12, title, props.Text{Size: 16, Style: fontstyle.Bold, Color: titleColor}))
	}
	status := d.Orcamento.Status
	meta := row.New(8).Add(
		text.NewCol(6, "Data: "+d.Orcamento.Data.Format("02/01/2006"), props.Text{Size: 10}),
		text.NewCol(6, statusLabel(status), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: statusColor(status),
		}),
	)
	return []core.Row{head, meta, line.NewRow(4)}
}

func statusLabel(status string) string {
	switch status {
	case models.StatusAprovado:
		return "APROVADO"
	case models.StatusRejeitado:
		return "REJEITADO"
	default:
		return "PENDENTE"
	}
}

func statusColor(status string) *props.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[models.StatusPendente]
}

func empresaRows(e models.InformacoesEmpresa) []core.Row {
	doc := fmt.Sprintf("%s: %s", docLabel(e.TipoDocumento), e.Documento)
	return []core.Row{
		row.New(6).Add(text.NewCol(12, "Empresa", props.Text{Size: 11, Style: fontstyle.Bold})),
		row.New(5).Add(
			text.NewCol(6, e.NomeEmpresa, props.Text{Size: 10}),
			text.NewCol(6, doc, props.Text{Size: 10}),
		),
		row.New(5).Add(
			text.NewCol(6, e.Endereco, props.Text{Size: 9, Color: labelColor}),
			text.NewCol(6, contato(e.Telefone, e.Email), props.Text{Size: 9, Color: labelColor}),
		),
	}
}

func clienteRows(c models.Cliente) []core.Row {
	doc := fmt.Sprintf("%s: %s", docLabel(c.TipoDocumento), c.Documento)
	return []core.Row{
		row.New(8).Add(text.NewCol(12, "Cliente", props.Text{Size: 11, Style: fontstyle.Bold, Top: 3})),
		row.New(5).Add(
			text.NewCol(6, c.Nome, props.Text{Size: 10}),
			text.NewCol(6, doc, props.Text{Size: 10}),
		),
		row.New(5).Add(
			text.NewCol(6, c.Endereco, props.Text{Size: 9, Color: labelColor}),
			text.NewCol(6, contato(c.Telefone, c.Email), props.Text{Size: 9, Color: labelColor}),
		),
	}
}

func docLabel(tipo string) string {
	if tipo == models.DocumentoCNPJ {
		return "CNPJ"
	}
	return "CPF"
}

func contato(telefone, email string) string {
	switch {
	case telefone != "" && email != "":
		return telefone + " · " + email
	case telefone != "":
		return telefone
	default:
		return email
	}
}

func itensRows(itens []models.ItemOrcamento) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(6, "Descrição", props.Text{Size: 10, Style: fontstyle.Bold, Top: 3}),
			text.NewCol(2, "Qtd.", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Top: 3}),
			text.NewCol(2, "Valor unit.", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Top: 3}),
			text.NewCol(2, "Subtotal", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Top: 3}),
		),
		line.NewRow(2),
	}
	for _, it := range itens {
		subtotal := services.RoundCents(float64(it.Quantidade) * it.ValorUnitario)
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, it.Descricao, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantidade), props.Text{Size: 9, Align: align.Center}),
			text.NewCol(2, moedas.BRL(it.ValorUnitario), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, moedas.BRL(subtotal), props.Text{Size: 9, Align: align.Right}),
		))
	}
	return rows
}

func totalRow(total float64) core.Row {
	return row.New(10).Add(
		col.New(8),
		text.NewCol(4, "Total: "+moedas.BRL(total), props.Text{
			Size: 12, Style: fontstyle.Bold, Align: align.Right, Top: 3,
		}),
	)
}

// observacoesRows merges the quote's own notes with the company's standing
// default notes: both when both exist, one when only one exists, and no
// section at all when neither does.
func observacoesRows(doOrcamento, daEmpresa string) []core.Row {
	if doOrcamento == "" && daEmpresa == "" {
		return nil
	}
	rows := []core.Row{
		row.New(8).Add(text.NewCol(12, "Observações", props.Text{Size: 10, Style: fontstyle.Bold, Top: 3})),
	}
	if doOrcamento != "" {
		rows = append(rows, row.New(5).Add(text.NewCol(12, doOrcamento, props.Text{Size: 9})))
	}
	if daEmpresa != "" {
		rows = append(rows, row.New(5).Add(text.NewCol(12, daEmpresa, props.Text{Size: 9})))
	}
	return rows
}

func assinaturaRows(d Documento) []core.Row {
	if d.Assinatura == nil {
		return nil
	}
	return []core.Row{
		row.New(20).Add(
			col.New(4),
			image.NewFromBytesCol(4, d.Assinatura, d.AssinExt, props.Rect{Center: true, Percent: 70}),
			col.New(4),
		),
		row.New(5).Add(text.NewCol(12, d.Empresa.NomeEmpresa, props.Text{Size: 9, Align: align.Center, Color: labelColor})),
	}
}
