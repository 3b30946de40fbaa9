// Package pdf genera la versión imprimible de los borradores de pedido a proveedores.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                        │  Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR + Asunto                                          │
//	│  TABLA: SKU | Ítem | Cant. | Motivo                          │
//	│  Cuerpo del correo                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  (un bloque por proveedor)                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/ports"
)

var _ ports.DraftsPDFRenderer = (*MarotoDraftsGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoDraftsGenerator implementa ports.DraftsPDFRenderer usando Maroto v2.
type MarotoDraftsGenerator struct {
	title string
}

// NewMarotoDraftsGenerator construye el generador. title va en la cabecera y en los metadatos.
func NewMarotoDraftsGenerator(title string) *MarotoDraftsGenerator {
	if title == "" {
		title = "Purchase Order Drafts"
	}
	return &MarotoDraftsGenerator{title: title}
}

// RenderSupplierDrafts genera el PDF y devuelve sus bytes. Sin borradores produce una página con el aviso.
func (g *MarotoDraftsGenerator) RenderSupplierDrafts(_ context.Context, drafts []dto.SupplierDraft, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt, len(drafts)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(drafts) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No items need reordering.", props.Text{Size: 10, Top: 4, Color: colorGray, Align: align.Center}),
		)))
	}
	for _, d := range drafts {
		m.AddRows(supplierRow(d))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableItemRows(d.Items)...)
		m.AddRows(bodyRows(d.Body)...)
		m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + número de proveedores (der).
func headerRow(title string, generatedAt time.Time, suppliers int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Date: "+generatedAt.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Suppliers: "+strconv.Itoa(suppliers), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// supplierRow: proveedor y asunto del correo.
func supplierRow(d dto.SupplierDraft) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(d.Supplier, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
			text.New(d.Subject, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Item", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Reason", 5, align.Left),
	)
}

// tableItemRows: una fila por ítem a pedir.
func tableItemRows(items []dto.DraftItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		sku := "—"
		if it.SKU != nil && *it.SKU != "" {
			sku = *it.SKU
		}
		qty := ""
		if it.QtyToOrder != nil {
			qty = strconv.Itoa(*it.QtyToOrder)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(sku, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Reason, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// bodyRows: cuerpo del correo, una fila por línea (las vacías dejan un espacio).
func bodyRows(body string) []core.Row {
	rows := []core.Row{row.New(3)}
	for _, l := range strings.Split(body, "\n") {
		if strings.TrimSpace(l) == "" {
			rows = append(rows, row.New(3))
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Left: 2}),
		)))
	}
	return rows
}
