// Package pdf implementa la generación del reporte de vencimientos de un
// producto con lotes, en orden FEFO (próximos a vencer primero).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto + SKU  │  Fecha del reporte    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lote | Fabricación | Vence | Días | Estado | Cant.  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad total / Valor total / Lotes vencidos     │
//	│  FOOTER: QR del SKU + leyenda FEFO                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	applots "github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain/entity"
	"github.com/tu-usuario/lotes-api/internal/domain/lots"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoExpiryReport implementa lots.ExpiryReportGenerator usando Maroto v2.
type MarotoExpiryReport struct{}

var _ applots.ExpiryReportGenerator = (*MarotoExpiryReport)(nil)

// NewMarotoExpiryReport construye el generador.
func NewMarotoExpiryReport() *MarotoExpiryReport { return &MarotoExpiryReport{} }

// GenerateExpiryReport genera el PDF y devuelve sus bytes. Los lotes deben
// venir ya en orden FEFO; el generador no los reordena.
func (g *MarotoExpiryReport) GenerateExpiryReport(
	_ context.Context,
	product *entity.Product,
	batches []entity.Batch,
	now time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Vencimientos", true).
		WithAuthor(product.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableBatchRows(batches, now) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(batches, now))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(product))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + SKU (izq) y fecha del reporte (der).
func headerRow(product *entity.Product, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENCIMIENTOS (FEFO)", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de lotes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lote", 3, align.Left),
		h("Fabricación", 2, align.Center),
		h("Vence", 2, align.Center),
		h("Días", 1, align.Center),
		h("Estado", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

// tableBatchRows: una fila por lote, con estado y días restantes.
func tableBatchRows(batches []entity.Batch, now time.Time) []core.Row {
	result := make([]core.Row, 0, len(batches))
	for _, b := range batches {
		st := lots.ClassifyExpiry(b.ExpiryDate, now)
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				b.BatchNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatDate(b.ManufacturingDate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatDate(b.ExpiryDate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				formatDays(st),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				tierLabel(st.Tier),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: tierColor(st.Tier)},
			)),
			col.New(2).Add(text.New(
				b.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: cantidad y valor totales más conteo de vencidos.
func totalsRow(batches []entity.Batch, now time.Time) core.Row {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	expired := 0
	for _, b := range batches {
		totalQty = totalQty.Add(b.Quantity)
		totalValue = totalValue.Add(b.Value())
		if lots.ClassifyExpiry(b.ExpiryDate, now).Tier == lots.TierExpired {
			expired++
		}
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}

	expiredColor := colorGray
	if expired > 0 {
		expiredColor = colorDanger
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Cantidad total:"),
			label("Valor total:"),
			label("Lotes vencidos:"),
		),
		col.New(3).Add(
			value(totalQty.String(), nil),
			value("$"+totalValue.StringFixed(2), nil),
			value(fmt.Sprintf("%d", expired), expiredColor),
		),
	)
}

// footerRow: QR del SKU para escanear en bodega + leyenda FEFO.
func footerRow(product *entity.Product) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(product.SKU, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escanea el código QR para identificar\neste producto en bodega.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Despachar siempre el lote con el vencimiento\nmás próximo (FEFO).", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 18, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}

func formatDays(st lots.ExpiryStatus) string {
	if st.Tier == lots.TierUndated {
		return "—"
	}
	return fmt.Sprintf("%d", st.DaysRemaining)
}

func tierLabel(tier lots.ExpiryTier) string {
	switch tier {
	case lots.TierExpired:
		return "VENCIDO"
	case lots.TierExpiringSoon:
		return "POR VENCER"
	case lots.TierHealthy:
		return "VIGENTE"
	default:
		return "SIN FECHA"
	}
}

func tierColor(tier lots.ExpiryTier) *props.Color {
	switch tier {
	case lots.TierExpired:
		return colorDanger
	case lots.TierExpiringSoon:
		return colorWarn
	default:
		return colorGray
	}
}
