// Package pdf implementa la generación de la guía de despacho (packing slip)
// que acompaña cada envío a farmacia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FarmaLink  │  Guía + Token de ruta + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Farmacia + NIT + Dirección                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Pedido | Enviado                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Estado del envío / Costo final                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ orders.PackingSlipGenerator = (*MarotoPackingSlipGenerator)(nil)

// MarotoPackingSlipGenerator implementa orders.PackingSlipGenerator usando Maroto v2.
type MarotoPackingSlipGenerator struct{}

// NewMarotoPackingSlipGenerator construye el generador.
func NewMarotoPackingSlipGenerator() *MarotoPackingSlipGenerator {
	return &MarotoPackingSlipGenerator{}
}

// GeneratePackingSlip genera el PDF y devuelve sus bytes.
func (g *MarotoPackingSlipGenerator) GeneratePackingSlip(_ context.Context, data *orders.PackingSlipData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Despacho", true).
		WithAuthor("FarmaLink", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(destinationRow(&data.Pharmacy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(&data.Shipment))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marca (izq) y número de guía, token de ruta y fecha (der).
func headerRow(data *orders.PackingSlipData) core.Row {
	fecha := data.Shipment.ShippedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("FarmaLink", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Guía de despacho de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GUÍA "+data.Shipment.ID[:8], props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Token de ruta: %d", data.Shipment.RouteToken), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// destinationRow: datos de la farmacia de destino.
func destinationRow(pharmacy *entity.Pharmacy) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(pharmacy.Name, "Farmacia"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Dirección: %s",
				pharmacy.NIT,
				nonEmpty(pharmacy.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
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
		h("Producto", 7, align.Left),
		h("Pedido", 2, align.Right),
		h("Enviado", 3, align.Right),
	)
}

// tableLineRows: una fila por línea enviada.
func tableLineRows(lines []orders.PackingSlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, ln := range lines {
		result = append(result, row.New(7).Add(
			col.New(7).Add(text.New(
				ln.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", ln.Requested),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%d", ln.Shipped),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: estado del envío y costo final con descuento aplicado.
func totalsRow(shipment *entity.Shipment) core.Row {
	estado := "ENVÍO COMPLETO"
	if shipment.Status == entity.ShipmentStatusPartial {
		estado = "ENVÍO PARCIAL"
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
			}),
		),
		col.New(6).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Right: 24,
			}),
			text.New("$"+formatMoney(shipment.FinalCost.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" -> "25.000", "1000000" -> "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
