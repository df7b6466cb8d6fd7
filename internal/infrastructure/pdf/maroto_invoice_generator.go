// Package pdf genera la factura imprimible de una venta con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TechStore            │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Atendido por: <operador>                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                               │
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

	"github.com/techstore/pos-api/internal/application/sales"
	"github.com/techstore/pos-api/internal/domain/entity"
)

// storeName razón social mostrada en el encabezado de la factura.
const storeName = "TechStore"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implementa sales.InvoicePDFGenerator usando Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator construye el generador.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateSalePDF genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoInvoiceGenerator) GenerateSalePDF(_ context.Context, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+sale.InvoiceNumber, true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(servedByRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(
		col.New(12).Add(text.New("Gracias por su compra", props.Text{
			Size: 8, Align: align.Center, Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq), número de factura y fecha (der).
func headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func servedByRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Atendido por: "+sale.ServedBy, props.Text{Size: 9, Top: 1}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, a align.Type) core.Col {
		return col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("Cant", align.Left),
		header("Producto", align.Left),
		header("P. Unit", align.Right),
		header("Total", align.Right),
	)
}

func itemRow(item *entity.SaleItem) core.Row {
	cell := func(value string, a align.Type) core.Col {
		return col.New(3).Add(text.New(value, props.Text{Size: 9, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(fmt.Sprintf("%d", item.Quantity), align.Left),
		cell(item.ProductName, align.Left),
		cell(item.UnitPrice.StringFixed(2), align.Right),
		cell(item.TotalPrice.StringFixed(2), align.Right),
	)
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(9).Add(
		col.New(7),
		col.New(5).Add(
			text.New("TOTAL A PAGAR: $"+sale.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
		),
	)
}
