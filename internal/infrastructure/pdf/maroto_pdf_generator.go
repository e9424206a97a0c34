// Package pdf implementa la representación gráfica de la factura GST (Tax Invoice).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio + GSTIN │ TAX INVOICE + N° + Fecha│
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Estado                           │
//	│  CLIENTE: Nombre + GSTIN + dirección + lugar de suministro  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Artículo | HSN | Cant | Libre | Precio | Desc |  │
//	│         GST% | Monto                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRAMOS: Tasa | Taxable | CGST | SGST | Total impuesto      │
//	│  TOTALES: Subtotal / Descuento / Taxable / Impuesto /       │
//	│           Ajuste / TOTAL                                    │
//	│  MONTO EN LETRAS + notas                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/format"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

var decimalTwo = decimal.NewFromInt(2)

// ── Temas ─────────────────────────────────────────────────────────────────────

type theme struct {
	primary *props.Color
	gray    *props.Color
	font    string
}

var themes = map[string]theme{
	appbilling.ThemeDefault:    {primary: &props.Color{Red: 0, Green: 70, Blue: 127}, gray: &props.Color{Red: 100, Green: 100, Blue: 100}, font: "helvetica"},
	appbilling.ThemeModern:     {primary: &props.Color{Red: 88, Green: 28, Blue: 135}, gray: &props.Color{Red: 90, Green: 90, Blue: 110}, font: "helvetica"},
	appbilling.ThemeMinimalist: {primary: &props.Color{Red: 30, Green: 30, Blue: 30}, gray: &props.Color{Red: 130, Green: 130, Blue: 130}, font: "helvetica"},
	appbilling.ThemeClassic:    {primary: &props.Color{Red: 120, Green: 20, Blue: 20}, gray: &props.Color{Red: 90, Green: 80, Blue: 70}, font: "times"},
}

// ── Generator ─────────────────────────────────────────────────────────────────

// BusinessInfo datos del emisor impresos en el encabezado.
type BusinessInfo struct {
	Name    string
	GSTIN   string
	Address string
	Phone   string
	State   string
}

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	business BusinessInfo
	fmt      *format.Formatter
}

// NewMarotoPDFGenerator construye el generador. Las fuentes base del PDF no traen "₹":
// conviene pasar un formatter con símbolo "Rs. ".
func NewMarotoPDFGenerator(business BusinessInfo, formatter *format.Formatter) *MarotoPDFGenerator {
	if formatter == nil {
		formatter = format.New("Rs. ")
	}
	return &MarotoPDFGenerator{business: business, fmt: formatter}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc appbilling.InvoiceDocument) ([]byte, error) {
	th, ok := themes[doc.Theme]
	if !ok {
		th = themes[appbilling.ThemeDefault]
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: th.font, Size: 9}).
		WithTitle("Tax Invoice "+doc.Invoice.InvoiceNo, true).
		WithAuthor(nonEmpty(g.business.Name, "facturacion-gst"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(th, doc.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: th.primary, Thickness: 0.5}))
	m.AddRows(g.businessRow(th))
	m.AddRows(customerRow(th, doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: th.primary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(th, doc.Mode))
	m.AddRows(g.tableItemRows(doc.Items)...)

	if len(doc.Summary.Slabs) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: th.primary, Thickness: 0.3}))
		m.AddRows(slabHeaderRow(th))
		m.AddRows(g.slabRows(doc.Summary.Slabs)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: th.primary, Thickness: 0.3}))
	m.AddRows(g.totalsRows(th, doc.Summary)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: th.gray, Thickness: 0.3}))
	m.AddRows(footerRows(th, doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio + GSTIN (izq) y TAX INVOICE + N° + fecha (der).
func (g *MarotoPDFGenerator) headerRow(th theme, inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.business.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: th.primary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(g.business.GSTIN, "-"), props.Text{
				Size: 9, Top: 9, Color: th.gray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: th.primary, Top: 1,
			}),
			text.New(inv.InvoiceNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Date: %s   |   %s", inv.Date.Format("02/01/2006"), inv.SaleType), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: th.gray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) businessRow(th theme) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%s   |   Ph: %s   |   State: %s",
				nonEmpty(g.business.Address, "-"),
				nonEmpty(g.business.Phone, "-"),
				nonEmpty(g.business.State, "-"),
			), props.Text{Size: 8, Top: 2, Color: th.gray}),
		),
	)
}

// customerRow: datos del comprador (Bill To).
func customerRow(th theme, c *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: th.primary, Top: 1,
			}),
			text.New(nonEmpty(c.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(nonEmpty(c.Address, "-"), props.Text{Size: 8, Top: 10, Color: th.gray}),
			text.New(fmt.Sprintf("GSTIN: %s   |   Ph: %s   |   Place of supply: %s",
				nonEmpty(c.GSTIN, "Unregistered"),
				nonEmpty(c.Phone, "-"),
				nonEmpty(c.PlaceOfSupply, "-"),
			), props.Text{Size: 8, Top: 14, Color: th.gray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas. El rótulo del precio indica el modo.
func tableHeaderRow(th theme, mode pricing.PriceMode) core.Row {
	priceLabel := "Rate (excl.)"
	if mode == pricing.PriceModeInclusive {
		priceLabel = "Rate (incl.)"
	}
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: th.primary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 3, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Free", 1, align.Right),
		h(priceLabel, 1, align.Right),
		h("Disc.", 1, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: una fila por línea.
func (g *MarotoPDFGenerator) tableItemRows(items []*entity.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		qty := format.Quantity(it.Quantity)
		if it.Unit != "" {
			qty += " " + it.Unit
		}
		result = append(result, row.New(7).Add(
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(nonEmpty(it.ItemName, it.ItemID), 3, align.Left),
			cell(it.HSNCode, 1, align.Center),
			cell(qty, 1, align.Right),
			cell(format.Quantity(it.FreeQuantity), 1, align.Right),
			cell(g.fmt.Number(it.PricePerUnit), 1, align.Right),
			cell(g.fmt.Number(it.Discount), 1, align.Right),
			cell(format.Percent(it.GSTRate), 1, align.Center),
			cell(g.fmt.Number(it.TotalAmount), 2, align.Right),
		))
	}
	return result
}

func slabHeaderRow(th theme) core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: th.primary, Top: 2, Right: 1,
		}))
	}
	return row.New(7).Add(h("GST rate", 2), h("Taxable value", 3), h("CGST", 2), h("SGST", 2), h("Total tax", 3))
}

// slabRows: desglose por tramo; CGST y SGST llevan la mitad de la tasa.
func (g *MarotoPDFGenerator) slabRows(slabs []pricing.TaxSlab) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(slabs))
	for _, s := range slabs {
		half := format.Percent(s.RatePercent.Div(decimalTwo))
		out = append(out, row.New(6).Add(
			cell(format.Percent(s.RatePercent), 2),
			cell(g.fmt.Number(s.TaxableAfterFinalDiscount), 3),
			cell(fmt.Sprintf("%s @ %s", g.fmt.Number(s.CGST), half), 2),
			cell(fmt.Sprintf("%s @ %s", g.fmt.Number(s.SGST), half), 2),
			cell(g.fmt.Number(s.TaxAmount), 3),
		))
	}
	return out
}

// totalsRows: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRows(th theme, s pricing.Summary) []core.Row {
	t := s.Totals
	pair := func(label, value string, grand bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if grand {
			p = props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: th.primary, Right: 1}
		}
		lp := p
		lp.Style = fontstyle.Bold
		return row.New(5).Add(col.New(6), col.New(3).Add(text.New(label, lp)), col.New(3).Add(text.New(value, p)))
	}

	discount := g.fmt.Money(t.FinalDiscountAmount)
	if t.FinalDiscountPercent.Valid {
		discount = fmt.Sprintf("%s (%s)", discount, format.Percent(pricing.Round2(t.FinalDiscountPercent.Decimal)))
	}
	rows := []core.Row{
		pair("Sub total:", g.fmt.Money(t.SubTotal), false),
		pair("Discount:", discount, false),
		pair("Taxable value:", g.fmt.Money(t.FinalTaxableValue), false),
		pair("CGST:", g.fmt.Money(s.CGSTTotal()), false),
		pair("SGST:", g.fmt.Money(s.SGSTTotal()), false),
		pair("Round off:", g.fmt.Money(t.RoundOff), false),
		row.New(2),
		pair("GRAND TOTAL:", g.fmt.Money(t.RoundedGrandTotal), true),
	}
	return rows
}

// footerRows: monto en letras, notas y leyenda.
func footerRows(th theme, doc appbilling.InvoiceDocument) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("Amount in words:", props.Text{Style: fontstyle.Bold, Size: 8, Color: th.primary, Top: 1}),
			text.New(format.AmountInWords(doc.Summary.Totals.RoundedGrandTotal), props.Text{Size: 9, Top: 5}),
		)),
	}
	if doc.Invoice.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notes:", props.Text{Style: fontstyle.Bold, Size: 8, Color: th.primary, Top: 1}),
			text.New(doc.Invoice.Notes, props.Text{Size: 8, Top: 5, Color: th.gray}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("This is a computer generated invoice.", props.Text{
			Size: 7, Align: align.Center, Color: th.gray, Top: 3,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
