package pricing

import "github.com/shopspring/decimal"

// Line es una fila de la factura tal como la ingresa el usuario.
// FreeQuantity es informativo: nunca entra en la aritmética.
type Line struct {
	Quantity       decimal.Decimal
	FreeQuantity   decimal.Decimal
	UnitPrice      decimal.Decimal // precio mostrado; su sentido depende del PriceMode
	TaxRatePercent decimal.Decimal
	Discount       DiscountPair
}

// LineResult son los valores derivados de una línea (sin redondear).
type LineResult struct {
	BaseUnitPrice   decimal.Decimal
	TotalBaseAmount decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxableAmount   decimal.Decimal
	TaxAmount       decimal.Decimal
	LineTotal       decimal.Decimal
	Skipped         bool // cantidad cero: no aporta a ningún total
}

// ComputeLine calcula base imponible, impuesto y total de una línea.
// El taxable puede quedar negativo si el descuento supera la base; no se corrige.
func ComputeLine(line Line, mode PriceMode) LineResult {
	if line.Quantity.IsZero() {
		return LineResult{Skipped: true}
	}
	base := BaseUnitPrice(line.UnitPrice, line.TaxRatePercent, mode)
	totalBase := line.Quantity.Mul(base)
	discount := line.Discount.ResolveAmount(PreDiscountTotal(line.Quantity, line.UnitPrice))
	taxable := totalBase.Sub(discount)
	tax := taxable.Mul(line.TaxRatePercent).Div(hundred)
	return LineResult{
		BaseUnitPrice:   base,
		TotalBaseAmount: totalBase,
		DiscountAmount:  discount,
		TaxableAmount:   taxable,
		TaxAmount:       tax,
		LineTotal:       taxable.Add(tax),
	}
}
