package pricing

import "github.com/shopspring/decimal"

// ConvertUnitPrice convierte un precio mostrado entre los modos incluido y excluido de
// impuesto. El resultado se redondea a 2 decimales porque se vuelve a mostrar en la fila.
// Un precio en cero se devuelve tal cual para no introducir ruido en filas vacías.
func ConvertUnitPrice(price, ratePercent decimal.Decimal, from, to PriceMode) decimal.Decimal {
	if from == to {
		return price
	}
	if price.IsZero() {
		return decimal.Zero
	}
	factor := taxFactor(ratePercent)
	if factor.IsZero() {
		// rate = -100: no hay conversión posible, se deja el precio igual
		return price
	}
	if to == PriceModeInclusive {
		return Round2(price.Mul(factor))
	}
	return Round2(price.Div(factor))
}

// BaseUnitPrice devuelve el precio excluido de impuesto sin redondear, que es el que
// usa el cálculo de líneas.
func BaseUnitPrice(price, ratePercent decimal.Decimal, mode PriceMode) decimal.Decimal {
	if mode != PriceModeInclusive || price.IsZero() {
		return price
	}
	factor := taxFactor(ratePercent)
	if factor.IsZero() {
		return price
	}
	return price.Div(factor)
}
