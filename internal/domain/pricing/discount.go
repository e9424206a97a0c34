package pricing

import "github.com/shopspring/decimal"

// DiscountPair agrupa el descuento en porcentaje y en monto de una línea (o del total).
// Solo uno de los dos es el que "manda" en cada edición; el otro se deriva.
// Ambos pueden estar vacíos (sin descuento).
type DiscountPair struct {
	Percent decimal.NullDecimal
	Amount  decimal.NullDecimal
}

// DiscountField identifica el campo que editó el usuario.
type DiscountField int

const (
	DiscountPercentEdited DiscountField = iota + 1
	DiscountAmountEdited
)

// PreDiscountTotal es cantidad × precio mostrado. No se ajusta por impuesto: el
// descuento opera sobre el precio tal como lo ve el usuario.
func PreDiscountTotal(quantity, displayedUnitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(displayedUnitPrice)
}

// AmountFromPercent deriva el monto a partir del porcentaje. Si el porcentaje o la base
// no son positivos, el monto queda vacío.
func AmountFromPercent(percent, preDiscountTotal decimal.Decimal) decimal.NullDecimal {
	if !percent.IsPositive() || !preDiscountTotal.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(Round2(preDiscountTotal.Mul(percent).Div(hundred)))
}

// PercentFromAmount deriva el porcentaje a partir del monto. Si el monto o la base no
// son positivos, el porcentaje queda vacío.
func PercentFromAmount(amount, preDiscountTotal decimal.Decimal) decimal.NullDecimal {
	if !amount.IsPositive() || !preDiscountTotal.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(Round2(amount.Div(preDiscountTotal).Mul(hundred)))
}

// ResolveAmount devuelve el monto efectivo del descuento: el monto si existe, si no el
// derivado del porcentaje contra la base, y cero si no hay ninguno.
func (p DiscountPair) ResolveAmount(preDiscountTotal decimal.Decimal) decimal.Decimal {
	if p.Amount.Valid {
		return p.Amount.Decimal
	}
	if p.Percent.Valid {
		if amt := AmountFromPercent(p.Percent.Decimal, preDiscountTotal); amt.Valid {
			return amt.Decimal
		}
	}
	return decimal.Zero
}

// DiscountSync ejecuta una sola pasada de sincronización por edición. El latch
// inFlight vive en el objeto (no es global): mientras se escribe el campo derivado,
// cualquier Apply reentrante (por ejemplo disparado desde OnDerived) se ignora.
type DiscountSync struct {
	// OnDerived se invoca después de escribir el campo derivado, con el latch tomado.
	OnDerived func(edited DiscountField, pair DiscountPair)

	inFlight bool
}

// Apply propaga en un solo sentido: porcentaje→monto o monto→porcentaje.
// El campo editado se conserva tal cual.
func (s *DiscountSync) Apply(edited DiscountField, pair DiscountPair, preDiscountTotal decimal.Decimal) DiscountPair {
	if s.inFlight {
		return pair
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	out := pair
	switch edited {
	case DiscountPercentEdited:
		out.Amount = AmountFromPercent(pair.Percent.Decimal, preDiscountTotal)
	case DiscountAmountEdited:
		out.Percent = PercentFromAmount(pair.Amount.Decimal, preDiscountTotal)
	default:
		return pair
	}
	if s.OnDerived != nil {
		s.OnDerived(edited, out)
	}
	return out
}

// InFlight indica si hay una pasada de sincronización en curso.
func (s *DiscountSync) InFlight() bool { return s.inFlight }
