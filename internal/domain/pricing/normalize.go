package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Límites de lo que se acepta como número del formulario. Un exponente enorme ("1e99999999")
// obliga a decimal a reescalar a un entero gigante en la primera suma.
const (
	maxAmountExponent = 28
	maxAmountDigits   = 30
)

// currencyMarkers son los prefijos que se quitan antes de interpretar un monto.
var currencyMarkers = []string{"₹", "Rs.", "Rs", "INR"}

// ParseAmount convierte el texto de un campo numérico a decimal. Vacío o mal formado
// vale cero; nunca devuelve error.
func ParseAmount(s string) decimal.Decimal {
	if d := ParseOptionalAmount(s); d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

// ParseOptionalAmount igual que ParseAmount, pero distingue el campo vacío (Valid=false),
// que es lo que necesita un descuento "ausente".
func ParseOptionalAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	for _, m := range currencyMarkers {
		s = strings.TrimPrefix(s, m)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !inRange(d) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxAmountExponent && exp <= maxAmountExponent && d.NumDigits() <= maxAmountDigits
}
