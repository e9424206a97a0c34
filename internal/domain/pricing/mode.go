// Package pricing es el motor de cálculo de la factura GST: conversión de precios
// incluidos/excluidos de impuesto, conciliación de descuentos, totales por línea y
// agregación por tramo de tasa con redondeo final.
//
// Todas las funciones son puras: no hacen I/O, no registran logs y no retienen
// referencias entre llamadas. El llamador recalcula todo en cada edición.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceMode indica cómo se interpreta el precio unitario mostrado en todas las líneas.
type PriceMode string

const (
	PriceModeInclusive PriceMode = "INCLUSIVE" // el precio ya contiene el GST
	PriceModeExclusive PriceMode = "EXCLUSIVE" // el GST se suma sobre el precio
)

// ErrInvalidPriceMode se devuelve cuando el texto no corresponde a un modo conocido.
var ErrInvalidPriceMode = errors.New("modo de precio inválido")

// ParsePriceMode interpreta "inclusive"/"exclusive" sin importar mayúsculas.
func ParsePriceMode(s string) (PriceMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PriceModeInclusive):
		return PriceModeInclusive, nil
	case string(PriceModeExclusive):
		return PriceModeExclusive, nil
	default:
		return "", ErrInvalidPriceMode
	}
}

// ModeFromInclusiveFlag traduce el flag inclusive_of_tax de un ítem a PriceMode.
func ModeFromInclusiveFlag(inclusive bool) PriceMode {
	if inclusive {
		return PriceModeInclusive
	}
	return PriceModeExclusive
}

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
	one     = decimal.NewFromInt(1)
)

// taxFactor devuelve 1 + rate/100.
func taxFactor(ratePercent decimal.Decimal) decimal.Decimal {
	return one.Add(ratePercent.Div(hundred))
}

// Round2 redondea a 2 decimales (mitad lejos de cero), para valores de pantalla.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
