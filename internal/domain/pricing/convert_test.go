package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
)

func TestConvertUnitPrice_MismoModoNoCambia(t *testing.T) {
	got := pricing.ConvertUnitPrice(d("123.456"), d("18"), pricing.PriceModeInclusive, pricing.PriceModeInclusive)
	assertDec(t, "123.456", got, "con el mismo modo el precio se devuelve intacto (sin redondear)")
}

func TestConvertUnitPrice_ExclusivoAInclusivo(t *testing.T) {
	got := pricing.ConvertUnitPrice(d("100"), d("18"), pricing.PriceModeExclusive, pricing.PriceModeInclusive)
	assertDec(t, "118", got)
}

func TestConvertUnitPrice_InclusivoAExclusivo(t *testing.T) {
	got := pricing.ConvertUnitPrice(d("118"), d("18"), pricing.PriceModeInclusive, pricing.PriceModeExclusive)
	assertDec(t, "100", got)

	// 100 / 1.05 = 95.238... → 95.24
	got = pricing.ConvertUnitPrice(d("100"), d("5"), pricing.PriceModeInclusive, pricing.PriceModeExclusive)
	assertDec(t, "95.24", got, "la salida se redondea a 2 decimales")
}

func TestConvertUnitPrice_PrecioCeroNoMeteRuido(t *testing.T) {
	for _, rate := range []string{"0", "5", "12", "18", "28"} {
		got := pricing.ConvertUnitPrice(decimal.Zero, d(rate), pricing.PriceModeExclusive, pricing.PriceModeInclusive)
		assert.True(t, got.IsZero(), "precio 0 debe seguir en 0 con tasa %s", rate)
	}
}

func TestConvertUnitPrice_TasaCeroEsIdentidad(t *testing.T) {
	got := pricing.ConvertUnitPrice(d("49.99"), decimal.Zero, pricing.PriceModeInclusive, pricing.PriceModeExclusive)
	assertDec(t, "49.99", got)
	got = pricing.ConvertUnitPrice(d("49.99"), decimal.Zero, pricing.PriceModeExclusive, pricing.PriceModeInclusive)
	assertDec(t, "49.99", got)
}

// TestConvertUnitPrice_IdaYVuelta: excl → incl → excl vuelve al precio original
// dentro de la tolerancia del redondeo a 2 decimales.
func TestConvertUnitPrice_IdaYVuelta(t *testing.T) {
	prices := []string{"0", "0.01", "0.99", "1", "9.99", "100", "118", "249.50", "1234.56", "99999.99"}
	rates := []string{"0", "3", "5", "12", "18", "28", "40", "99.99"}
	for _, p := range prices {
		for _, r := range rates {
			incl := pricing.ConvertUnitPrice(d(p), d(r), pricing.PriceModeExclusive, pricing.PriceModeInclusive)
			back := pricing.ConvertUnitPrice(incl, d(r), pricing.PriceModeInclusive, pricing.PriceModeExclusive)
			assertNear(t, d(p), back, "0.01", "precio", p, "tasa", r)
		}
	}
}

func TestBaseUnitPrice_NoRedondea(t *testing.T) {
	got := pricing.BaseUnitPrice(d("100"), d("5"), pricing.PriceModeInclusive)
	assert.True(t, got.GreaterThan(d("95.238")) && got.LessThan(d("95.239")),
		"la base interna conserva todos los decimales, obtenido %s", got)
	assertDec(t, "100", pricing.BaseUnitPrice(d("100"), d("5"), pricing.PriceModeExclusive))
}

func TestParsePriceMode(t *testing.T) {
	m, err := pricing.ParsePriceMode("inclusive")
	require.NoError(t, err)
	assert.Equal(t, pricing.PriceModeInclusive, m)

	m, err = pricing.ParsePriceMode(" Exclusive ")
	require.NoError(t, err)
	assert.Equal(t, pricing.PriceModeExclusive, m)

	_, err = pricing.ParsePriceMode("mixto")
	assert.ErrorIs(t, err, pricing.ErrInvalidPriceMode)

	assert.Equal(t, pricing.PriceModeInclusive, pricing.ModeFromInclusiveFlag(true))
	assert.Equal(t, pricing.PriceModeExclusive, pricing.ModeFromInclusiveFlag(false))
}
