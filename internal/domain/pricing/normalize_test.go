package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
)

func TestParseAmount_CoercionACero(t *testing.T) {
	cases := map[string]string{
		"":           "0",
		"   ":        "0",
		"abc":        "0",
		"12..5":      "0",
		"42":         "42",
		" 12.50 ":    "12.5",
		"₹1,234.50":  "1234.5",
		"₹ 236.00":   "236",
		"Rs. 5":      "5",
		"1,23,456.7": "123456.7",
	}
	for in, want := range cases {
		assertDec(t, want, pricing.ParseAmount(in), "entrada %q", in)
	}
}

func TestParseOptionalAmount_VacioEsAusente(t *testing.T) {
	assert.False(t, pricing.ParseOptionalAmount("").Valid)
	assert.False(t, pricing.ParseOptionalAmount("x").Valid)
	got := pricing.ParseOptionalAmount("0")
	require.True(t, got.Valid, "un cero explícito no es ausente")
	assert.True(t, got.Decimal.IsZero())
}

func TestParseAmount_ExponentesFueraDeRango(t *testing.T) {
	for _, in := range []string{"1e99999999", "1e-99999999", "-2E40", "1234567890123456789012345678901"} {
		assert.False(t, pricing.ParseOptionalAmount(in).Valid, "entrada %q", in)
		assertDec(t, "0", pricing.ParseAmount(in), "entrada %q", in)
	}
	assertDec(t, "1500", pricing.ParseAmount("1.5e3"))
	assertDec(t, "0.0001", pricing.ParseAmount("1e-4"))
}

func TestAggregate_CantidadConExponenteEnormeTerminaRapido(t *testing.T) {
	done := make(chan pricing.Summary, 1)
	go func() {
		done <- pricing.Aggregate([]pricing.Line{{
			Quantity:       pricing.ParseAmount("1e99999999"),
			UnitPrice:      pricing.ParseAmount("1.5"),
			TaxRatePercent: d("18"),
		}}, pricing.DiscountPair{}, pricing.PriceModeInclusive)
	}()
	select {
	case s := <-done:
		require.Len(t, s.Lines, 1)
		assert.True(t, s.Lines[0].Skipped, "la cantidad mal formada vale cero")
		assertDec(t, "0", s.Totals.RoundedGrandTotal)
	case <-time.After(5 * time.Second):
		t.Fatal("Aggregate no terminó con una cantidad 1e99999999")
	}
}

func TestRateSet(t *testing.T) {
	rs := pricing.DefaultGSTRates()
	for _, r := range []string{"0", "5", "12", "18", "28"} {
		assert.True(t, rs.Contains(d(r)), "la tasa %s es un tramo GST", r)
	}
	assert.False(t, rs.Contains(d("10")))
	assert.True(t, rs.Contains(d("18.00")), "la comparación es por valor")

	parsed, err := pricing.ParseRateSet(" 18, 5 ,0,5")
	require.NoError(t, err)
	rates := parsed.Rates()
	require.Len(t, rates, 3)
	assertDec(t, "0", rates[0])
	assertDec(t, "5", rates[1])
	assertDec(t, "18", rates[2])

	_, err = pricing.ParseRateSet("5,abc")
	assert.Error(t, err)
	_, err = pricing.ParseRateSet("100")
	assert.Error(t, err, "100 % está fuera de [0,100)")
	_, err = pricing.ParseRateSet("-1")
	assert.Error(t, err)
	_, err = pricing.ParseRateSet("1e-99999999")
	assert.Error(t, err)
	_, err = pricing.ParseRateSet(" , ")
	assert.Error(t, err)
}
