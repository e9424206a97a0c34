package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// assertDec compara por valor (100 == 100.00).
func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msgAndArgs)
}

// assertNear compara con tolerancia absoluta.
func assertNear(t *testing.T, want, got decimal.Decimal, tol string, msgAndArgs ...interface{}) {
	t.Helper()
	diff := want.Sub(got).Abs()
	assert.Truef(t, diff.LessThanOrEqual(d(tol)), "esperado %s ± %s, obtenido %s %v", want, tol, got, msgAndArgs)
}
