package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RateSet es el conjunto de tasas GST configuradas. El motor no lo usa para calcular;
// lo usan los casos de uso para validar la entrada.
type RateSet struct {
	rates []decimal.Decimal
}

// DefaultGSTRates son los tramos vigentes: 0, 5, 12, 18 y 28 %.
func DefaultGSTRates() RateSet {
	return NewRateSet(
		decimal.Zero,
		decimal.NewFromInt(5),
		decimal.NewFromInt(12),
		decimal.NewFromInt(18),
		decimal.NewFromInt(28),
	)
}

// NewRateSet construye el conjunto ordenado y sin duplicados.
func NewRateSet(rates ...decimal.Decimal) RateSet {
	out := make([]decimal.Decimal, 0, len(rates))
	for _, r := range rates {
		dup := false
		for _, o := range out {
			if o.Equal(r) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return RateSet{rates: out}
}

// ParseRateSet interpreta una lista separada por comas ("0,5,12,18,28").
// Cada tasa debe estar en [0,100).
func ParseRateSet(s string) (RateSet, error) {
	var rates []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return RateSet{}, fmt.Errorf("tasa GST %q: %w", part, err)
		}
		if !inRange(d) || d.IsNegative() || d.GreaterThanOrEqual(hundred) {
			return RateSet{}, fmt.Errorf("tasa GST %q fuera de rango [0,100)", part)
		}
		rates = append(rates, d)
	}
	if len(rates) == 0 {
		return RateSet{}, fmt.Errorf("lista de tasas GST vacía")
	}
	return NewRateSet(rates...), nil
}

// Contains indica si la tasa pertenece al conjunto.
func (s RateSet) Contains(rate decimal.Decimal) bool {
	for _, r := range s.rates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// Rates devuelve una copia de las tasas en orden ascendente.
func (s RateSet) Rates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.rates))
	copy(out, s.rates)
	return out
}
