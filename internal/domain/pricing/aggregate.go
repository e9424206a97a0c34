package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxSlab acumula la base imponible de un tramo de tasa distinto de cero.
type TaxSlab struct {
	RatePercent                decimal.Decimal
	TaxableBeforeFinalDiscount decimal.Decimal
	TaxableAfterFinalDiscount  decimal.Decimal
	TaxAmount                  decimal.Decimal
	CGST                       decimal.Decimal
	SGST                       decimal.Decimal
}

// Totals son los totales de la factura.
type Totals struct {
	SubTotal             decimal.Decimal // Σ base excluida de impuesto antes de descuentos de línea
	TaxableTotal         decimal.Decimal // Σ taxable de línea, antes del descuento final
	FinalDiscountPercent decimal.NullDecimal
	FinalDiscountAmount  decimal.Decimal
	DiscountRatio        decimal.Decimal
	FinalTaxableValue    decimal.Decimal
	TotalTax             decimal.Decimal
	ExactGrandTotal      decimal.Decimal
	RoundedGrandTotal    decimal.Decimal
	RoundOff             decimal.Decimal // RoundedGrandTotal - ExactGrandTotal, con signo
}

// Summary es la salida completa del agregador.
type Summary struct {
	Lines  []LineResult // mismo orden que la entrada
	Slabs  []TaxSlab    // ordenados por tasa ascendente
	Totals Totals
}

// CGSTTotal suma la mitad central de todos los tramos.
func (s Summary) CGSTTotal() decimal.Decimal {
	total := decimal.Zero
	for _, sl := range s.Slabs {
		total = total.Add(sl.CGST)
	}
	return total
}

// SGSTTotal suma la mitad estatal de todos los tramos.
func (s Summary) SGSTTotal() decimal.Decimal {
	total := decimal.Zero
	for _, sl := range s.Slabs {
		total = total.Add(sl.SGST)
	}
	return total
}

// ResolveFinalDiscount concilia el descuento final contra el taxable total.
// Manda el monto si viene; si no, el porcentaje.
func ResolveFinalDiscount(final DiscountPair, taxableTotal decimal.Decimal) (amount decimal.Decimal, percent decimal.NullDecimal) {
	switch {
	case final.Amount.Valid:
		return final.Amount.Decimal, PercentFromAmount(final.Amount.Decimal, taxableTotal)
	case final.Percent.Valid:
		amt := AmountFromPercent(final.Percent.Decimal, taxableTotal)
		if !amt.Valid {
			return decimal.Zero, decimal.NullDecimal{}
		}
		return amt.Decimal, final.Percent
	default:
		return decimal.Zero, decimal.NullDecimal{}
	}
}

// Aggregate recorre todas las líneas, agrupa por tasa, reparte el descuento final en
// proporción a la base de cada tramo y calcula el total redondeado con su ajuste.
func Aggregate(lines []Line, final DiscountPair, mode PriceMode) Summary {
	results := make([]LineResult, len(lines))
	subTotal, taxableTotal := decimal.Zero, decimal.Zero
	slabsByRate := make(map[string]*TaxSlab)

	for i, l := range lines {
		r := ComputeLine(l, mode)
		results[i] = r
		if r.Skipped {
			continue
		}
		subTotal = subTotal.Add(r.TotalBaseAmount)
		taxableTotal = taxableTotal.Add(r.TaxableAmount)

		if l.TaxRatePercent.IsZero() {
			continue
		}
		key := l.TaxRatePercent.String()
		slab, ok := slabsByRate[key]
		if !ok {
			slab = &TaxSlab{RatePercent: l.TaxRatePercent}
			slabsByRate[key] = slab
		}
		slab.TaxableBeforeFinalDiscount = slab.TaxableBeforeFinalDiscount.Add(r.TaxableAmount)
	}

	discount, discountPercent := ResolveFinalDiscount(final, taxableTotal)
	finalTaxable := taxableTotal.Sub(discount)

	ratio := decimal.Zero
	if taxableTotal.IsPositive() {
		ratio = discount.Div(taxableTotal)
	}
	keep := one.Sub(ratio)

	slabs := make([]TaxSlab, 0, len(slabsByRate))
	totalTax := decimal.Zero
	for _, s := range slabsByRate {
		s.TaxableAfterFinalDiscount = s.TaxableBeforeFinalDiscount.Mul(keep)
		s.TaxAmount = s.TaxableAfterFinalDiscount.Mul(s.RatePercent).Div(hundred)
		s.CGST = s.TaxAmount.Div(two)
		s.SGST = s.TaxAmount.Div(two)
		totalTax = totalTax.Add(s.TaxAmount)
		slabs = append(slabs, *s)
	}
	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].RatePercent.LessThan(slabs[j].RatePercent)
	})

	exact := finalTaxable.Add(totalTax)
	rounded := exact.Round(0)

	return Summary{
		Lines: results,
		Slabs: slabs,
		Totals: Totals{
			SubTotal:             subTotal,
			TaxableTotal:         taxableTotal,
			FinalDiscountPercent: discountPercent,
			FinalDiscountAmount:  discount,
			DiscountRatio:        ratio,
			FinalTaxableValue:    finalTaxable,
			TotalTax:             totalTax,
			ExactGrandTotal:      exact,
			RoundedGrandTotal:    rounded,
			RoundOff:             rounded.Sub(exact),
		},
	}
}
