package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
)

// resolveMode interpreta el modo pedido; vacío usa el modo por defecto.
func resolveMode(s string, def pricing.PriceMode) (pricing.PriceMode, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	mode, err := pricing.ParsePriceMode(s)
	if err != nil {
		return "", fmt.Errorf("%w: price_mode %q", domain.ErrInvalidInput, s)
	}
	return mode, nil
}

// pairFromFields normaliza el par porcentaje/monto capturado en pantalla.
func pairFromFields(percent, amount dto.NumberField) pricing.DiscountPair {
	return pricing.DiscountPair{
		Percent: pricing.ParseOptionalAmount(percent.String()),
		Amount:  pricing.ParseOptionalAmount(amount.String()),
	}
}

// lineFromRequest normaliza una fila de la pantalla (vacío o mal formado vale cero).
func lineFromRequest(in dto.QuoteLineRequest) pricing.Line {
	return pricing.Line{
		Quantity:       pricing.ParseAmount(in.Quantity.String()),
		FreeQuantity:   pricing.ParseAmount(in.FreeQuantity.String()),
		UnitPrice:      pricing.ParseAmount(in.UnitPrice.String()),
		TaxRatePercent: pricing.ParseAmount(in.GSTRate.String()),
		Discount:       pairFromFields(in.DiscountPercent, in.DiscountAmount),
	}
}

func linesFromRequest(items []dto.QuoteLineRequest) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, lineFromRequest(it))
	}
	return lines
}

func toLineResponse(r pricing.LineResult) dto.QuoteLineResponse {
	return dto.QuoteLineResponse{
		BaseUnitPrice:   pricing.Round2(r.BaseUnitPrice),
		TotalBaseAmount: pricing.Round2(r.TotalBaseAmount),
		DiscountAmount:  pricing.Round2(r.DiscountAmount),
		TaxableAmount:   pricing.Round2(r.TaxableAmount),
		TaxAmount:       pricing.Round2(r.TaxAmount),
		LineTotal:       pricing.Round2(r.LineTotal),
		Skipped:         r.Skipped,
	}
}

var half = decimal.NewFromInt(2)

func toSlabResponses(slabs []pricing.TaxSlab) []dto.TaxSlabResponse {
	out := make([]dto.TaxSlabResponse, 0, len(slabs))
	for _, s := range slabs {
		out = append(out, dto.TaxSlabResponse{
			RatePercent:                s.RatePercent,
			HalfRatePercent:            s.RatePercent.Div(half),
			TaxableBeforeFinalDiscount: pricing.Round2(s.TaxableBeforeFinalDiscount),
			TaxableAfterFinalDiscount:  pricing.Round2(s.TaxableAfterFinalDiscount),
			TaxAmount:                  pricing.Round2(s.TaxAmount),
			CGST:                       pricing.Round2(s.CGST),
			SGST:                       pricing.Round2(s.SGST),
		})
	}
	return out
}

func toTotalsResponse(s pricing.Summary) dto.TotalsResponse {
	t := s.Totals
	return dto.TotalsResponse{
		SubTotal:             pricing.Round2(t.SubTotal),
		TaxableTotal:         pricing.Round2(t.TaxableTotal),
		FinalDiscountPercent: t.FinalDiscountPercent,
		FinalDiscountAmount:  pricing.Round2(t.FinalDiscountAmount),
		FinalTaxableValue:    pricing.Round2(t.FinalTaxableValue),
		CGST:                 pricing.Round2(s.CGSTTotal()),
		SGST:                 pricing.Round2(s.SGSTTotal()),
		TotalTax:             pricing.Round2(t.TotalTax),
		ExactGrandTotal:      pricing.Round2(t.ExactGrandTotal),
		RoundedGrandTotal:    t.RoundedGrandTotal,
		RoundOff:             pricing.Round2(t.RoundOff),
	}
}

func toQuoteResponse(s pricing.Summary, mode pricing.PriceMode) *dto.QuoteResponse {
	lines := make([]dto.QuoteLineResponse, 0, len(s.Lines))
	for _, r := range s.Lines {
		lines = append(lines, toLineResponse(r))
	}
	return &dto.QuoteResponse{
		PriceMode: string(mode),
		Lines:     lines,
		Slabs:     toSlabResponses(s.Slabs),
		Totals:    toTotalsResponse(s),
	}
}
