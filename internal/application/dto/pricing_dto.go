package dto

import "github.com/shopspring/decimal"

// QuoteLineRequest fila de la factura tal como la captura la pantalla.
type QuoteLineRequest struct {
	ItemID          string      `json:"item_id,omitempty"`
	HSNCode         string      `json:"hsn_code,omitempty"`
	Unit            string      `json:"unit,omitempty"`
	Quantity        NumberField `json:"quantity"`
	FreeQuantity    NumberField `json:"free_quantity"`
	UnitPrice       NumberField `json:"price_per_unit"` // según price_mode
	GSTRate         NumberField `json:"gst_rate"`
	DiscountPercent NumberField `json:"discount_percent"`
	DiscountAmount  NumberField `json:"discount_amount"`
}

// QuoteRequest body para POST /api/pricing/quote.
type QuoteRequest struct {
	PriceMode            string             `json:"price_mode"` // inclusive | exclusive (vacío = configuración)
	Items                []QuoteLineRequest `json:"items"`
	FinalDiscountPercent NumberField        `json:"final_discount_percent"`
	FinalDiscountAmount  NumberField        `json:"final_discount_amount"`
}

// QuoteLineResponse valores derivados de una fila (redondeados a 2 decimales).
type QuoteLineResponse struct {
	BaseUnitPrice   decimal.Decimal `json:"base_unit_price"`
	TotalBaseAmount decimal.Decimal `json:"total_base_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Skipped         bool            `json:"skipped"`
}

// TaxSlabResponse desglose CGST/SGST de un tramo.
type TaxSlabResponse struct {
	RatePercent                decimal.Decimal `json:"rate_percent"`
	HalfRatePercent            decimal.Decimal `json:"half_rate_percent"`
	TaxableBeforeFinalDiscount decimal.Decimal `json:"taxable_before_final_discount"`
	TaxableAfterFinalDiscount  decimal.Decimal `json:"taxable_after_final_discount"`
	TaxAmount                  decimal.Decimal `json:"tax_amount"`
	CGST                       decimal.Decimal `json:"cgst"`
	SGST                       decimal.Decimal `json:"sgst"`
}

// TotalsResponse totales de la factura.
type TotalsResponse struct {
	SubTotal             decimal.Decimal     `json:"sub_total"`
	TaxableTotal         decimal.Decimal     `json:"taxable_total"`
	FinalDiscountPercent decimal.NullDecimal `json:"final_discount_percent"`
	FinalDiscountAmount  decimal.Decimal     `json:"final_discount_amount"`
	FinalTaxableValue    decimal.Decimal     `json:"final_taxable_value"`
	CGST                 decimal.Decimal     `json:"cgst"`
	SGST                 decimal.Decimal     `json:"sgst"`
	TotalTax             decimal.Decimal     `json:"total_tax"`
	ExactGrandTotal      decimal.Decimal     `json:"exact_grand_total"`
	RoundedGrandTotal    decimal.Decimal     `json:"rounded_grand_total"`
	RoundOff             decimal.Decimal     `json:"round_off"`
}

// QuoteResponse resultado completo del motor de precios.
type QuoteResponse struct {
	PriceMode string              `json:"price_mode"`
	Lines     []QuoteLineResponse `json:"lines"`
	Slabs     []TaxSlabResponse   `json:"tax_slabs"`
	Totals    TotalsResponse      `json:"totals"`
}

// DiscountSyncRequest body para POST /api/pricing/discount.
// Scope "line" usa quantity × price_per_unit como base; "final" usa taxable_total.
type DiscountSyncRequest struct {
	Scope        string      `json:"scope" validate:"required,oneof=line final"`
	Edited       string      `json:"edited" validate:"required,oneof=percent amount"`
	Percent      NumberField `json:"percent"`
	Amount       NumberField `json:"amount"`
	Quantity     NumberField `json:"quantity"`
	UnitPrice    NumberField `json:"price_per_unit"`
	TaxableTotal NumberField `json:"taxable_total"`
}

// DiscountSyncResponse par conciliado; null = campo vacío.
type DiscountSyncResponse struct {
	Percent decimal.NullDecimal `json:"percent"`
	Amount  decimal.NullDecimal `json:"amount"`
}

// ConvertPriceRow precio de una fila y su tasa.
type ConvertPriceRow struct {
	Price   NumberField `json:"price_per_unit"`
	GSTRate NumberField `json:"gst_rate"`
}

// ConvertPricesRequest body para POST /api/pricing/convert (cambio de modo de precio).
type ConvertPricesRequest struct {
	From string            `json:"from" validate:"required"`
	To   string            `json:"to" validate:"required"`
	Rows []ConvertPriceRow `json:"rows"`
}

// ConvertPricesResponse precios convertidos, en el mismo orden.
type ConvertPricesResponse struct {
	PriceMode string            `json:"price_mode"`
	Prices    []decimal.Decimal `json:"prices"`
}
