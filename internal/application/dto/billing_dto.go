package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// Los totales no se reciben: el servidor los recalcula con el motor de precios.
type CreateInvoiceRequest struct {
	InvoiceNo            string             `json:"invoice_no" validate:"required,max=32"`
	Date                 string             `json:"date" validate:"required"` // YYYY-MM-DD
	CustomerID           string             `json:"customer_id" validate:"required"`
	SaleType             string             `json:"sale_type,omitempty" validate:"omitempty,oneof=CASH CREDIT"`
	Status               string             `json:"status,omitempty" validate:"omitempty,oneof=PAID UNPAID"`
	Notes                string             `json:"notes,omitempty"`
	PriceMode            string             `json:"price_mode"`
	Items                []QuoteLineRequest `json:"items" validate:"required,min=1"`
	FinalDiscountPercent NumberField        `json:"final_discount_percent"`
	FinalDiscountAmount  NumberField        `json:"final_discount_amount"`
}

// InvoiceItemResponse línea persistida. price_per_unit va en el modo pedido (display_mode).
type InvoiceItemResponse struct {
	ID              string              `json:"id"`
	ItemID          string              `json:"item_id"`
	ItemName        string              `json:"item_name"`
	HSNCode         string              `json:"hsn_code"`
	Quantity        decimal.Decimal     `json:"quantity"`
	FreeQuantity    decimal.Decimal     `json:"free_quantity"`
	Unit            string              `json:"unit"`
	PricePerUnit    decimal.Decimal     `json:"price_per_unit"`
	DiscountPercent decimal.NullDecimal `json:"discount_percent"`
	Discount        decimal.Decimal     `json:"discount"`
	GSTRate         decimal.Decimal     `json:"gst_rate"`
	CGSTAmount      decimal.Decimal     `json:"cgst_amount"`
	SGSTAmount      decimal.Decimal     `json:"sgst_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
}

// InvoiceResponse factura completa (GET /api/invoices/:id).
type InvoiceResponse struct {
	ID          string                `json:"id"`
	InvoiceNo   string                `json:"invoice_no"`
	Date        string                `json:"date"`
	SaleType    string                `json:"sale_type"`
	Status      string                `json:"status"`
	Notes       string                `json:"notes,omitempty"`
	PriceMode   string                `json:"price_mode"`   // modo en que se capturó
	DisplayMode string                `json:"display_mode"` // modo de price_per_unit en items
	Customer    CustomerResponse      `json:"customer"`
	Items       []InvoiceItemResponse `json:"items"`
	Slabs       []TaxSlabResponse     `json:"tax_slabs"`
	Totals      TotalsResponse        `json:"totals"`
}

// InvoiceListItem fila del listado GET /api/invoices.
type InvoiceListItem struct {
	ID           string          `json:"id"`
	InvoiceNo    string          `json:"invoice_no"`
	Date         string          `json:"date"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name"`
}

// InvoiceListQuery filtros de GET /api/invoices.
type InvoiceListQuery struct {
	Search    string `query:"search"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Limit     int    `query:"limit"`
}

// NextNumberResponse respuesta de GET /api/latest_invoice_number.
type NextNumberResponse struct {
	NextNumber string `json:"next_number"`
}

// InvoicePrefixResponse serie de numeración.
type InvoicePrefixResponse struct {
	Prefix    string `json:"prefix"`
	IsDefault bool   `json:"is_default"`
}

// CreateInvoiceResponse respuesta de creación.
type CreateInvoiceResponse struct {
	InvoiceID string          `json:"invoice_id"`
	InvoiceNo string          `json:"invoice_no"`
	Total     decimal.Decimal `json:"total_value"`
}
