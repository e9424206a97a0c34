package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusPaid   = "PAID"
	InvoiceStatusUnpaid = "UNPAID"
)

// Tipos de venta.
const (
	SaleTypeCash   = "CASH"
	SaleTypeCredit = "CREDIT"
)

// Invoice representa la cabecera de una factura GST.
// Los montos son los calculados por el motor de precios al guardar.
type Invoice struct {
	ID                   string
	InvoiceNo            string // prefijo + sufijo, ej. "INV/0007"
	Date                 time.Time
	CustomerID           string
	SaleType             string
	Notes                string
	PriceMode            string // modo en que se capturó: INCLUSIVE | EXCLUSIVE
	SubTotal             decimal.Decimal
	FinalDiscountPercent decimal.NullDecimal
	FinalDiscount        decimal.Decimal
	TaxableValue         decimal.Decimal
	CGST                 decimal.Decimal
	SGST                 decimal.Decimal
	IGST                 decimal.Decimal // siempre 0: solo ventas intraestatales
	Cess                 decimal.Decimal
	RoundOff             decimal.Decimal
	TotalValue           decimal.Decimal
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// InvoiceItem es una línea persistida. PricePerUnit se guarda siempre excluido de impuesto.
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	ItemID          string
	ItemName        string // solo lectura (JOIN con items)
	HSNCode         string
	Quantity        decimal.Decimal
	FreeQuantity    decimal.Decimal
	Unit            string
	PricePerUnit    decimal.Decimal
	DiscountPercent decimal.NullDecimal
	Discount        decimal.Decimal
	GSTRate         decimal.Decimal
	CGSTAmount      decimal.Decimal
	SGSTAmount      decimal.Decimal
	TotalAmount     decimal.Decimal
	Position        int
}

// InvoiceSummary fila del listado de facturas.
type InvoiceSummary struct {
	ID           string
	InvoiceNo    string
	Date         time.Time
	TotalValue   decimal.Decimal
	Status       string
	CustomerName string
}

// InvoicePrefix serie de numeración ("INV/", "CR/").
type InvoicePrefix struct {
	Prefix    string
	IsDefault bool
}
