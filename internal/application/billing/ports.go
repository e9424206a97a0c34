package billing

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los repos de facturación.
// Si fn retorna error se hace rollback de cabecera y líneas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		itemRepo repository.ItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceDocument datos completos para la representación gráfica de una factura.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Items    []*entity.InvoiceItem // PricePerUnit ya convertido a DisplayMode
	Summary  pricing.Summary
	Mode     pricing.PriceMode
	Theme    string
}

// InvoicePDFGenerator puerto de salida para generar el PDF de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// Metrics contadores de facturación. La implementación vive en infrastructure/metrics.
type Metrics interface {
	QuoteComputed(mode pricing.PriceMode, lines int)
	InvoiceSaved(operation string, err error)
}

type nopMetrics struct{}

func (nopMetrics) QuoteComputed(pricing.PriceMode, int) {}
func (nopMetrics) InvoiceSaved(string, error)           {}
