package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/facturacion-gst/internal/domain"
)

// Temas de la representación gráfica.
const (
	ThemeDefault    = "default"
	ThemeModern     = "modern"
	ThemeMinimalist = "minimalist"
	ThemeClassic    = "classic"
)

var validThemes = map[string]bool{
	ThemeDefault:    true,
	ThemeModern:     true,
	ThemeMinimalist: true,
	ThemeClassic:    true,
}

// PDFUseCase genera la representación gráfica (PDF) de una factura GST.
type PDFUseCase struct {
	invoices  *InvoiceUseCase
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso. Reutiliza la carga y el recálculo de InvoiceUseCase.
func NewPDFUseCase(invoices *InvoiceUseCase, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator}
}

// DownloadInvoicePDF recupera la factura, recalcula el resumen por tramo y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrInvalidInput     si el tema o el modo de precio no son válidos.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID, theme, displayMode string) (pdfBytes []byte, filename string, err error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		theme = ThemeDefault
	}
	if !validThemes[theme] {
		return nil, "", fmt.Errorf("%w: tema %q", domain.ErrInvalidInput, theme)
	}

	doc, err := uc.invoices.loadDocument(ctx, invoiceID, displayMode)
	if err != nil {
		return nil, "", err
	}
	doc.Theme = theme

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, *doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("invoice_%s.pdf", strings.ReplaceAll(doc.Invoice.InvoiceNo, "/", "-"))
	return pdfBytes, filename, nil
}
