package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	Search    string // número de factura o nombre del cliente
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int // 0 = sin límite
}

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.InvoiceSummary, error)
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	DeleteItems(ctx context.Context, invoiceID string) error
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	// LatestNumber devuelve el invoice_no con mayor sufijo numérico para el prefijo ("" si no hay).
	LatestNumber(ctx context.Context, prefix string) (string, error)
	ExistsNumber(ctx context.Context, invoiceNo, excludeID string) (bool, error)
}

// CatalogRepository datos de referencia para la pantalla de factura.
type CatalogRepository interface {
	Units(ctx context.Context) ([]string, error)
	Prefixes(ctx context.Context) ([]entity.InvoicePrefix, error)
}
