package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// CustomerFilter búsqueda paginada de clientes (nombre, teléfono o GSTIN).
type CustomerFilter struct {
	Search string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// List devuelve la página pedida y el total de coincidencias.
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	// CountInvoices cuántas facturas referencian al cliente (no se borra si > 0).
	CountInvoices(ctx context.Context, id string) (int, error)
}
