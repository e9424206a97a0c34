package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de artículos.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// Search busca por nombre (ILIKE); search vacío devuelve los primeros limit.
	Search(ctx context.Context, search string, limit int) ([]*entity.Item, error)
}
