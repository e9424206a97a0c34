package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo tablas de referencia: unidades de medida y prefijos de numeración.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Units lista las unidades en orden alfabético.
func (r *CatalogRepo) Units(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	units, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan units: %w", err)
	}
	return units, nil
}

// Prefixes lista los prefijos; el marcado por defecto va primero.
func (r *CatalogRepo) Prefixes(ctx context.Context) ([]entity.InvoicePrefix, error) {
	rows, err := r.q.Query(ctx, `SELECT prefix, is_default FROM invoice_prefixes ORDER BY is_default DESC, prefix`)
	if err != nil {
		return nil, fmt.Errorf("list prefixes: %w", err)
	}
	prefixes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.InvoicePrefix, error) {
		var p entity.InvoicePrefix
		err := row.Scan(&p.Prefix, &p.IsDefault)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan prefixes: %w", err)
	}
	return prefixes, nil
}
