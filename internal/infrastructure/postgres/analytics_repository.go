package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

const sqlDate = "2006-01-02"

// SalesKPIs devuelve ventas, utilidad y número de facturas del rango (ambos extremos incluidos).
// Utilidad: qty × (precio_excl - costo) solo para artículos con costo conocido.
// Usa COALESCE para devolver cero si el período no tiene ventas.
func (r *AnalyticsRepo) SalesKPIs(ctx context.Context, start, end time.Time) (repository.SalesKPIs, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(i.total_value)
	              FROM invoices i
	              WHERE i.date BETWEEN $1::date AND $2::date), 0)                 AS total_sales,
	    COALESCE((SELECT SUM(ii.quantity * (ii.price_per_unit - it.purchase_price))
	              FROM invoice_items ii
	              JOIN invoices i ON i.id  = ii.invoice_id
	              JOIN items   it ON it.id = ii.item_id
	              WHERE i.date BETWEEN $1::date AND $2::date
	                AND it.purchase_price IS NOT NULL), 0)                        AS total_profit,
	    (SELECT COUNT(*) FROM invoices i
	     WHERE i.date BETWEEN $1::date AND $2::date)                              AS total_invoices`

	var k repository.SalesKPIs
	err := r.q.QueryRow(ctx, query, start.Format(sqlDate), end.Format(sqlDate)).
		Scan(&k.TotalSales, &k.TotalProfit, &k.TotalInvoices)
	if err != nil {
		return repository.SalesKPIs{}, fmt.Errorf("analytics.SalesKPIs: %w", err)
	}
	return k, nil
}

// SalesSeries agrupa las ventas por día o por mes. Los períodos sin ventas no aparecen.
func (r *AnalyticsRepo) SalesSeries(ctx context.Context, start, end time.Time, unit string) ([]repository.SalesBucket, error) {
	if unit != repository.BucketDay && unit != repository.BucketMonth {
		return nil, fmt.Errorf("analytics.SalesSeries: granularidad %q no soportada", unit)
	}
	const query = `
	SELECT
	    date_trunc($3, i.date)::date  AS period,
	    SUM(i.total_value)            AS total
	FROM invoices i
	WHERE i.date BETWEEN $1::date AND $2::date
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, start.Format(sqlDate), end.Format(sqlDate), unit)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesSeries: %w", err)
	}
	defer rows.Close()

	results := []repository.SalesBucket{}
	for rows.Next() {
		var b repository.SalesBucket
		if err := rows.Scan(&b.Period, &b.Total); err != nil {
			return nil, fmt.Errorf("analytics.SalesSeries scan: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.SalesSeries rows: %w", err)
	}
	return results, nil
}
