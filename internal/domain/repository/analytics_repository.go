package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesKPIs resultado crudo de ventas para un rango de fechas.
type SalesKPIs struct {
	TotalSales    decimal.Decimal // Σ total_value de las facturas
	TotalProfit   decimal.Decimal // Σ qty × (precio_excl - costo) para ítems con costo conocido
	TotalInvoices int
}

// SalesBucket venta agregada de un día o de un mes.
type SalesBucket struct {
	Period time.Time // inicio del día o del mes
	Total  decimal.Decimal
}

// Granularidad de la serie de ventas.
const (
	BucketDay   = "day"
	BucketMonth = "month"
)

// AnalyticsRepository consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepository interface {
	SalesKPIs(ctx context.Context, start, end time.Time) (SalesKPIs, error)
	// SalesSeries agrupa por día o por mes (BucketDay | BucketMonth); solo devuelve períodos con ventas.
	SalesSeries(ctx context.Context, start, end time.Time, unit string) ([]SalesBucket, error)
}
