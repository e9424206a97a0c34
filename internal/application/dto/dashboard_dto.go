package dto

import "github.com/shopspring/decimal"

// SalesDataResponse respuesta de GET /api/sales_data (gráfico + KPIs del período).
type SalesDataResponse struct {
	Labels        []string          `json:"labels"`
	Data          []decimal.Decimal `json:"data"`
	Total         decimal.Decimal   `json:"total"`
	TotalProfit   decimal.Decimal   `json:"total_profit"`
	TotalInvoices int               `json:"total_invoices"`
	Change        string            `json:"change"` // "+12%", "-3%", "+100%" o "N/A"
	TimeUnit      string            `json:"time_unit"`
}

// FinancialYearSummaryResponse ventas y utilidad del año fiscal en curso (desde el 1 de abril).
type FinancialYearSummaryResponse struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}
