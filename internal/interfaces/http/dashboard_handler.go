package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/facturacion-gst/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de ventas.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	now func() time.Time
}

// NewDashboardHandler construye el handler. now nil usa time.Now.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{uc: uc, now: now}
}

// SalesData KPIs y serie de ventas del período.
// GET /api/sales_data?period=this-month|last-month|this-year|custom&start_date=&end_date=
//
// Las fechas se resuelven en el servidor salvo en custom (start_date y end_date YYYY-MM-DD);
// custom sin fechas cae en this-month.
func (h *DashboardHandler) SalesData(c *fiber.Ctx) error {
	out, err := h.uc.SalesData(c.UserContext(), c.Query("period"), c.Query("start_date"), c.Query("end_date"), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FinancialYearSummary ventas y utilidad del año fiscal en curso (desde el 1 de abril).
// GET /api/financial_year_summary
func (h *DashboardHandler) FinancialYearSummary(c *fiber.Ctx) error {
	out, err := h.uc.FinancialYearSummary(c.UserContext(), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
