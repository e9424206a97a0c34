package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/facturacion-gst/internal/application/analytics"
	"github.com/jhoicas/facturacion-gst/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	InvoiceUC      *billing.InvoiceUseCase
	PDFUC          *billing.PDFUseCase
	CustomerUC     *billing.CustomerUseCase
	ItemUC         *billing.ItemUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	MetricsHandler nethttp.Handler // nil = sin /metrics
	JWTSecret      string          // vacío = escrituras sin autenticación
	SwaggerFile    string          // vacío = sin /docs
	Now            func() time.Time
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    deps.AppName + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	v := NewValidator()
	write := writeGuards(deps.JWTSecret)
	admin := adminGuards(deps.JWTSecret)
	guarded := func(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), h)
	}

	api := app.Group("/api")

	// Motor de precios (sin estado)
	pricingHandler := NewPricingHandler(deps.InvoiceUC, v)
	pricing := api.Group("/pricing")
	pricing.Post("/quote", pricingHandler.Quote)
	pricing.Post("/discount", pricingHandler.Discount)
	pricing.Post("/convert", pricingHandler.Convert)

	// Facturas
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, v)
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", guarded(write, invoiceHandler.Create)...)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", guarded(write, invoiceHandler.Update)...)
	invoices.Delete("/:id", guarded(admin, invoiceHandler.Delete)...)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Catálogos de la pantalla de factura
	api.Get("/invoice_prefixes", invoiceHandler.Prefixes)
	api.Get("/latest_invoice_number", invoiceHandler.NextNumber)
	api.Get("/units", invoiceHandler.Units)
	api.Get("/gst_rates", invoiceHandler.GSTRates)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC, v)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", guarded(write, customerHandler.Create)...)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", guarded(write, customerHandler.Update)...)
	customers.Delete("/:id", guarded(admin, customerHandler.Delete)...)

	// Artículos
	itemHandler := NewItemHandler(deps.ItemUC, v)
	items := api.Group("/items")
	items.Get("/", itemHandler.Search)
	items.Post("/", guarded(write, itemHandler.Create)...)
	items.Get("/:id/price", itemHandler.Price)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Now)
	api.Get("/sales_data", dashboardHandler.SalesData)
	api.Get("/financial_year_summary", dashboardHandler.FinancialYearSummary)
}
