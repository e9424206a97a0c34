package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appanalytics "github.com/jhoicas/facturacion-gst/internal/application/analytics"
	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/format"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/facturacion-gst/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-gst/internal/interfaces/http"
	"github.com/jhoicas/facturacion-gst/pkg/config"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	rates, err := pricing.ParseRateSet(cfg.Billing.GSTRates)
	if err != nil {
		log.Fatal().Err(err).Str("gst_rates", cfg.Billing.GSTRates).Msg("tasas GST inválidas")
	}
	defaultMode, err := pricing.ParsePriceMode(cfg.Billing.DefaultPriceMode)
	if err != nil {
		log.Fatal().Err(err).Str("default_price_mode", cfg.Billing.DefaultPriceMode).Msg("modo de precio inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(postgres.StdDB(pool)); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	customerRepo := postgres.NewCustomerRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, customerRepo, itemRepo, catalogRepo,
		billing.InvoiceConfig{
			Rates:           rates,
			DefaultMode:     defaultMode,
			DefaultSaleType: cfg.Billing.DefaultSaleType,
		},
		appMetrics, log,
	)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	itemUC := billing.NewItemUseCase(itemRepo, rates)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Las fuentes estándar del PDF no traen el glifo ₹.
	symbol := cfg.Billing.CurrencySymbol
	if symbol == "" || symbol == "₹" {
		symbol = "Rs. "
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.BusinessInfo{
		Name:    cfg.Business.Name,
		GSTIN:   cfg.Business.GSTIN,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
		State:   cfg.Business.State,
	}, format.New(symbol))
	pdfUC := billing.NewPDFUseCase(invoiceUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, appMetrics))

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura no requieren autenticación")
	}

	swaggerFile := cfg.HTTP.SwaggerFile
	if swaggerFile != "" {
		if _, err := os.Stat(swaggerFile); err != nil {
			log.Warn().Err(err).Str("file", swaggerFile).Msg("documentación OpenAPI no disponible, /docs deshabilitado")
			swaggerFile = ""
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		InvoiceUC:      invoiceUC,
		PDFUC:          pdfUC,
		CustomerUC:     customerUC,
		ItemUC:         itemUC,
		DashboardUC:    dashboardUC,
		MetricsHandler: appMetrics.Handler(),
		JWTSecret:      cfg.JWT.Secret,
		SwaggerFile:    swaggerFile,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
