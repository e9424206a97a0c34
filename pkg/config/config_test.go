package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env en el directorio de trabajo

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "facturacion-gst", cfg.App.Name)
	assert.Equal(t, "0,5,12,18,28", cfg.Billing.GSTRates)
	assert.Equal(t, "inclusive", cfg.Billing.DefaultPriceMode)
	assert.Equal(t, "₹", cfg.Billing.CurrencySymbol)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.SwaggerFile)
}

func TestLoad_VariablesDeEntornoTienenPrioridad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GST_RATES", "0,5,18")
	t.Setenv("DEFAULT_PRICE_MODE", "exclusive")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("BUSINESS_NAME", "Sharma Traders")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0,5,18", cfg.Billing.GSTRates)
	assert.Equal(t, "exclusive", cfg.Billing.DefaultPriceMode)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "Sharma Traders", cfg.Business.Name)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_SecretoJWTCorto(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "corto")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "gst", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/gst?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
