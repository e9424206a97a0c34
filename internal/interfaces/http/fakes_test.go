package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/facturacion-gst/internal/application/analytics"
	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/facturacion-gst/internal/interfaces/http"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

// ── almacén en memoria ────────────────────────────────────────────────────────

// store implementa todos los repositorios sobre mapas; un solo mutex basta para los tests.
type store struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	items     map[string]*entity.Item
	invoices  map[string]*entity.Invoice
	lines     map[string][]*entity.InvoiceItem
}

func newStore() *store {
	return &store{
		customers: map[string]*entity.Customer{
			"c1": {ID: "c1", Name: "Sharma Traders", Address: "MG Road, Pune"},
		},
		items: map[string]*entity.Item{
			"i1": {ID: "i1", Name: "Basmati Rice 5kg", HSNCode: "1006", DefaultUnit: "BAG",
				DefaultSalePrice: decimal.NewFromInt(105), DefaultTaxRate: decimal.NewFromInt(5), InclusiveOfTax: true},
		},
		invoices: map[string]*entity.Invoice{},
		lines:    map[string][]*entity.InvoiceItem{},
	}
}

type customerRepo struct{ s *store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = c
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.customers[id], nil
}

func (r customerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = c
	return nil
}

func (r customerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

func (r customerRepo) CountInvoices(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, inv := range r.s.invoices {
		if inv.CustomerID == id {
			n++
		}
	}
	return n, nil
}

type itemRepo struct{ s *store }

func (r itemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.items {
		if strings.EqualFold(other.Name, it.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.items[it.ID] = it
	return nil
}

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.items[id], nil
}

func (r itemRepo) Search(_ context.Context, search string, limit int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, it := range r.s.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(search)) && len(out) < limit {
			out = append(out, it)
		}
	}
	return out, nil
}

type invoiceRepo struct{ s *store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r invoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.invoices[id], nil
}

func (r invoiceRepo) List(_ context.Context, _ repository.InvoiceFilter) ([]*entity.InvoiceSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InvoiceSummary
	for _, inv := range r.s.invoices {
		out = append(out, &entity.InvoiceSummary{ID: inv.ID, InvoiceNo: inv.InvoiceNo, Date: inv.Date,
			TotalValue: inv.TotalValue, Status: inv.Status, CustomerName: r.s.customers[inv.CustomerID].Name})
	}
	return out, nil
}

func (r invoiceRepo) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it.ItemName = r.s.items[it.ItemID].Name
	r.s.lines[it.InvoiceID] = append(r.s.lines[it.InvoiceID], it)
	return nil
}

func (r invoiceRepo) DeleteItems(_ context.Context, invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, invoiceID)
	return nil
}

func (r invoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.lines[invoiceID], nil
}

func (r invoiceRepo) LatestNumber(_ context.Context, prefix string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	latest := ""
	for _, inv := range r.s.invoices {
		if strings.HasPrefix(inv.InvoiceNo, prefix) && inv.InvoiceNo > latest {
			latest = inv.InvoiceNo
		}
	}
	return latest, nil
}

func (r invoiceRepo) ExistsNumber(_ context.Context, invoiceNo, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.InvoiceNo == invoiceNo && inv.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type catalogRepo struct{}

func (catalogRepo) Units(context.Context) ([]string, error) { return []string{"BAG", "NOS"}, nil }

func (catalogRepo) Prefixes(context.Context) ([]entity.InvoicePrefix, error) {
	return []entity.InvoicePrefix{{Prefix: "INV/", IsDefault: true}}, nil
}

type txRunner struct{ s *store }

func (tx txRunner) RunBilling(_ context.Context, fn func(repository.CustomerRepository, repository.ItemRepository, repository.InvoiceRepository) error) error {
	return fn(customerRepo{tx.s}, itemRepo{tx.s}, invoiceRepo{tx.s})
}

type analyticsRepo struct{}

func (analyticsRepo) SalesKPIs(context.Context, time.Time, time.Time) (repository.SalesKPIs, error) {
	return repository.SalesKPIs{TotalSales: decimal.NewFromInt(1500), TotalInvoices: 3}, nil
}

func (analyticsRepo) SalesSeries(context.Context, time.Time, time.Time, string) ([]repository.SalesBucket, error) {
	return nil, nil
}

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.4 " + doc.Invoice.InvoiceNo), nil
}

// ── servidor de prueba ────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type testServer struct {
	app   *fiber.App
	store *store
}

func newTestServer(t *testing.T, jwtSecret string, opts ...func(*apphttp.RouterDeps)) *testServer {
	t.Helper()
	s := newStore()
	m := metrics.New(nil)
	invoiceUC := billing.NewInvoiceUseCase(txRunner{s}, invoiceRepo{s}, customerRepo{s}, itemRepo{s}, catalogRepo{},
		billing.InvoiceConfig{Rates: pricing.DefaultGSTRates(), DefaultMode: pricing.PriceModeInclusive}, m, nil)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop(), m))
	deps := apphttp.RouterDeps{
		AppName:        "facturacion-gst",
		InvoiceUC:      invoiceUC,
		PDFUC:          billing.NewPDFUseCase(invoiceUC, fakePDF{}),
		CustomerUC:     billing.NewCustomerUseCase(customerRepo{s}),
		ItemUC:         billing.NewItemUseCase(itemRepo{s}, pricing.DefaultGSTRates()),
		DashboardUC:    appanalytics.NewDashboardUseCase(analyticsRepo{}),
		MetricsHandler: m.Handler(),
		JWTSecret:      jwtSecret,
		Now:            func() time.Time { return testNow },
	}
	for _, opt := range opts {
		opt(&deps)
	}
	apphttp.Router(app, deps)
	return &testServer{app: app, store: s}
}

// do lanza la petición; body nil = sin cuerpo. Devuelve status y cuerpo crudo.
func (ts *testServer) do(t *testing.T, method, path string, body any, authHeader string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}
