package billing_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// ── repos en memoria ──────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID     map[string]*entity.Customer
	invoices map[string]int
}

func newFakeCustomerRepo(cs ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{byID: map[string]*entity.Customer{}, invoices: map[string]int{}}
	for _, c := range cs {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *fakeCustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	var all []*entity.Customer
	for _, c := range r.byID {
		if f.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCustomerRepo) CountInvoices(_ context.Context, id string) (int, error) {
	return r.invoices[id], nil
}

type fakeItemRepo struct {
	byID map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{byID: map[string]*entity.Item{}}
	for _, it := range items {
		r.byID[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, it *entity.Item) error {
	for _, other := range r.byID {
		if strings.EqualFold(other.Name, it.Name) {
			return domain.ErrDuplicate
		}
	}
	r.byID[it.ID] = it
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return r.byID[id], nil
}

func (r *fakeItemRepo) Search(_ context.Context, search string, limit int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.byID {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(search)) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	byID   map[string]*entity.Invoice
	items  map[string][]*entity.InvoiceItem
	latest string
	filter repository.InvoiceFilter
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}, items: map[string][]*entity.InvoiceItem{}}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return r.byID[id], nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.InvoiceSummary, error) {
	r.filter = f
	var out []*entity.InvoiceSummary
	for _, inv := range r.byID {
		out = append(out, &entity.InvoiceSummary{ID: inv.ID, InvoiceNo: inv.InvoiceNo, Date: inv.Date, TotalValue: inv.TotalValue, Status: inv.Status})
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	r.items[it.InvoiceID] = append(r.items[it.InvoiceID], it)
	return nil
}

func (r *fakeInvoiceRepo) DeleteItems(_ context.Context, invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) LatestNumber(_ context.Context, _ string) (string, error) {
	return r.latest, nil
}

func (r *fakeInvoiceRepo) ExistsNumber(_ context.Context, invoiceNo, excludeID string) (bool, error) {
	for _, inv := range r.byID {
		if inv.InvoiceNo == invoiceNo && inv.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Units(context.Context) ([]string, error) { return []string{"NOS", "KGS", "BOX"}, nil }

func (fakeCatalog) Prefixes(context.Context) ([]entity.InvoicePrefix, error) {
	return []entity.InvoicePrefix{{Prefix: "INV/", IsDefault: true}, {Prefix: "CR/"}}, nil
}

// fakeTx ejecuta fn sobre los mismos repos en memoria; err simula un fallo al abrir la tx.
type fakeTx struct {
	customers *fakeCustomerRepo
	items     *fakeItemRepo
	invoices  *fakeInvoiceRepo
	err       error
	calls     int
}

func (tx *fakeTx) RunBilling(_ context.Context, fn func(repository.CustomerRepository, repository.ItemRepository, repository.InvoiceRepository) error) error {
	tx.calls++
	if tx.err != nil {
		return tx.err
	}
	return fn(tx.customers, tx.items, tx.invoices)
}

type fakeMetrics struct {
	quotes int
	saved  map[string]int
	failed map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{saved: map[string]int{}, failed: map[string]int{}}
}

func (m *fakeMetrics) QuoteComputed(pricing.PriceMode, int) { m.quotes++ }

func (m *fakeMetrics) InvoiceSaved(op string, err error) {
	if err != nil {
		m.failed[op]++
		return
	}
	m.saved[op]++
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *billing.InvoiceUseCase
	customers *fakeCustomerRepo
	items     *fakeItemRepo
	invoices  *fakeInvoiceRepo
	tx        *fakeTx
	metrics   *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	customers := newFakeCustomerRepo(&entity.Customer{ID: "c1", Name: "Sharma Traders", Address: "MG Road, Pune", GSTIN: "27AAPFU0939F1ZV"})
	items := newFakeItemRepo(
		&entity.Item{ID: "i1", Name: "Basmati Rice 5kg", HSNCode: "1006", DefaultUnit: "BAG", DefaultTaxRate: d("5")},
		&entity.Item{ID: "i2", Name: "Steel Tumbler", HSNCode: "7323", DefaultUnit: "NOS", DefaultTaxRate: d("18")},
	)
	invoices := newFakeInvoiceRepo()
	tx := &fakeTx{customers: customers, items: items, invoices: invoices}
	m := newFakeMetrics()
	uc := billing.NewInvoiceUseCase(tx, invoices, customers, items, fakeCatalog{}, billing.InvoiceConfig{
		Rates:       pricing.DefaultGSTRates(),
		DefaultMode: pricing.PriceModeInclusive,
	}, m, nil)
	return &fixture{uc: uc, customers: customers, items: items, invoices: invoices, tx: tx, metrics: m}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s got %s", want, got.String())
}

var errBoom = errors.New("boom")
