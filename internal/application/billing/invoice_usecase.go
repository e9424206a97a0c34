package billing

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

const (
	dateLayout       = "2006-01-02"
	defaultListLimit = 100
	maxListLimit     = 500
)

// InvoiceConfig parámetros de facturación leídos de la configuración.
type InvoiceConfig struct {
	Rates           pricing.RateSet
	DefaultMode     pricing.PriceMode
	DefaultSaleType string
}

// InvoiceUseCase cotiza, guarda y consulta facturas. Todo total sale del motor de precios;
// los totales que pudiera enviar el cliente se ignoran.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	catalogRepo  repository.CatalogRepository
	cfg          InvoiceConfig
	metrics      Metrics
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	catalogRepo repository.CatalogRepository,
	cfg InvoiceConfig,
	metrics Metrics,
	log *logger.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = pricing.PriceModeInclusive
	}
	if cfg.DefaultSaleType == "" {
		cfg.DefaultSaleType = entity.SaleTypeCash
	}
	if len(cfg.Rates.Rates()) == 0 {
		cfg.Rates = pricing.DefaultGSTRates()
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		catalogRepo:  catalogRepo,
		cfg:          cfg,
		metrics:      metrics,
		log:          log.Component("billing"),
		now:          time.Now,
	}
}

// Quote recalcula la factura completa a partir de lo capturado en pantalla. No persiste nada.
func (uc *InvoiceUseCase) Quote(ctx context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	mode, err := resolveMode(in.PriceMode, uc.cfg.DefaultMode)
	if err != nil {
		return nil, err
	}
	summary := pricing.Aggregate(linesFromRequest(in.Items), pairFromFields(in.FinalDiscountPercent, in.FinalDiscountAmount), mode)
	uc.metrics.QuoteComputed(mode, len(in.Items))
	return toQuoteResponse(summary, mode), nil
}

// SyncDiscount ejecuta una pasada de conciliación porcentaje↔monto para una línea o para
// el descuento final. El campo editado se devuelve tal cual; el otro se deriva.
func (uc *InvoiceUseCase) SyncDiscount(ctx context.Context, in dto.DiscountSyncRequest) (*dto.DiscountSyncResponse, error) {
	var edited pricing.DiscountField
	switch in.Edited {
	case "percent":
		edited = pricing.DiscountPercentEdited
	case "amount":
		edited = pricing.DiscountAmountEdited
	default:
		return nil, fmt.Errorf("%w: edited debe ser percent o amount", domain.ErrInvalidInput)
	}

	var base decimal.Decimal
	switch in.Scope {
	case "line":
		base = pricing.PreDiscountTotal(pricing.ParseAmount(in.Quantity.String()), pricing.ParseAmount(in.UnitPrice.String()))
	case "final":
		base = pricing.ParseAmount(in.TaxableTotal.String())
	default:
		return nil, fmt.Errorf("%w: scope debe ser line o final", domain.ErrInvalidInput)
	}

	sync := &pricing.DiscountSync{}
	out := sync.Apply(edited, pairFromFields(in.Percent, in.Amount), base)
	return &dto.DiscountSyncResponse{Percent: out.Percent, Amount: out.Amount}, nil
}

// ConvertPrices cambia el modo de todos los precios mostrados. Los precios en cero no se tocan.
func (uc *InvoiceUseCase) ConvertPrices(ctx context.Context, in dto.ConvertPricesRequest) (*dto.ConvertPricesResponse, error) {
	from, err := resolveMode(in.From, uc.cfg.DefaultMode)
	if err != nil {
		return nil, err
	}
	to, err := resolveMode(in.To, uc.cfg.DefaultMode)
	if err != nil {
		return nil, err
	}
	prices := make([]decimal.Decimal, 0, len(in.Rows))
	for _, row := range in.Rows {
		prices = append(prices, pricing.ConvertUnitPrice(
			pricing.ParseAmount(row.Price.String()),
			pricing.ParseAmount(row.GSTRate.String()),
			from, to,
		))
	}
	return &dto.ConvertPricesResponse{PriceMode: string(to), Prices: prices}, nil
}

// draft factura validada y calculada, lista para persistir.
type draft struct {
	invoice *entity.Invoice
	items   []*entity.InvoiceItem
}

// buildDraft valida cliente, artículos y tasas, y calcula todo con el motor.
// Las filas con cantidad cero no se guardan.
func (uc *InvoiceUseCase) buildDraft(ctx context.Context, invoiceID string, in dto.CreateInvoiceRequest) (*draft, error) {
	invoiceNo := strings.TrimSpace(in.InvoiceNo)
	if invoiceNo == "" || in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, in.Date)
	}
	mode, err := resolveMode(in.PriceMode, uc.cfg.DefaultMode)
	if err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	dup, err := uc.invoiceRepo.ExistsNumber(ctx, invoiceNo, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("verificar número de factura: %w", err)
	}
	if dup {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrDuplicate, invoiceNo)
	}

	// Validar artículos y tasas (fuera de la tx, solo lectura)
	lines := make([]pricing.Line, 0, len(in.Items))
	reqs := make([]dto.QuoteLineRequest, 0, len(in.Items))
	itemsByID := make(map[string]*entity.Item)
	for i, row := range in.Items {
		line := lineFromRequest(row)
		if line.Quantity.IsZero() {
			continue
		}
		if line.Quantity.IsNegative() || line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: fila %d con cantidad o precio negativo", domain.ErrInvalidInput, i+1)
		}
		if !uc.cfg.Rates.Contains(line.TaxRatePercent) {
			return nil, fmt.Errorf("%w: fila %d con tasa GST %s no configurada", domain.ErrInvalidInput, i+1, line.TaxRatePercent)
		}
		if row.ItemID == "" {
			return nil, fmt.Errorf("%w: fila %d sin artículo", domain.ErrInvalidInput, i+1)
		}
		if _, ok := itemsByID[row.ItemID]; !ok {
			item, err := uc.itemRepo.GetByID(ctx, row.ItemID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("obtener artículo: %w", err)
			}
			if item == nil {
				return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, row.ItemID)
			}
			itemsByID[row.ItemID] = item
		}
		lines = append(lines, line)
		reqs = append(reqs, row)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la factura no tiene filas con cantidad", domain.ErrInvalidInput)
	}

	summary := pricing.Aggregate(lines, pairFromFields(in.FinalDiscountPercent, in.FinalDiscountAmount), mode)
	t := summary.Totals

	saleType := in.SaleType
	if saleType == "" {
		saleType = uc.cfg.DefaultSaleType
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusUnpaid
		if saleType == entity.SaleTypeCash {
			status = entity.InvoiceStatusPaid
		}
	}

	inv := &entity.Invoice{
		ID:                   invoiceID,
		InvoiceNo:            invoiceNo,
		Date:                 date,
		CustomerID:           customer.ID,
		SaleType:             saleType,
		Notes:                strings.TrimSpace(in.Notes),
		PriceMode:            string(mode),
		SubTotal:             pricing.Round2(t.SubTotal),
		FinalDiscountPercent: t.FinalDiscountPercent,
		FinalDiscount:        pricing.Round2(t.FinalDiscountAmount),
		TaxableValue:         pricing.Round2(t.FinalTaxableValue),
		CGST:                 pricing.Round2(summary.CGSTTotal()),
		SGST:                 pricing.Round2(summary.SGSTTotal()),
		RoundOff:             pricing.Round2(t.RoundOff),
		TotalValue:           t.RoundedGrandTotal,
		Status:               status,
	}

	items := make([]*entity.InvoiceItem, 0, len(lines))
	for i, r := range summary.Lines {
		row, line := reqs[i], lines[i]
		item := itemsByID[row.ItemID]
		hsn, unit := row.HSNCode, row.Unit
		if hsn == "" {
			hsn = item.HSNCode
		}
		if unit == "" {
			unit = item.DefaultUnit
		}
		lineTax := pricing.Round2(r.TaxAmount.Div(half))
		items = append(items, &entity.InvoiceItem{
			ID:           uuid.New().String(),
			InvoiceID:    invoiceID,
			ItemID:       item.ID,
			ItemName:     item.Name,
			HSNCode:      hsn,
			Quantity:     line.Quantity,
			FreeQuantity: line.FreeQuantity,
			Unit:         unit,
			// Se guarda sin redondear: recalcular en modo EXCLUSIVE reproduce los mismos totales.
			PricePerUnit:    r.BaseUnitPrice,
			DiscountPercent: line.Discount.Percent,
			Discount:        pricing.Round2(r.DiscountAmount),
			GSTRate:         line.TaxRatePercent,
			CGSTAmount:      lineTax,
			SGSTAmount:      lineTax,
			TotalAmount:     pricing.Round2(r.LineTotal),
			Position:        i + 1,
		})
	}
	return &draft{invoice: inv, items: items}, nil
}

// Create valida y calcula la factura, y guarda cabecera y líneas en una sola transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (resp *dto.CreateInvoiceResponse, err error) {
	defer func() { uc.metrics.InvoiceSaved("create", err) }()

	d, err := uc.buildDraft(ctx, uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	d.invoice.CreatedAt, d.invoice.UpdatedAt = now, now

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.CustomerRepository,
		_ repository.ItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Create(ctx, d.invoice); err != nil {
			return err
		}
		for _, it := range d.items {
			if err := invoiceRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("guardar factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", d.invoice.ID).
		Str("invoice_no", d.invoice.InvoiceNo).
		Str("total", d.invoice.TotalValue.String()).
		Int("lines", len(d.items)).
		Msg("factura creada")
	return &dto.CreateInvoiceResponse{InvoiceID: d.invoice.ID, InvoiceNo: d.invoice.InvoiceNo, Total: d.invoice.TotalValue}, nil
}

// Update recalcula la factura y reemplaza sus líneas dentro de una transacción.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.CreateInvoiceRequest) (resp *dto.CreateInvoiceResponse, err error) {
	defer func() { uc.metrics.InvoiceSaved("update", err) }()

	existing, err := uc.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := uc.buildDraft(ctx, existing.ID, in)
	if err != nil {
		return nil, err
	}
	d.invoice.CreatedAt = existing.CreatedAt
	d.invoice.UpdatedAt = uc.now()

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.CustomerRepository,
		_ repository.ItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Update(ctx, d.invoice); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItems(ctx, d.invoice.ID); err != nil {
			return err
		}
		for _, it := range d.items {
			if err := invoiceRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}

	uc.log.Info().Str("invoice_id", id).Str("invoice_no", d.invoice.InvoiceNo).Msg("factura actualizada")
	return &dto.CreateInvoiceResponse{InvoiceID: d.invoice.ID, InvoiceNo: d.invoice.InvoiceNo, Total: d.invoice.TotalValue}, nil
}

func (uc *InvoiceUseCase) loadInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// storedFinalPair reconstruye el descuento final guardado; el monto manda.
func storedFinalPair(inv *entity.Invoice) pricing.DiscountPair {
	pair := pricing.DiscountPair{Percent: inv.FinalDiscountPercent}
	if inv.FinalDiscount.IsPositive() {
		pair.Amount = decimal.NewNullDecimal(inv.FinalDiscount)
	}
	return pair
}

// loadDocument carga factura, cliente y líneas, recalcula el resumen desde los precios
// guardados (excluidos de impuesto) y convierte cada precio al modo pedido.
func (uc *InvoiceUseCase) loadDocument(ctx context.Context, id, displayMode string) (*InvoiceDocument, error) {
	inv, err := uc.loadInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	mode, err := resolveMode(displayMode, pricing.PriceMode(inv.PriceMode))
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = uc.cfg.DefaultMode
	}

	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		customer = &entity.Customer{ID: inv.CustomerID}
	}

	stored, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}

	lines := make([]pricing.Line, 0, len(stored))
	display := make([]*entity.InvoiceItem, 0, len(stored))
	for _, it := range stored {
		pair := pricing.DiscountPair{Percent: it.DiscountPercent}
		if it.Discount.IsPositive() {
			pair.Amount = decimal.NewNullDecimal(it.Discount)
		}
		lines = append(lines, pricing.Line{
			Quantity:       it.Quantity,
			FreeQuantity:   it.FreeQuantity,
			UnitPrice:      it.PricePerUnit,
			TaxRatePercent: it.GSTRate,
			Discount:       pair,
		})
		shown := *it
		shown.PricePerUnit = pricing.ConvertUnitPrice(it.PricePerUnit, it.GSTRate, pricing.PriceModeExclusive, mode)
		display = append(display, &shown)
	}
	summary := pricing.Aggregate(lines, storedFinalPair(inv), pricing.PriceModeExclusive)

	return &InvoiceDocument{Invoice: inv, Customer: customer, Items: display, Summary: summary, Mode: mode}, nil
}

// Get devuelve la factura con sus líneas; price_per_unit va en displayMode
// (vacío = el modo en que se capturó).
func (uc *InvoiceUseCase) Get(ctx context.Context, id, displayMode string) (*dto.InvoiceResponse, error) {
	doc, err := uc.loadDocument(ctx, id, displayMode)
	if err != nil {
		return nil, err
	}
	inv, c := doc.Invoice, doc.Customer
	resp := &dto.InvoiceResponse{
		ID:          inv.ID,
		InvoiceNo:   inv.InvoiceNo,
		Date:        inv.Date.Format(dateLayout),
		SaleType:    inv.SaleType,
		Status:      inv.Status,
		Notes:       inv.Notes,
		PriceMode:   inv.PriceMode,
		DisplayMode: string(doc.Mode),
		Customer:    toCustomerResponse(c),
		Items:       make([]dto.InvoiceItemResponse, 0, len(doc.Items)),
		Slabs:       toSlabResponses(doc.Summary.Slabs),
		Totals:      toTotalsResponse(doc.Summary),
	}
	for _, it := range doc.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:              it.ID,
			ItemID:          it.ItemID,
			ItemName:        it.ItemName,
			HSNCode:         it.HSNCode,
			Quantity:        it.Quantity,
			FreeQuantity:    it.FreeQuantity,
			Unit:            it.Unit,
			PricePerUnit:    it.PricePerUnit,
			DiscountPercent: it.DiscountPercent,
			Discount:        it.Discount,
			GSTRate:         it.GSTRate,
			CGSTAmount:      it.CGSTAmount,
			SGSTAmount:      it.SGSTAmount,
			TotalAmount:     it.TotalAmount,
		})
	}
	return resp, nil
}

// List lista facturas por número o cliente, con rango de fechas opcional.
func (uc *InvoiceUseCase) List(ctx context.Context, q dto.InvoiceListQuery) ([]dto.InvoiceListItem, error) {
	f := repository.InvoiceFilter{Search: strings.TrimSpace(q.Search), Limit: q.Limit}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{q.StartDate, &f.StartDate}, {q.EndDate, &f.EndDate}} {
		if strings.TrimSpace(p.raw) == "" {
			continue
		}
		t, err := time.Parse(dateLayout, strings.TrimSpace(p.raw))
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, p.raw)
		}
		*p.dst = &t
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	list, err := uc.invoiceRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceListItem, 0, len(list))
	for _, s := range list {
		out = append(out, dto.InvoiceListItem{
			ID:           s.ID,
			InvoiceNo:    s.InvoiceNo,
			Date:         s.Date.Format(dateLayout),
			TotalValue:   s.TotalValue,
			Status:       s.Status,
			CustomerName: s.CustomerName,
		})
	}
	return out, nil
}

// Delete elimina la factura y sus líneas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) (err error) {
	defer func() { uc.metrics.InvoiceSaved("delete", err) }()

	inv, err := uc.loadInvoice(ctx, id)
	if err != nil {
		return err
	}
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.CustomerRepository,
		_ repository.ItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.DeleteItems(ctx, inv.ID); err != nil {
			return err
		}
		return invoiceRepo.Delete(ctx, inv.ID)
	})
	if err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", id).Str("invoice_no", inv.InvoiceNo).Msg("factura eliminada")
	return nil
}

var trailingNumber = regexp.MustCompile(`/(\d+)$`)

// NextNumber devuelve el siguiente sufijo (4 dígitos con ceros) para el prefijo.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, prefix string) (*dto.NextNumberResponse, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("%w: prefix requerido", domain.ErrInvalidInput)
	}
	latest, err := uc.invoiceRepo.LatestNumber(ctx, prefix)
	if err != nil {
		return nil, err
	}
	next := 1
	if m := trailingNumber.FindStringSubmatch(latest); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			next = n + 1
		}
	}
	return &dto.NextNumberResponse{NextNumber: fmt.Sprintf("%04d", next)}, nil
}

// Prefixes series de numeración configuradas.
func (uc *InvoiceUseCase) Prefixes(ctx context.Context) ([]dto.InvoicePrefixResponse, error) {
	list, err := uc.catalogRepo.Prefixes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoicePrefixResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.InvoicePrefixResponse{Prefix: p.Prefix, IsDefault: p.IsDefault})
	}
	return out, nil
}

// Units unidades de medida disponibles.
func (uc *InvoiceUseCase) Units(ctx context.Context) ([]string, error) {
	return uc.catalogRepo.Units(ctx)
}

// GSTRates tasas configuradas, para poblar el selector de la pantalla.
func (uc *InvoiceUseCase) GSTRates() []decimal.Decimal {
	return uc.cfg.Rates.Rates()
}
