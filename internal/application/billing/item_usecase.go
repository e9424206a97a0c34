package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

const maxItemSearch = 20

// ItemUseCase catálogo de artículos.
type ItemUseCase struct {
	repo  repository.ItemRepository
	rates pricing.RateSet
	now   func() time.Time
}

// NewItemUseCase construye el caso de uso; rates vacío usa las tasas GST por defecto.
func NewItemUseCase(repo repository.ItemRepository, rates pricing.RateSet) *ItemUseCase {
	if len(rates.Rates()) == 0 {
		rates = pricing.DefaultGSTRates()
	}
	return &ItemUseCase{repo: repo, rates: rates, now: time.Now}
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:               it.ID,
		Name:             it.Name,
		HSNCode:          it.HSNCode,
		DefaultUnit:      it.DefaultUnit,
		DefaultMRP:       it.DefaultMRP,
		PurchasePrice:    it.PurchasePrice,
		DefaultSalePrice: it.DefaultSalePrice,
		DefaultTaxRate:   it.DefaultTaxRate,
		InclusiveOfTax:   it.InclusiveOfTax,
		CreatedAt:        it.CreatedAt,
	}
}

// Create registra un artículo. La tasa por defecto debe ser una de las configuradas.
// El repositorio devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre obligatorio", domain.ErrInvalidInput)
	}
	rate := pricing.ParseAmount(in.DefaultTaxRate.String())
	if !uc.rates.Contains(rate) {
		return nil, fmt.Errorf("%w: tasa GST %s no configurada", domain.ErrInvalidInput, rate)
	}
	sale := pricing.ParseAmount(in.DefaultSalePrice.String())
	mrp := pricing.ParseAmount(in.DefaultMRP.String())
	purchase := pricing.ParseOptionalAmount(in.PurchasePrice.String())
	if sale.IsNegative() || mrp.IsNegative() || (purchase.Valid && purchase.Decimal.IsNegative()) {
		return nil, fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}

	now := uc.now()
	item := &entity.Item{
		ID:               uuid.New().String(),
		Name:             name,
		HSNCode:          strings.TrimSpace(in.HSNCode),
		DefaultUnit:      strings.TrimSpace(in.DefaultUnit),
		DefaultMRP:       mrp,
		PurchasePrice:    purchase,
		DefaultSalePrice: sale,
		DefaultTaxRate:   rate,
		InclusiveOfTax:   in.InclusiveOfTax,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Search busca artículos por nombre (máximo 20 resultados).
func (uc *ItemUseCase) Search(ctx context.Context, search string, limit int) ([]dto.ItemResponse, error) {
	if limit <= 0 || limit > maxItemSearch {
		limit = maxItemSearch
	}
	list, err := uc.repo.Search(ctx, strings.TrimSpace(search), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// PriceForMode convierte el precio de venta por defecto del artículo (en su propio modo
// inclusive_of_tax) al modo de la factura en curso.
func (uc *ItemUseCase) PriceForMode(ctx context.Context, id, mode string) (*dto.ItemPriceResponse, error) {
	target, err := pricing.ParsePriceMode(mode)
	if err != nil {
		return nil, fmt.Errorf("%w: price_mode %q", domain.ErrInvalidInput, mode)
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	price := pricing.ConvertUnitPrice(item.DefaultSalePrice, item.DefaultTaxRate, pricing.ModeFromInclusiveFlag(item.InclusiveOfTax), target)
	return &dto.ItemPriceResponse{
		ItemID:       item.ID,
		PriceMode:    string(target),
		PricePerUnit: price,
		GSTRate:      item.DefaultTaxRate,
	}, nil
}
