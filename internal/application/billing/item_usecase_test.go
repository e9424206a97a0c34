package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
)

func TestItemCreate(t *testing.T) {
	uc := billing.NewItemUseCase(newFakeItemRepo(), pricing.DefaultGSTRates())
	resp, err := uc.Create(context.Background(), dto.CreateItemRequest{
		Name: "Tata Salt 1kg", HSNCode: "2501", DefaultUnit: "PKT",
		DefaultMRP: "28", DefaultSalePrice: "₹26.50", DefaultTaxRate: "5", InclusiveOfTax: true,
	})
	require.NoError(t, err)
	assertDec(t, "26.5", resp.DefaultSalePrice)
	assertDec(t, "5", resp.DefaultTaxRate)
	assert.False(t, resp.PurchasePrice.Valid, "costo vacío queda nulo")
}

func TestItemCreate_TasaFueraDelConjunto(t *testing.T) {
	uc := billing.NewItemUseCase(newFakeItemRepo(), pricing.DefaultGSTRates())
	_, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: "Raro", DefaultTaxRate: "7"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemCreate_Duplicado(t *testing.T) {
	uc := billing.NewItemUseCase(newFakeItemRepo(), pricing.RateSet{})
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Sugar", DefaultTaxRate: "5"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "sugar", DefaultTaxRate: "5"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemSearch_Maximo20(t *testing.T) {
	repo := newFakeItemRepo()
	for i := 0; i < 30; i++ {
		repo.byID[string(rune('a'+i))] = &entity.Item{ID: string(rune('a' + i)), Name: "Pen " + string(rune('a'+i))}
	}
	uc := billing.NewItemUseCase(repo, pricing.DefaultGSTRates())
	list, err := uc.Search(context.Background(), "pen", 50)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestItemPriceForMode(t *testing.T) {
	repo := newFakeItemRepo(&entity.Item{ID: "i1", Name: "Mixer", DefaultSalePrice: d("1180"), DefaultTaxRate: d("18"), InclusiveOfTax: true})
	uc := billing.NewItemUseCase(repo, pricing.DefaultGSTRates())
	ctx := context.Background()

	p, err := uc.PriceForMode(ctx, "i1", "exclusive")
	require.NoError(t, err)
	assertDec(t, "1000", p.PricePerUnit)
	assert.Equal(t, "EXCLUSIVE", p.PriceMode)

	p, err = uc.PriceForMode(ctx, "i1", "INCLUSIVE")
	require.NoError(t, err)
	assertDec(t, "1180", p.PricePerUnit)

	_, err = uc.PriceForMode(ctx, "i1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.PriceForMode(ctx, "x", "exclusive")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
