package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST/PUT /api/customers.
type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=20"`
	GSTIN         string `json:"gstin,omitempty"`
	Address       string `json:"address" validate:"required"`
	PlaceOfSupply string `json:"place_of_supply,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
	Address       string `json:"address"`
	PlaceOfSupply string `json:"place_of_supply,omitempty"`
}

// CustomerListResponse página de clientes.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name             string      `json:"name" validate:"required,max=160"`
	HSNCode          string      `json:"hsn_code,omitempty" validate:"omitempty,numeric,min=4,max=8"`
	DefaultUnit      string      `json:"default_unit,omitempty"`
	DefaultMRP       NumberField `json:"default_mrp"`
	PurchasePrice    NumberField `json:"purchase_price"`
	DefaultSalePrice NumberField `json:"default_sale_price"`
	DefaultTaxRate   NumberField `json:"default_tax_rate"`
	InclusiveOfTax   bool        `json:"inclusive_of_tax"`
}

// ItemResponse artículo del catálogo.
type ItemResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	HSNCode          string              `json:"hsn_code,omitempty"`
	DefaultUnit      string              `json:"default_unit,omitempty"`
	DefaultMRP       decimal.Decimal     `json:"default_mrp"`
	PurchasePrice    decimal.NullDecimal `json:"purchase_price"`
	DefaultSalePrice decimal.Decimal     `json:"default_sale_price"`
	DefaultTaxRate   decimal.Decimal     `json:"default_tax_rate"`
	InclusiveOfTax   bool                `json:"inclusive_of_tax"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ItemPriceResponse precio por defecto del artículo expresado en el modo de la factura.
type ItemPriceResponse struct {
	ItemID       string          `json:"item_id"`
	PriceMode    string          `json:"price_mode"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
}
