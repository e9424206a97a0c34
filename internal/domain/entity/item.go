package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es un artículo del catálogo con sus valores por defecto para la factura.
type Item struct {
	ID               string
	Name             string
	HSNCode          string
	DefaultUnit      string
	DefaultMRP       decimal.Decimal
	PurchasePrice    decimal.NullDecimal // costo; nulo si no se conoce (no entra en la utilidad)
	DefaultSalePrice decimal.Decimal
	DefaultTaxRate   decimal.Decimal // porcentaje: 0, 5, 12, 18, 28
	InclusiveOfTax   bool            // DefaultSalePrice ya incluye el GST
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
