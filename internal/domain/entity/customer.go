package entity

import "time"

// Customer representa un cliente (facturación GST).
type Customer struct {
	ID            string
	Name          string
	Phone         string
	GSTIN         string // 15 caracteres; vacío para clientes no registrados (B2C)
	Address       string
	PlaceOfSupply string // estado de destino, determina CGST+SGST frente a IGST
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
