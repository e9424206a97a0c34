package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto: página 1, límite def y tope max.
func (p *PageRequest) Normalize(def, max int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
}

// Offset desplazamiento SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// NumberField texto crudo de un campo numérico del formulario. Acepta número, string o
// null en JSON; la conversión a decimal la hace pricing.ParseAmount (vacío o mal
// formado vale cero, nunca es error de parseo).
type NumberField string

// UnmarshalJSON guarda el literal tal cual llegó.
func (f *NumberField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = NumberField(strings.TrimSpace(s))
		return nil
	}
	*f = NumberField(string(b))
	return nil
}

// String devuelve el texto crudo.
func (f NumberField) String() string { return string(f) }
