package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
)

// PricingHandler expone el motor de precios sin persistir nada (pantalla de factura).
type PricingHandler struct {
	uc *billing.InvoiceUseCase
	v  *Validator
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *billing.InvoiceUseCase, v *Validator) *PricingHandler {
	return &PricingHandler{uc: uc, v: v}
}

// Quote godoc
// @Summary      Calcular líneas, tramos y totales
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "price_mode, items, descuento final"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/quote [post]
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discount godoc
// @Summary      Conciliar porcentaje y monto de un descuento
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountSyncRequest  true  "scope line|final, edited percent|amount"
// @Success      200   {object}  dto.DiscountSyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/discount [post]
func (h *PricingHandler) Discount(c *fiber.Ctx) error {
	var in dto.DiscountSyncRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.SyncDiscount(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Cambiar el modo (inclusive/exclusive) de los precios mostrados
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertPricesRequest  true  "from, to, rows"
// @Success      200   {object}  dto.ConvertPricesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/convert [post]
func (h *PricingHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertPricesRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.ConvertPrices(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
