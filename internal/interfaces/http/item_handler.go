package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
)

// ItemHandler catálogo de artículos.
type ItemHandler struct {
	uc *billing.ItemUseCase
	v  *Validator
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *billing.ItemUseCase, v *Validator) *ItemHandler {
	return &ItemHandler{uc: uc, v: v}
}

// Search GET /api/items?search=&limit=
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	items, err := h.uc.Search(c.UserContext(), c.Query("search"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// Create POST /api/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	item, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Price precio de venta del artículo convertido al modo de la factura.
// GET /api/items/:id/price?mode=exclusive
func (h *ItemHandler) Price(c *fiber.Ctx) error {
	out, err := h.uc.PriceForMode(c.UserContext(), c.Params("id"), c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
