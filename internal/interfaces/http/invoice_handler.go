package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturas y sus catálogos.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
	v   *Validator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, v *Validator) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, v: v}
}

// List GET /api/invoices?search=&start_date=&end_date=&limit=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.InvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create calcula y guarda la factura.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get devuelve la factura con los precios en el modo pedido.
// GET /api/invoices/:id?display_mode=inclusive
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"), c.Query("display_mode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if e := h.v.Bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "factura eliminada"})
}

// PDF descarga la factura en PDF.
// GET /api/invoices/:id/pdf?theme=modern&display_mode=exclusive
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"), c.Query("theme"), c.Query("display_mode"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// Prefixes GET /api/invoice_prefixes
func (h *InvoiceHandler) Prefixes(c *fiber.Ctx) error {
	list, err := h.uc.Prefixes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// NextNumber GET /api/latest_invoice_number?prefix=INV/
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.NextNumber(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Units GET /api/units
func (h *InvoiceHandler) Units(c *fiber.Ctx) error {
	units, err := h.uc.Units(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(units)
}

// GSTRates GET /api/gst_rates
func (h *InvoiceHandler) GSTRates(c *fiber.Ctx) error {
	return c.JSON(h.uc.GSTRates())
}
