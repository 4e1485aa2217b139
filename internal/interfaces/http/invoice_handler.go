package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
)

// InvoiceHandler handles invoice generation and fulfilment documents.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Generate godoc
// @Summary      Generate the invoice PDF for an order
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [post]
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.GenerateInvoice(c.Context(), c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PackingSlip godoc
// @Summary      Download the packing slip for an order
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "order id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/packing-slip [get]
func (h *InvoiceHandler) PackingSlip(c *fiber.Ctx) error {
	out, err := h.uc.PackingSlip(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="packing-slip-`+c.Params("id")+`.pdf"`)
	return c.Send(out)
}
