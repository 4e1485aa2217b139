package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/cart"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
)

// CartHandler handles the signed-in user's shopping cart.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler builds the handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Current cart
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Add a product variant to the cart
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "product, variant, quantity"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Change the quantity of one cart line
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "cart item id"
// @Param        body  body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateQuantity(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remove one cart line
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "cart item id"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.Remove(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
