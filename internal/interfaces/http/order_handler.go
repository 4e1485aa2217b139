package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/checkout"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/orders"
)

// OrderHandler handles checkout, order history and lifecycle transitions.
type OrderHandler struct {
	checkoutUC *checkout.UseCase
	ordersUC   *orders.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(checkoutUC *checkout.UseCase, ordersUC *orders.UseCase) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC, ordersUC: ordersUC}
}

// Checkout godoc
// @Summary      Place an order from the current cart
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "shipping address"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.checkoutUC.PlaceOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MyOrders godoc
// @Summary      List the caller's orders
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "page size"    default(20)
// @Param        offset  query  int  false  "page offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.ordersUC.MyOrders(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Order detail
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.ordersUC.Get(c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancel an order that has not shipped
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.ordersUC.Cancel(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      List all orders
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filter by status"
// @Param        limit   query  int     false  "page size"    default(20)
// @Param        offset  query  int     false  "page offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.ordersUC.AdminList(c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Move an order along its lifecycle
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "order id"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "next status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ordersUC.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
