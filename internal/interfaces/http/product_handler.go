package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/catalog"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
)

// ProductHandler handles the storefront catalog (public reads) and product
// management (admin writes).
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category_id  query  string  false  "filter by category"
// @Param        limit        query  int     false  "page size"    default(20)
// @Param        offset       query  int     false  "page offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	// On the public route IsAdmin is always false; the admin listing reuses
	// this handler behind the admin group and may include hidden products.
	activeOnly := !IsAdmin(c) || !c.QueryBool("include_inactive", false)
	out, err := h.uc.List(c.Query("category_id"), activeOnly, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Product detail
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "product id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Product detail by storefront slug
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "product slug"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "product data"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name and category_id are required"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "product id"
// @Param        body  body  dto.UpdateProductRequest  true  "fields to change"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "product id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
