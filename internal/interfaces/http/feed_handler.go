package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/catalog"
)

// FeedHandler serves the merchant product feed.
type FeedHandler struct {
	uc *catalog.FeedUseCase
}

// NewFeedHandler builds the handler.
func NewFeedHandler(uc *catalog.FeedUseCase) *FeedHandler {
	return &FeedHandler{uc: uc}
}

// Products godoc
// @Summary      Product feed (RSS 2.0, Google Shopping namespace)
// @Tags         feed
// @Produce      xml
// @Success      200  {string}  string
// @Router       /feed/products.xml [get]
func (h *FeedHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.ProductFeed()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(out)
}
