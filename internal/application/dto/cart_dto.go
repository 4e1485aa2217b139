package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body for POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest body for PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartItemResponse one cart line joined with its product.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	ImageURL  string          `json:"image_url,omitempty"`
	InStock   bool            `json:"in_stock"`
}

// CartResponse the whole cart with its running subtotal.
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
