package dto

import "github.com/shopspring/decimal"

// AddressDTO shipping address on checkout and in responses.
type AddressDTO struct {
	Line       string `json:"line,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// CheckoutRequest body for POST /api/orders. The order is built from the
// caller's current cart; the request only contributes the shipping address.
type CheckoutRequest struct {
	ShippingAddress *AddressDTO `json:"shipping_address,omitempty"`
}

// OrderItemResponse one line of an order.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse an order with its monetary summary.
type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	ShippingAddress *AddressDTO         `json:"shipping_address,omitempty"`
	InvoicePath     string              `json:"invoice_path,omitempty"`
	PlacedAt        string              `json:"placed_at"`
}

// OrderListResponse paged order listing.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest body for PATCH /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PAID SHIPPED DELIVERED CANCELLED"`
}

// InvoiceResponse result of generating an order invoice.
type InvoiceResponse struct {
	OrderID     string `json:"order_id"`
	InvoicePath string `json:"invoice_path"`
	Pages       int    `json:"pages"`
}
