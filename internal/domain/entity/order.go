package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPlaced    = "PLACED"    // created at checkout, payment pending
	OrderStatusPaid      = "PAID"      // payment confirmed
	OrderStatusShipped   = "SHIPPED"   // handed to the courier
	OrderStatusDelivered = "DELIVERED" // confirmed delivered
	OrderStatusCancelled = "CANCELLED" // cancelled before shipping, stock restored
)

// Order is a placed storefront order with its monetary summary. Item prices,
// names and variants are snapshots taken at checkout; later catalog edits do
// not rewrite history.
type Order struct {
	ID              string
	Number          string // human-facing consecutive, e.g. AF-1718822400
	UserID          string
	Status          string
	Items           []OrderItem
	Subtotal        decimal.Decimal // sum of line totals
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress *Address
	InvoicePath     string // public path of the last generated invoice PDF, empty until generated
	PlacedAt        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one purchased line within an order.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Size      string
	Color     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal is always recomputed from unit price and quantity, never read from storage.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CanTransitionTo reports whether moving from the order's current status to
// next is a legal lifecycle step.
func (o *Order) CanTransitionTo(next string) bool {
	switch o.Status {
	case OrderStatusPlaced:
		return next == OrderStatusPaid || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}
