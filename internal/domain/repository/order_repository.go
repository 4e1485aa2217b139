package repository

import "github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"

// OrderRepository defines the persistence port for Order and its items.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	// GetByID returns the order header without items; nil when absent.
	GetByID(id string) (*entity.Order, error)
	ItemsByOrderID(orderID string) ([]entity.OrderItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	ListAll(status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	// SetInvoicePath records the public path of the generated invoice PDF.
	SetInvoicePath(id, path string) error
}
