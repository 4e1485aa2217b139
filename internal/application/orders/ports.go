package orders

import (
	"context"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

// TxRunner runs an order mutation inside one database transaction, for the
// transitions that touch stock as well as the order row.
type TxRunner interface {
	RunOrderUpdate(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
