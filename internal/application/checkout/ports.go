package checkout

import (
	"context"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

// TxRunner runs the checkout callback inside one database transaction. The
// callback gets repositories bound to that transaction; an error from it
// rolls everything back.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
