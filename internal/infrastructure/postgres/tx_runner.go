package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/checkout"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/orders"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

// Ensure TxRunner implements checkout.TxRunner and orders.TxRunner.
var (
	_ checkout.TxRunner = (*TxRunner)(nil)
	_ orders.TxRunner   = (*TxRunner)(nil)
)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCheckout begins a transaction, runs fn with tx-bound repositories and
// commits, or rolls back when fn errors.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCartRepository(tx), NewProductRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrderUpdate is RunCheckout's smaller sibling for transitions that touch
// stock and the order row together (cancellation).
func (r *TxRunner) RunOrderUpdate(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
