package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implements CartRepository (usable with pool or tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository builds the adapter. Pass pool or tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Upsert inserts the line or, when the variant is already in the cart, adds
// the quantity onto the existing row. Size and color are part of the key, so
// they are stored as '' rather than NULL (NULLs never conflict).
func (r *CartRepo) Upsert(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, size, color, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.ProductID, item.Size, item.Color,
		item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// GetItem fetches one cart line; nil when absent.
func (r *CartRepo) GetItem(id string) (*entity.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, size, color, quantity, created_at, updated_at
		FROM cart_items WHERE id = $1`
	var it entity.CartItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Size, &it.Color,
		&it.Quantity, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// ItemsByUser lists the user's cart, oldest line first.
func (r *CartRepo) ItemsByUser(userID string) ([]*entity.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, size, color, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Size, &it.Color,
			&it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateQuantity sets one line's quantity.
func (r *CartRepo) UpdateQuantity(id string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, quantity); err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	return nil
}

// Remove deletes one cart line.
func (r *CartRepo) Remove(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Clear empties the user's cart.
func (r *CartRepo) Clear(userID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
