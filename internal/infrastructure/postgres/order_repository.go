package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository (usable with pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, user_id, status, subtotal, shipping_cost, tax, total,
	ship_line, ship_city, ship_state, ship_postal_code, invoice_path,
	placed_at, created_at, updated_at`

// Create persists the order header. The shipping address flattens into
// nullable columns; a missing address stores all four as NULL.
func (r *OrderRepo) Create(order *entity.Order) error {
	var line, city, state, postal *string
	if a := order.ShippingAddress; a != nil {
		line, city, state, postal = nullIfEmpty(a.Line), nullIfEmpty(a.City), nullIfEmpty(a.State), nullIfEmpty(a.PostalCode)
	}
	query := `
		INSERT INTO orders (id, number, user_id, status, subtotal, shipping_cost, tax, total,
			ship_line, ship_city, ship_state, ship_postal_code, placed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.UserID, order.Status,
		order.Subtotal, order.ShippingCost, order.Tax, order.Total,
		line, city, state, postal, order.PlacedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persists one snapshot line.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, name, size, color, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Name,
		nullIfEmpty(item.Size), nullIfEmpty(item.Color), item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID fetches the order header without items; nil when absent.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(), `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ItemsByOrderID lists the order's lines in insertion order.
func (r *OrderRepo) ItemsByOrderID(orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, size, color, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderItem
	for rows.Next() {
		var (
			it          entity.OrderItem
			size, color *string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name,
			&size, &color, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Size = orEmpty(size)
		it.Color = orEmpty(color)
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListByUser pages the user's order headers, newest first.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// ListAll pages all order headers, optionally filtered by status.
func (r *OrderRepo) ListAll(status string, limit, offset int) ([]*entity.Order, error) {
	if status != "" {
		query := `SELECT ` + orderColumns + ` FROM orders
			WHERE status = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`
		return r.list(query, status, limit, offset)
	}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY placed_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// UpdateStatus flips the lifecycle state.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// SetInvoicePath records the public path of the latest generated invoice.
func (r *OrderRepo) SetInvoicePath(id, path string) error {
	query := `UPDATE orders SET invoice_path = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, path); err != nil {
		return fmt.Errorf("set invoice path: %w", err)
	}
	return nil
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

// scanOrder reads one order header from either a Row or Rows cursor.
func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                         entity.Order
		line, city, state, postal *string
		invoicePath               *string
	)
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.Status,
		&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total,
		&line, &city, &state, &postal, &invoicePath,
		&o.PlacedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if line != nil || city != nil || state != nil || postal != nil {
		o.ShippingAddress = &entity.Address{
			Line:       orEmpty(line),
			City:       orEmpty(city),
			State:      orEmpty(state),
			PostalCode: orEmpty(postal),
		}
	}
	o.InvoicePath = orEmpty(invoicePath)
	return &o, nil
}
