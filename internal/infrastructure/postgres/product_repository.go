package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, name, slug, description, price, tax_rate,
	sizes, colors, image_url, stock, active, created_at, updated_at`

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, slug, description, price, tax_rate,
			sizes, colors, image_url, stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.Name, product.Slug,
		nullIfEmpty(product.Description), product.Price, product.TaxRate,
		product.Sizes, product.Colors, nullIfEmpty(product.ImageURL),
		product.Stock, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product; nil when absent.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySlug fetches one product by slug; nil when absent.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

// List returns products matching the filter, newest first. Limit 0 means all.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "active")
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites the product row.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, slug = $4, description = $5,
			price = $6, tax_rate = $7, sizes = $8, colors = $9, image_url = $10,
			stock = $11, active = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.Name, product.Slug,
		nullIfEmpty(product.Description), product.Price, product.TaxRate,
		product.Sizes, product.Colors, nullIfEmpty(product.ImageURL),
		product.Stock, product.Active, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// DecrementStock subtracts qty only when enough units remain; the guard in
// the WHERE clause makes concurrent checkouts serialize correctly.
func (r *ProductRepo) DecrementStock(productID string, qty int) error {
	query := `UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`
	tag, err := r.q.Exec(context.Background(), query, productID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// RestoreStock adds qty back after a cancellation.
func (r *ProductRepo) RestoreStock(productID string, qty int) error {
	query := `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, productID, qty); err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

// Delete removes one product.
func (r *ProductRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// scanProduct reads one product row from either a Row or Rows cursor.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p           entity.Product
		description *string
		imageURL    *string
	)
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &description, &p.Price, &p.TaxRate,
		&p.Sizes, &p.Colors, &imageURL, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = orEmpty(description)
	p.ImageURL = orEmpty(imageURL)
	return &p, nil
}
