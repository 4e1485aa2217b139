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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements CategoryRepository (usable with pool or tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the adapter. Pass pool or tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persists a new category.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Slug, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID fetches one category; nil when absent.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`, id)
}

// GetBySlug fetches one category by slug; nil when absent.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = $1`, slug)
}

// List returns every category ordered by name.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update rewrites name and slug.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `UPDATE categories SET name = $2, slug = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Slug, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes one category.
func (r *CategoryRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) getOne(query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
