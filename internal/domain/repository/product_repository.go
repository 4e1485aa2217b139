package repository

import "github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"

// ProductFilter narrows storefront product listings.
type ProductFilter struct {
	CategoryID string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository defines the persistence port for Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock atomically subtracts qty when at least qty units remain;
	// returns domain.ErrInsufficientStock otherwise.
	DecrementStock(productID string, qty int) error
	// RestoreStock adds qty back (order cancellation).
	RestoreStock(productID string, qty int) error
	Delete(id string) error
}
