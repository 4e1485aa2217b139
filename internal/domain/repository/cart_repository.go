package repository

import "github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"

// CartRepository defines the persistence port for cart items.
type CartRepository interface {
	// Upsert inserts the item or, when the (user, product, size, color) row
	// already exists, adds the quantity onto it.
	Upsert(item *entity.CartItem) error
	GetItem(id string) (*entity.CartItem, error)
	ItemsByUser(userID string) ([]*entity.CartItem, error)
	UpdateQuantity(id string, quantity int) error
	Remove(id string) error
	Clear(userID string) error
}
