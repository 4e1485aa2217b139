package entity

import "time"

// CartItem is one product variant held in a user's cart. The (user, product,
// size, color) tuple is unique; adding the same variant again bumps Quantity.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Size      string
	Color     string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
