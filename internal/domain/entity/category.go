package entity

import "time"

// Category groups products for storefront navigation (sarees, kurtis, lehengas...).
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
