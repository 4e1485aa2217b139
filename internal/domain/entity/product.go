package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Sizes and Colors list the purchasable variants;
// the chosen variant is snapshotted onto the order line at checkout.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string // unique, derived from Name
	Description string
	Price       decimal.Decimal // selling price, INR
	TaxRate     decimal.Decimal // GST fraction: 0, 0.05, 0.12
	Sizes       []string
	Colors      []string
	ImageURL    string
	Stock       int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSize reports whether s is one of the product's size options.
// An empty catalog list accepts any requested value.
func (p *Product) HasSize(s string) bool {
	return hasOption(p.Sizes, s)
}

// HasColor reports whether c is one of the product's color options.
func (p *Product) HasColor(c string) bool {
	return hasOption(p.Colors, c)
}

func hasOption(options []string, v string) bool {
	if len(options) == 0 || v == "" {
		return true
	}
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
