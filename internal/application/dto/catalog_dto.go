package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body for POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// CategoryResponse a category in responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // GST fraction, e.g. 0.05
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Stock       int             `json:"stock"`
}

// UpdateProductRequest body for PUT /api/products/:id. Zero values keep the current field.
type UpdateProductRequest struct {
	CategoryID  string           `json:"category_id,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse a product in responses.
type ProductResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse paged product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
