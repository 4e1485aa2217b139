package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/slug"
)

// ProductUseCase catalog management and storefront listing for products.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *logger.Logger
}

// NewProductUseCase builds the use case.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, log: log}
}

// Create adds a product under an existing category.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.TaxRate.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	s := slug.Make(in.Name)
	if existing, _ := uc.products.GetBySlug(s); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        s,
		Description: in.Description,
		Price:       in.Price,
		TaxRate:     in.TaxRate,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("slug", p.Slug).Msg("product created")
	return toProductResponse(p), nil
}

// GetByID returns one product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// GetBySlug returns one product by its storefront slug.
func (uc *ProductUseCase) GetBySlug(s string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List returns a page of products. Storefront callers see active items only;
// admins pass activeOnly=false to include hidden ones.
func (uc *ProductUseCase) List(categoryID string, activeOnly bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	items, err := uc.products.List(repository.ProductFilter{
		CategoryID: categoryID,
		ActiveOnly: activeOnly,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range items {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Update patches the given fields; zero-valued fields keep their current value.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != "" && in.CategoryID != p.CategoryID {
		cat, err := uc.categories.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
		p.CategoryID = in.CategoryID
	}
	if in.Name != "" && in.Name != p.Name {
		s := slug.Make(in.Name)
		if existing, _ := uc.products.GetBySlug(s); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		p.Name = in.Name
		p.Slug = s
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.TaxRate = *in.TaxRate
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete removes a product from the catalog.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.products.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		TaxRate:     p.TaxRate,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
