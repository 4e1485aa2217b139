package catalog

import (
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

// FeedBuilder serializes catalog items into the merchant feed document.
type FeedBuilder interface {
	Build(products []*entity.Product, categoryNames map[string]string) ([]byte, error)
}

// FeedUseCase produces the shopping feed consumed by merchant platforms.
type FeedUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	builder    FeedBuilder
}

// NewFeedUseCase builds the use case.
func NewFeedUseCase(products repository.ProductRepository, categories repository.CategoryRepository, builder FeedBuilder) *FeedUseCase {
	return &FeedUseCase{products: products, categories: categories, builder: builder}
}

// ProductFeed returns the feed XML for every active product.
func (uc *FeedUseCase) ProductFeed() ([]byte, error) {
	cats, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	prods, err := uc.products.List(repository.ProductFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return uc.builder.Build(prods, names)
}
