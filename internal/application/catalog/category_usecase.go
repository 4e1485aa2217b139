package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/slug"
)

// CategoryUseCase admin CRUD and storefront listing for categories.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create adds a category; the slug is derived from the name.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := slug.Make(in.Name)
	if existing, _ := uc.repo.GetBySlug(s); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      s,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List returns every category ordered by name.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	cats, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update renames a category and refreshes its slug.
func (uc *CategoryUseCase) Update(id string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	s := slug.Make(in.Name)
	if existing, _ := uc.repo.GetBySlug(s); existing != nil && existing.ID != id {
		return nil, domain.ErrDuplicate
	}
	cat.Name = in.Name
	cat.Slug = s
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Delete removes a category.
func (uc *CategoryUseCase) Delete(id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
