package repository

import "github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"

// CategoryRepository defines the persistence port for Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
