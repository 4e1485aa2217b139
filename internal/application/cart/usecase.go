package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
)

// UseCase shopping cart operations for the signed-in user.
type UseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewUseCase builds the use case.
func NewUseCase(carts repository.CartRepository, products repository.ProductRepository) *UseCase {
	return &UseCase{carts: carts, products: products}
}

// Add puts a product variant in the cart. Adding a variant that is already
// there bumps its quantity instead of creating a second line.
func (uc *UseCase) Add(userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrNotFound
	}
	if !p.HasSize(in.Size) || !p.HasColor(in.Color) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: in.ProductID,
		Size:      in.Size,
		Color:     in.Color,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.carts.Upsert(item); err != nil {
		return nil, err
	}
	return uc.Get(userID)
}

// UpdateQuantity sets the quantity of one cart line owned by the user.
func (uc *UseCase) UpdateQuantity(userID, itemID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.carts.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if err := uc.carts.UpdateQuantity(itemID, in.Quantity); err != nil {
		return nil, err
	}
	return uc.Get(userID)
}

// Remove deletes one cart line owned by the user.
func (uc *UseCase) Remove(userID, itemID string) (*dto.CartResponse, error) {
	item, err := uc.carts.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if err := uc.carts.Remove(itemID); err != nil {
		return nil, err
	}
	return uc.Get(userID)
}

// Clear empties the user's cart.
func (uc *UseCase) Clear(userID string) error {
	return uc.carts.Clear(userID)
}

// Get returns the cart joined with current product data and its subtotal.
// Lines whose product has since been removed or hidden are skipped.
func (uc *UseCase) Get(userID string) (*dto.CartResponse, error) {
	items, err := uc.carts.ItemsByUser(userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{
		Items:    make([]dto.CartItemResponse, 0, len(items)),
		Subtotal: decimal.Zero,
	}
	for _, it := range items {
		p, err := uc.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Active {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		out.Items = append(out.Items, dto.CartItemResponse{
			ID:        it.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
			ImageURL:  p.ImageURL,
			InStock:   p.Stock >= it.Quantity,
		})
		out.Subtotal = out.Subtotal.Add(lineTotal)
	}
	return out, nil
}
