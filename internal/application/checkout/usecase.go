package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// Pricing shipping rules applied at checkout.
type Pricing struct {
	FreeShippingOver decimal.Decimal // subtotal at or above this ships free
	FlatRate         decimal.Decimal // otherwise this flat amount
}

// UseCase turns the caller's cart into a placed order.
type UseCase struct {
	tx      TxRunner
	pricing Pricing
	log     *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(tx TxRunner, pricing Pricing, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, pricing: pricing, log: log}
}

// PlaceOrder creates an order from the user's cart in one transaction:
// every line re-reads its product, stock is decremented conditionally, the
// order and its snapshot lines are inserted and the cart is cleared. Any
// failed line rolls the whole order back.
func (uc *UseCase) PlaceOrder(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	var placed *entity.Order

	err := uc.tx.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		lines, err := cartRepo.ItemsByUser(userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyOrder
		}

		now := time.Now()
		order := &entity.Order{
			ID:           uuid.New().String(),
			Number:       fmt.Sprintf("AF-%d", now.Unix()),
			UserID:       userID,
			Status:       entity.OrderStatusPlaced,
			Subtotal:     decimal.Zero,
			ShippingCost: decimal.Zero,
			Tax:          decimal.Zero,
			Total:        decimal.Zero,
			PlacedAt:     now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if in.ShippingAddress != nil {
			order.ShippingAddress = &entity.Address{
				Line:       in.ShippingAddress.Line,
				City:       in.ShippingAddress.City,
				State:      in.ShippingAddress.State,
				PostalCode: in.ShippingAddress.PostalCode,
			}
		}

		for _, line := range lines {
			p, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.Active {
				return domain.ErrConflict
			}
			if !p.HasSize(line.Size) || !p.HasColor(line.Color) {
				return domain.ErrConflict
			}
			if err := productRepo.DecrementStock(p.ID, line.Quantity); err != nil {
				return err
			}
			item := entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: p.ID,
				Name:      p.Name,
				Size:      line.Size,
				Color:     line.Color,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			}
			order.Items = append(order.Items, item)
			lineTotal := item.LineTotal()
			order.Subtotal = order.Subtotal.Add(lineTotal)
			order.Tax = order.Tax.Add(lineTotal.Mul(p.TaxRate))
		}

		if order.Subtotal.LessThan(uc.pricing.FreeShippingOver) {
			order.ShippingCost = uc.pricing.FlatRate
		}
		order.Tax = order.Tax.Round(2)
		order.Total = order.Subtotal.Add(order.ShippingCost).Add(order.Tax)

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		if err := cartRepo.Clear(userID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", placed.ID).
		Str("number", placed.Number).
		Str("total", placed.Total.StringFixed(2)).
		Msg("order placed")

	return toOrderResponse(placed), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Tax:          o.Tax,
		Total:        o.Total,
		PlacedAt:     o.PlacedAt.Format(time.RFC3339),
	}
	if o.ShippingAddress != nil {
		out.ShippingAddress = &dto.AddressDTO{
			Line:       o.ShippingAddress.Line,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
		}
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
		})
	}
	return out
}
