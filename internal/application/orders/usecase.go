package orders

import (
	"context"
	"time"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// UseCase order history, detail and lifecycle transitions.
type UseCase struct {
	orders repository.OrderRepository
	tx     TxRunner
	log    *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(orders repository.OrderRepository, tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{orders: orders, tx: tx, log: log}
}

// MyOrders lists the caller's orders, newest first, headers only.
func (uc *UseCase) MyOrders(userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, page), nil
}

// Get returns one order with its items. Customers see only their own orders;
// admins see any.
func (uc *UseCase) Get(orderID, requesterID string, isAdmin bool) (*dto.OrderResponse, error) {
	order, err := uc.loadWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, domain.ErrNotFound
	}
	return ToResponse(order), nil
}

// AdminList lists all orders, optionally filtered by status.
func (uc *UseCase) AdminList(status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if status != "" && !knownStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orders.ListAll(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, page), nil
}

// UpdateStatus moves an order along its lifecycle. Illegal transitions return
// ErrConflict. Moving to CANCELLED restores the stock of every line.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID, next string) (*dto.OrderResponse, error) {
	if !knownStatus(next) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.loadWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(next) {
		return nil, domain.ErrConflict
	}
	if next == entity.OrderStatusCancelled {
		if err := uc.cancelTx(ctx, order); err != nil {
			return nil, err
		}
	} else if err := uc.orders.UpdateStatus(orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	uc.log.Info().Str("order_id", orderID).Str("status", next).Msg("order status updated")
	return ToResponse(order), nil
}

// Cancel lets the owner cancel an order that has not shipped, restoring stock.
func (uc *UseCase) Cancel(ctx context.Context, orderID, requesterID string) (*dto.OrderResponse, error) {
	order, err := uc.loadWithItems(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, domain.ErrNotFound
	}
	if !order.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, domain.ErrConflict
	}
	if err := uc.cancelTx(ctx, order); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled
	uc.log.Info().Str("order_id", orderID).Msg("order cancelled")
	return ToResponse(order), nil
}

// cancelTx flips the status and restores stock atomically.
func (uc *UseCase) cancelTx(ctx context.Context, order *entity.Order) error {
	return uc.tx.RunOrderUpdate(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelled); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := productRepo.RestoreStock(it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *UseCase) loadWithItems(orderID string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orders.ItemsByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func knownStatus(s string) bool {
	switch s {
	case entity.OrderStatusPlaced, entity.OrderStatusPaid, entity.OrderStatusShipped,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled:
		return true
	}
	return false
}

// ToResponse maps an order with its items to the transport shape.
func ToResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Tax:          o.Tax,
		Total:        o.Total,
		InvoicePath:  o.InvoicePath,
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

func toListResponse(list []*entity.Order, page dto.PageRequest) *dto.OrderListResponse {
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, *ToResponse(o))
	}
	return out
}
