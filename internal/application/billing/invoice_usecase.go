package billing

import (
	"context"
	"fmt"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// InvoiceUseCase produces order invoices and packing slips.
type InvoiceUseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	renderer InvoiceRenderer
	slips    PackingSlipGenerator
	mailer   Mailer // nil when SMTP is not configured
	log      *logger.Logger
}

// NewInvoiceUseCase builds the use case. mailer may be nil.
func NewInvoiceUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	renderer InvoiceRenderer,
	slips PackingSlipGenerator,
	mailer Mailer,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		orders:   orders,
		users:    users,
		renderer: renderer,
		slips:    slips,
		mailer:   mailer,
		log:      log,
	}
}

// GenerateInvoice renders the invoice PDF for an order, records its public
// path on the order and mails it to the customer. Each call produces a fresh
// artifact; the order keeps the path of the latest one. The mail is best
// effort: a send failure is logged, not returned.
func (uc *InvoiceUseCase) GenerateInvoice(ctx context.Context, orderID, requesterID string, isAdmin bool) (*dto.InvoiceResponse, error) {
	order, customer, err := uc.loadOrder(orderID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}

	res, err := uc.renderer.Render(ctx, order, customer)
	if err != nil {
		return nil, fmt.Errorf("render invoice for order %s: %w", orderID, err)
	}
	if err := uc.orders.SetInvoicePath(orderID, res.Path); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("path", res.Path).
		Int("pages", res.Pages).
		Msg("invoice generated")

	if uc.mailer != nil && customer.Email != "" {
		if err := uc.mailer.SendOrderInvoice(customer.Email, customer.Name, order, res.File); err != nil {
			uc.log.Warn().Err(err).Str("order_id", orderID).Msg("invoice mail failed")
		}
	}

	return &dto.InvoiceResponse{OrderID: orderID, InvoicePath: res.Path, Pages: res.Pages}, nil
}

// PackingSlip returns the packing slip PDF bytes for fulfilment.
func (uc *InvoiceUseCase) PackingSlip(ctx context.Context, orderID string) ([]byte, error) {
	order, customer, err := uc.loadOrder(orderID, "", true)
	if err != nil {
		return nil, err
	}
	out, err := uc.slips.PackingSlip(order, customer)
	if err != nil {
		return nil, fmt.Errorf("packing slip for order %s: %w", orderID, err)
	}
	return out, nil
}

// loadOrder fetches the order with items plus its customer, enforcing that
// non-admin callers own the order.
func (uc *InvoiceUseCase) loadOrder(orderID, requesterID string, isAdmin bool) (*entity.Order, *entity.User, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.orders.ItemsByOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}
	order.Items = items

	customer, err := uc.users.GetByID(order.UserID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	return order, customer, nil
}
