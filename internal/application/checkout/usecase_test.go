package checkout

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/dto"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/repository"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles: in-memory repos behind a pass-through TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	cartItems []*entity.CartItem
	products  map[string]*entity.Product
	orders    []*entity.Order
	items     []*entity.OrderItem
	cleared   bool
}

type fakeCartRepo struct{ s *fakeState }

func (r *fakeCartRepo) Upsert(*entity.CartItem) error                  { return nil }
func (r *fakeCartRepo) GetItem(string) (*entity.CartItem, error)       { return nil, nil }
func (r *fakeCartRepo) UpdateQuantity(string, int) error               { return nil }
func (r *fakeCartRepo) Remove(string) error                            { return nil }
func (r *fakeCartRepo) ItemsByUser(string) ([]*entity.CartItem, error) { return r.s.cartItems, nil }
func (r *fakeCartRepo) Clear(string) error {
	r.s.cleared = true
	r.s.cartItems = nil
	return nil
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(*entity.Product) error          { return nil }
func (r *fakeProductRepo) GetBySlug(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(string) error          { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeProductRepo) DecrementStock(id string, qty int) error {
	p := r.s.products[id]
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}
func (r *fakeProductRepo) RestoreStock(id string, qty int) error {
	r.s.products[id].Stock += qty
	return nil
}

type fakeOrderRepo struct{ s *fakeState }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.s.orders = append(r.s.orders, &cp)
	return nil
}
func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	cp := *it
	r.s.items = append(r.s.items, &cp)
	return nil
}
func (r *fakeOrderRepo) GetByID(string) (*entity.Order, error)              { return nil, nil }
func (r *fakeOrderRepo) ItemsByOrderID(string) ([]entity.OrderItem, error)  { return nil, nil }
func (r *fakeOrderRepo) ListByUser(string, int, int) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) ListAll(string, int, int) ([]*entity.Order, error)  { return nil, nil }
func (r *fakeOrderRepo) UpdateStatus(string, string) error                  { return nil }
func (r *fakeOrderRepo) SetInvoicePath(string, string) error                { return nil }

// fakeTx runs the callback directly against the shared state, with no real
// transaction underneath.
type fakeTx struct{ s *fakeState }

func (t *fakeTx) RunCheckout(_ context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(&fakeCartRepo{t.s}, &fakeProductRepo{t.s}, &fakeOrderRepo{t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPricing() Pricing {
	return Pricing{FreeShippingOver: money("999"), FlatRate: money("49")}
}

func newState() *fakeState {
	return &fakeState{
		products: map[string]*entity.Product{
			"p-saree": {
				ID: "p-saree", Name: "Soft Cotton Saree", Price: money("1299"),
				TaxRate: money("0.05"), Colors: []string{"Teal"}, Stock: 10, Active: true,
			},
			"p-kurti": {
				ID: "p-kurti", Name: "Anarkali Kurti", Price: money("250"),
				TaxRate: money("0.12"), Sizes: []string{"M", "L"}, Stock: 5, Active: true,
			},
		},
	}
}

func addLine(s *fakeState, productID, size, color string, qty int) {
	s.cartItems = append(s.cartItems, &entity.CartItem{
		ID: "c-" + productID, UserID: "u-1", ProductID: productID,
		Size: size, Color: color, Quantity: qty,
	})
}

func newCheckout(s *fakeState) *UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewUseCase(&fakeTx{s}, testPricing(), log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_ComputesTotalsAndSnapshots(t *testing.T) {
	s := newState()
	addLine(s, "p-saree", "", "Teal", 1) // 1299.00, 5% GST
	addLine(s, "p-kurti", "M", "", 2)    // 500.00, 12% GST
	uc := newCheckout(s)

	out, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{
		ShippingAddress: &dto.AddressDTO{Line: "12 MG Road", City: "Madurai"},
	})
	require.NoError(t, err)

	// subtotal 1799, above the free-shipping threshold, tax 64.95 + 60.00
	assert.True(t, out.Subtotal.Equal(money("1799")), "subtotal %s", out.Subtotal)
	assert.True(t, out.ShippingCost.IsZero(), "shipping %s", out.ShippingCost)
	assert.True(t, out.Tax.Equal(money("124.95")), "tax %s", out.Tax)
	assert.True(t, out.Total.Equal(money("1923.95")), "total %s", out.Total)

	assert.Equal(t, entity.OrderStatusPlaced, out.Status)
	assert.True(t, strings.HasPrefix(out.Number, "AF-"))
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].LineTotal.Equal(money("1299")))

	// Side effects: order persisted, stock decremented, cart cleared.
	require.Len(t, s.orders, 1)
	assert.Len(t, s.items, 2)
	assert.Equal(t, 9, s.products["p-saree"].Stock)
	assert.Equal(t, 3, s.products["p-kurti"].Stock)
	assert.True(t, s.cleared)
}

func TestPlaceOrder_ChargesFlatShippingBelowThreshold(t *testing.T) {
	s := newState()
	addLine(s, "p-kurti", "L", "", 1) // 250 < 999
	uc := newCheckout(s)

	out, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{})
	require.NoError(t, err)

	assert.True(t, out.ShippingCost.Equal(money("49")))
	assert.True(t, out.Total.Equal(money("329")), "250 + 49 + 30 tax, got %s", out.Total)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	uc := newCheckout(newState())

	_, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	s := newState()
	addLine(s, "p-kurti", "M", "", 8) // only 5 in stock
	uc := newCheckout(s)

	_, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.orders, "no order row on a failed checkout")
}

func TestPlaceOrder_HiddenProductConflicts(t *testing.T) {
	s := newState()
	s.products["p-saree"].Active = false
	addLine(s, "p-saree", "", "Teal", 1)
	uc := newCheckout(s)

	_, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPlaceOrder_StaleVariantConflicts(t *testing.T) {
	s := newState()
	addLine(s, "p-kurti", "XXL", "", 1) // size no longer offered
	uc := newCheckout(s)

	_, err := uc.PlaceOrder(context.Background(), "u-1", dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
