package orders

import (
	"context"
	"testing"
	"time"

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
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.Order{}, items: map[string][]entity.OrderItem{}}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}
func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	r.items[it.OrderID] = append(r.items[it.OrderID], *it)
	return nil
}
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		cp.Items = nil
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeOrderRepo) ItemsByOrderID(orderID string) ([]entity.OrderItem, error) {
	return r.items[orderID], nil
}
func (r *fakeOrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) ListAll(status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	r.orders[id].Status = status
	return nil
}
func (r *fakeOrderRepo) SetInvoicePath(id, path string) error {
	r.orders[id].InvoicePath = path
	return nil
}

type fakeProductRepo struct {
	stock map[string]int
}

func (r *fakeProductRepo) Create(*entity.Product) error              { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) GetBySlug(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(string) error          { return nil }
func (r *fakeProductRepo) DecrementStock(id string, qty int) error {
	r.stock[id] -= qty
	return nil
}
func (r *fakeProductRepo) RestoreStock(id string, qty int) error {
	r.stock[id] += qty
	return nil
}

type fakeTx struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func (t *fakeTx) RunOrderUpdate(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(t.products, t.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(repo *fakeOrderRepo, id, userID, status string) {
	repo.orders[id] = &entity.Order{
		ID: id, Number: "AF-" + id, UserID: userID, Status: status,
		Subtotal: decimal.NewFromInt(500), Total: decimal.NewFromInt(549),
		PlacedAt: time.Now(),
	}
	repo.items[id] = []entity.OrderItem{
		{ID: "i1", OrderID: id, ProductID: "p-1", Name: "Kurti", Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
	}
}

func newTestUseCase() (*UseCase, *fakeOrderRepo, *fakeProductRepo) {
	repo := newFakeOrderRepo()
	products := &fakeProductRepo{stock: map[string]int{"p-1": 3}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewUseCase(repo, &fakeTx{orders: repo, products: products}, log)
	return uc, repo, products
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_EnforcesOwnership(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)

	out, err := uc.Get("o-1", "u-1", false)
	require.NoError(t, err)
	assert.Equal(t, "o-1", out.ID)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].LineTotal.Equal(decimal.NewFromInt(500)))

	_, err = uc.Get("o-1", "u-2", false)
	assert.ErrorIs(t, err, domain.ErrNotFound, "foreign orders read as absent, not forbidden")

	_, err = uc.Get("o-1", "u-2", true)
	assert.NoError(t, err, "admins see any order")
}

func TestUpdateStatus_LegalTransition(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)

	out, err := uc.UpdateStatus(context.Background(), "o-1", entity.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, out.Status)
	assert.Equal(t, entity.OrderStatusPaid, repo.orders["o-1"].Status)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusDelivered)

	_, err := uc.UpdateStatus(context.Background(), "o-1", entity.OrderStatusPaid)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)

	_, err := uc.UpdateStatus(context.Background(), "o-1", "TELEPORTED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_CancelRestoresStock(t *testing.T) {
	uc, repo, products := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPaid)

	out, err := uc.UpdateStatus(context.Background(), "o-1", entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.Equal(t, 5, products.stock["p-1"], "cancellation returns the 2 units")
}

func TestCancel_OwnerOnly(t *testing.T) {
	uc, repo, products := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)

	_, err := uc.Cancel(context.Background(), "o-1", "u-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Cancel(context.Background(), "o-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.Equal(t, 5, products.stock["p-1"])
}

func TestCancel_RejectedAfterShipping(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusShipped)

	_, err := uc.Cancel(context.Background(), "o-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdminList_FiltersByStatus(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)
	seedOrder(repo, "o-2", "u-2", entity.OrderStatusShipped)

	out, err := uc.AdminList(entity.OrderStatusShipped, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "o-2", out.Items[0].ID)

	_, err = uc.AdminList("NOT-A-STATUS", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMyOrders(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedOrder(repo, "o-1", "u-1", entity.OrderStatusPlaced)
	seedOrder(repo, "o-2", "u-2", entity.OrderStatusPlaced)

	out, err := uc.MyOrders("u-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "o-1", out.Items[0].ID)
}
