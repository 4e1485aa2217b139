package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test doubles
// ──────────────────────────────────────────────────────────────────────────────

// memStore is an in-memory ArtifactStore with the same exclusive-create
// semantics as the disk store.
type memStore struct {
	mu          sync.Mutex
	files       map[string]*bytes.Buffer
	createErr   error // returned by every Create when set
	existBursts int   // next N creates fail with fs.ErrExist
	failWrite   bool  // handed-out writers fail on Write
}

func newMemStore() *memStore {
	return &memStore{files: map[string]*bytes.Buffer{}}
}

func (s *memStore) Create(name string) (io.WriteCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.existBursts > 0 {
		s.existBursts--
		return nil, fs.ErrExist
	}
	if _, taken := s.files[name]; taken {
		return nil, fs.ErrExist
	}
	buf := &bytes.Buffer{}
	s.files[name] = buf
	return &memWriter{buf: buf, fail: s.failWrite}, nil
}

func (s *memStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

func (s *memStore) PublicPath(name string) string { return "/invoices/" + name }
func (s *memStore) FilePath(name string) string   { return "/tmp/invoices/" + name }

func (s *memStore) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for n := range s.files {
		out = append(out, n)
	}
	return out
}

func (s *memStore) bytesOf(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if buf, ok := s.files[name]; ok {
		return buf.Bytes()
	}
	return nil
}

type memWriter struct {
	buf  *bytes.Buffer
	fail bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.fail {
		return 0, fmt.Errorf("disk full")
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newTestRenderer(t *testing.T, store ArtifactStore) *InvoiceRenderer {
	t.Helper()
	r, err := NewInvoiceRenderer(DefaultTheme(), store, nil, testLogger())
	require.NoError(t, err)
	return r
}

func testCustomer() *entity.User {
	return &entity.User{
		ID:     "u-1",
		Name:   "Annapurani A",
		Email:  "annapurani@example.com",
		Mobile: "+91 98765 43210",
	}
}

func testOrder(itemCount int) *entity.Order {
	items := make([]entity.OrderItem, 0, itemCount)
	subtotal := decimal.Zero
	for i := 0; i < itemCount; i++ {
		it := entity.OrderItem{
			ID:        fmt.Sprintf("oi-%d", i),
			OrderID:   "o-1",
			ProductID: fmt.Sprintf("p-%d", i),
			Name:      fmt.Sprintf("Soft Cotton Saree %d", i),
			Size:      "Free",
			Color:     "Teal",
			Quantity:  1 + i%3,
			UnitPrice: decimal.NewFromInt(int64(500 + 10*i)),
		}
		items = append(items, it)
		subtotal = subtotal.Add(it.LineTotal())
	}
	tax := subtotal.Mul(decimal.RequireFromString("0.05")).Round(2)
	shipping := decimal.NewFromInt(49)
	return &entity.Order{
		ID:           "o-1",
		Number:       "AF-1718822400",
		UserID:       "u-1",
		Status:       entity.OrderStatusPaid,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
		ShippingAddress: &entity.Address{
			Line: "12 MG Road", City: "Madurai", State: "Tamil Nadu", PostalCode: "625001",
		},
		PlacedAt: time.Date(2026, 6, 19, 12, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Input validation
// ──────────────────────────────────────────────────────────────────────────────

func TestRender_RejectsEmptyItemsBeforeIO(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	order := testOrder(3)
	order.Items = nil
	_, err := r.Render(context.Background(), order, testCustomer())

	require.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Empty(t, store.names(), "no artifact may exist after a rejected render")
}

func TestRender_RejectsMalformedInput(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	t.Run("nil order", func(t *testing.T) {
		_, err := r.Render(context.Background(), nil, testCustomer())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("nil customer", func(t *testing.T) {
		_, err := r.Render(context.Background(), testOrder(1), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("zero quantity", func(t *testing.T) {
		order := testOrder(2)
		order.Items[1].Quantity = 0
		_, err := r.Render(context.Background(), order, testCustomer())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("negative unit price", func(t *testing.T) {
		order := testOrder(2)
		order.Items[0].UnitPrice = decimal.NewFromInt(-1)
		_, err := r.Render(context.Background(), order, testCustomer())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("negative total", func(t *testing.T) {
		order := testOrder(2)
		order.Total = decimal.NewFromInt(-10)
		_, err := r.Render(context.Background(), order, testCustomer())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	assert.Empty(t, store.names())
}

// ──────────────────────────────────────────────────────────────────────────────
// Rendering
// ──────────────────────────────────────────────────────────────────────────────

func TestRender_SingleItemFitsOnePage(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	res, err := r.Render(context.Background(), testOrder(1), testCustomer())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.True(t, strings.HasPrefix(res.Path, "/invoices/invoice-o-1-"), "got %s", res.Path)
	assert.True(t, strings.HasSuffix(res.Path, ".pdf"))

	names := store.names()
	require.Len(t, names, 1)
	assert.True(t, bytes.HasPrefix(store.bytesOf(names[0]), []byte("%PDF")), "artifact must be a PDF")
}

func TestRender_FortyItemsPaginate(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	res, err := r.Render(context.Background(), testOrder(40), testCustomer())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Pages, 2, "40 rows must not fit one page")
}

func TestRender_TwiceProducesDistinctArtifacts(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)
	order := testOrder(5)

	first, err := r.Render(context.Background(), order, testCustomer())
	require.NoError(t, err)
	second, err := r.Render(context.Background(), order, testCustomer())
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path, "renders never collide on a name")
	assert.Equal(t, first.Pages, second.Pages, "same input lays out identically")
	assert.Len(t, store.names(), 2)
}

func TestRender_ZeroPlacedAtFallsBackToNow(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	order := testOrder(1)
	order.PlacedAt = time.Time{}
	res, err := r.Render(context.Background(), order, testCustomer())

	require.NoError(t, err, "a missing order date is recovered, not an error")
	assert.Equal(t, 1, res.Pages)
}

func TestRender_CustomerWithoutAddressOrMobile(t *testing.T) {
	store := newMemStore()
	r := newTestRenderer(t, store)

	order := testOrder(2)
	order.ShippingAddress = nil
	customer := testCustomer()
	customer.Mobile = ""

	res, err := r.Render(context.Background(), order, customer)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages, "the billing box keeps its fixed height")
}

func TestRender_MissingLogoIsNonFatal(t *testing.T) {
	store := newMemStore()
	r, err := NewInvoiceRenderer(DefaultTheme(), store,
		[]string{"testdata/definitely-missing.png", ""}, testLogger())
	require.NoError(t, err)

	res, err := r.Render(context.Background(), testOrder(1), testCustomer())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
}

func TestNewInvoiceRenderer_RejectsInvalidTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Columns[len(theme.Columns)-1].Width += 30

	_, err := NewInvoiceRenderer(theme, newMemStore(), nil, testLogger())
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sink failures
// ──────────────────────────────────────────────────────────────────────────────

func TestRender_CreateFailureSurfaces(t *testing.T) {
	store := newMemStore()
	store.createErr = fmt.Errorf("read-only filesystem")
	r := newTestRenderer(t, store)

	_, err := r.Render(context.Background(), testOrder(1), testCustomer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create invoice")
}

func TestRender_WriteFailureLeavesNoArtifact(t *testing.T) {
	store := newMemStore()
	store.failWrite = true
	r := newTestRenderer(t, store)

	_, err := r.Render(context.Background(), testOrder(1), testCustomer())
	require.Error(t, err)
	assert.Empty(t, store.names(), "a failed write must not leave a referenced artifact")
}

func TestRender_NameCollisionRetries(t *testing.T) {
	store := newMemStore()
	store.existBursts = 2 // first two creates land on "taken" names
	r := newTestRenderer(t, store)

	res, err := r.Render(context.Background(), testOrder(1), testCustomer())
	require.NoError(t, err)
	assert.Len(t, store.names(), 1)
	assert.NotEmpty(t, res.Path)
}

// ──────────────────────────────────────────────────────────────────────────────
// Field fallbacks and formatting
// ──────────────────────────────────────────────────────────────────────────────

func TestItemName_FallsBackToPlaceholder(t *testing.T) {
	assert.Equal(t, "Kanchipuram Silk Saree", itemName(entity.OrderItem{Name: "Kanchipuram Silk Saree"}))
	assert.Equal(t, "Product", itemName(entity.OrderItem{}))
	assert.Equal(t, "Product", itemName(entity.OrderItem{Name: "   "}))
}

func TestOption_FallsBackToDash(t *testing.T) {
	assert.Equal(t, "XL", option("XL"))
	assert.Equal(t, "-", option(""))
	assert.Equal(t, "-", option("  "))
}

func TestMoney_AlwaysTwoFractionDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Rs. 0.00"},
		{"49", "Rs. 49.00"},
		{"1299.5", "Rs. 1299.50"},
		{"1299.555", "Rs. 1299.56"},
	}
	for _, tc := range cases {
		d := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.want, money("Rs.", d))
	}
}

func TestTotalsLines_OmitsZeroShippingAndTax(t *testing.T) {
	order := testOrder(2)
	order.ShippingCost = decimal.Zero
	order.Tax = decimal.Zero
	order.Total = order.Subtotal

	lines := totalsLines(order, "Rs.")
	require.Len(t, lines, 2)
	assert.Equal(t, "Subtotal", lines[0].label)
	assert.Equal(t, "Total", lines[1].label)
	assert.True(t, lines[1].emphasis)
	assert.False(t, lines[0].emphasis)
}

func TestTotalsLines_IncludesChargedShippingAndTax(t *testing.T) {
	lines := totalsLines(testOrder(2), "Rs.")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Subtotal", "Shipping", "Tax", "Total"},
		[]string{lines[0].label, lines[1].label, lines[2].label, lines[3].label})
}

func TestBillingLines_DropEmptyFields(t *testing.T) {
	addr := &entity.Address{Line: "12 MG Road", City: "Madurai"}
	full := billingLines(testCustomer(), addr)
	require.Len(t, full, 4)
	assert.Equal(t, "Annapurani A", full[0])
	assert.Equal(t, "12 MG Road, Madurai", full[1])

	noAddr := billingLines(testCustomer(), nil)
	assert.Len(t, noAddr, 3, "missing address drops its line, the rest close ranks")

	bare := billingLines(&entity.User{Name: "X"}, nil)
	assert.Equal(t, []string{"X"}, bare)
}

func TestDisplayNumber_PrefersOrderNumber(t *testing.T) {
	assert.Equal(t, "AF-7", displayNumber(&entity.Order{ID: "o-9", Number: "AF-7"}))
	assert.Equal(t, "o-9", displayNumber(&entity.Order{ID: "o-9"}))
}
