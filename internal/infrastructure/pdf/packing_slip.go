package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
)

// ── palette ───────────────────────────────────────────────────────────────────

var (
	slipPrimary = &props.Color{Red: 136, Green: 14, Blue: 79}
	slipGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	slipWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Ensure PackingSlipGenerator satisfies the billing port.
var _ appbilling.PackingSlipGenerator = (*PackingSlipGenerator)(nil)

// PackingSlipGenerator builds the warehouse packing slip with Maroto v2.
// No prices appear on it: the document travels inside the parcel.
type PackingSlipGenerator struct {
	brand string
}

// NewPackingSlipGenerator builds the generator.
func NewPackingSlipGenerator(brand string) *PackingSlipGenerator {
	return &PackingSlipGenerator{brand: brand}
}

// PackingSlip renders the slip and returns its bytes.
func (g *PackingSlipGenerator) PackingSlip(order *entity.Order, customer *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing Slip "+order.Number, true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: slipPrimary, Thickness: 0.5}))
	m.AddRows(shipToRow(order, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: slipPrimary, Thickness: 0.3}))

	m.AddRows(slipTableHeaderRow())
	for _, r := range slipItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(slipFooterRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate packing slip: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── sections ──────────────────────────────────────────────────────────────────

// headerRow: brand left, order number and date right.
func (g *PackingSlipGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brand, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: slipPrimary, Top: 1,
			}),
			text.New("PACKING SLIP", props.Text{
				Size: 9, Top: 9, Color: slipGray,
			}),
		),
		col.New(5).Add(
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Placed: "+order.PlacedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: slipGray,
			}),
		),
	)
}

// shipToRow: delivery name and address for the parcel label check.
func shipToRow(order *entity.Order, customer *entity.User) core.Row {
	addr := "—"
	if order.ShippingAddress != nil {
		if rendered := order.ShippingAddress.Render(); rendered != "" {
			addr = rendered
		}
	}
	contact := customer.Mobile
	if contact == "" {
		contact = customer.Email
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SHIP TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: slipPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   %s", addr, contact), props.Text{
				Size: 8, Top: 12, Color: slipGray,
			}),
		),
	)
}

// slipTableHeaderRow: pick-list column labels on a dark fill.
func slipTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: slipWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 7, align.Left),
		h("Size", 2, align.Center),
		h("Color", 2, align.Center),
	)
}

// slipItemRows: one pick line per order item.
func slipItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(7).Add(text.New(
				itemName(it),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				option(it.Size),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				option(it.Color),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// slipFooterRow: scannable order code for the packing bench plus a handling note.
func slipFooterRow(order *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(order.Number, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Scan to mark this order packed.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: slipGray,
			}),
			text.New("Check every line against the parcel\nbefore sealing.", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 16, Left: 3, Color: slipPrimary,
			}),
		),
	)
}
