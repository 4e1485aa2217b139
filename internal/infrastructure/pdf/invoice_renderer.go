// Package pdf draws the customer-facing order invoice and the warehouse
// packing slip.
//
// Invoice page layout, A4 portrait:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo top-right │ centered title / order no / date  │
//	│  BILL TO: bordered fixed box  name / address / mobile / email│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | Size | Color | Qty | Price | Total            │
//	│         (alternating fills, paginates near page bottom)      │
//	│  TOTALS: Subtotal / Shipping / Tax / TOTAL   (right-aligned) │
//	│  FOOTER: thank-you, disclaimer, brand signature              │
//	└─────────────────────────────────────────────────────────────┘
//
// Every section takes the running vertical cursor and returns where the next
// section starts, so each is testable from an arbitrary starting position.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	appbilling "github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

// nameAttempts bounds the retries when two renders of the same order land on
// the same millisecond.
const nameAttempts = 3

// ArtifactStore persists finished documents under unique names.
type ArtifactStore interface {
	// Create opens name for writing, failing with fs.ErrExist when taken.
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
	PublicPath(name string) string
	FilePath(name string) string
}

// Ensure InvoiceRenderer satisfies the billing port.
var _ appbilling.InvoiceRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer lays order data out on fixed pages with gofpdf. It holds no
// per-render state: each call allocates its own document and cursor.
type InvoiceRenderer struct {
	theme          Theme
	offsets        []float64 // column x positions, precomputed from the theme
	store          ArtifactStore
	logoCandidates []string
	log            *logger.Logger
}

// NewInvoiceRenderer validates the theme geometry and builds the renderer.
func NewInvoiceRenderer(theme Theme, store ArtifactStore, logoCandidates []string, log *logger.Logger) (*InvoiceRenderer, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &InvoiceRenderer{
		theme:          theme,
		offsets:        theme.columnOffsets(),
		store:          store,
		logoCandidates: logoCandidates,
		log:            log,
	}, nil
}

// Render draws one invoice and persists it, returning the artifact reference.
// Concurrent renders only meet at the store, which hands out exclusive names.
func (r *InvoiceRenderer) Render(_ context.Context, order *entity.Order, customer *entity.User) (*appbilling.RenderResult, error) {
	if err := validateInput(order, customer); err != nil {
		return nil, err
	}

	t := r.theme
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetTitle("Invoice "+displayNumber(order), false)
	doc.SetAuthor(t.Signature, false)
	doc.SetAutoPageBreak(false, 0) // pagination is the table's job
	doc.AddPage()

	y := r.drawHeader(doc, order, t.Margin)
	y = r.drawBillingBox(doc, customer, order.ShippingAddress, y)
	y = r.drawItemsTable(doc, order.Items, y)
	y = r.drawTotals(doc, order, y)
	r.drawFooter(doc)

	if doc.Err() {
		return nil, fmt.Errorf("draw invoice: %w", doc.Error())
	}

	name, out, err := r.createArtifact(order.ID)
	if err != nil {
		return nil, err
	}
	if err := doc.Output(out); err != nil {
		_ = out.Close()
		_ = r.store.Remove(name)
		return nil, fmt.Errorf("write invoice %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		_ = r.store.Remove(name)
		return nil, fmt.Errorf("close invoice %s: %w", name, err)
	}

	return &appbilling.RenderResult{
		Path:  r.store.PublicPath(name),
		File:  r.store.FilePath(name),
		Pages: doc.PageCount(),
	}, nil
}

// validateInput rejects a render before any drawing or I/O starts.
func validateInput(order *entity.Order, customer *entity.User) error {
	if order == nil || customer == nil {
		return domain.ErrInvalidInput
	}
	if len(order.Items) == 0 {
		return domain.ErrEmptyOrder
	}
	for i, it := range order.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity %d: %w", i, it.Quantity, domain.ErrInvalidInput)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: negative unit price: %w", i, domain.ErrInvalidInput)
		}
	}
	if order.Subtotal.IsNegative() || order.ShippingCost.IsNegative() ||
		order.Tax.IsNegative() || order.Total.IsNegative() {
		return fmt.Errorf("negative order amount: %w", domain.ErrInvalidInput)
	}
	return nil
}

// ── sections ──────────────────────────────────────────────────────────────────

// drawHeader: logo top-right, centered title, order number and date.
// An unparseable or missing order date falls back to the current time.
func (r *InvoiceRenderer) drawHeader(doc *gofpdf.Fpdf, order *entity.Order, y float64) float64 {
	t := r.theme

	if logo := r.resolveLogo(); logo != "" {
		doc.ImageOptions(logo, t.PageWidth-t.Margin-t.LogoWidth, y, t.LogoWidth, 0, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	r.font(doc, "B", t.TitleSize, t.Primary)
	r.centerLine(doc, y, t.TitleSize+4, t.Title)
	y += t.TitleSize + 12

	r.font(doc, "", t.BodySize, t.Text)
	r.centerLine(doc, y, t.LineHeight, "Order "+displayNumber(order))
	y += t.LineHeight + 2

	placed := order.PlacedAt
	if placed.IsZero() {
		placed = time.Now()
	}
	r.font(doc, "", t.SmallSize, t.Muted)
	r.centerLine(doc, y, t.LineHeight, placed.Format("02 Jan 2006"))
	y += t.LineHeight + t.SectionGap

	return y
}

// drawBillingBox: a fixed-height bordered box with the customer's details.
// The box never grows; lines past its bottom edge are clipped away.
func (r *InvoiceRenderer) drawBillingBox(doc *gofpdf.Fpdf, customer *entity.User, addr *entity.Address, y float64) float64 {
	t := r.theme

	r.font(doc, "B", t.SmallSize, t.Primary)
	doc.SetXY(t.Margin, y)
	doc.CellFormat(t.BillingBoxWidth, t.LineHeight, "BILL TO", "", 0, "LM", false, 0, "")
	y += t.LineHeight + 4

	doc.SetDrawColor(t.Border.R, t.Border.G, t.Border.B)
	doc.SetLineWidth(0.75)
	doc.Rect(t.Margin, y, t.BillingBoxWidth, t.BillingBoxHeight, "D")

	doc.ClipRect(t.Margin, y, t.BillingBoxWidth, t.BillingBoxHeight, false)
	lineY := y + 10
	for i, ln := range billingLines(customer, addr) {
		style := ""
		if i == 0 {
			style = "B"
		}
		r.font(doc, style, t.BodySize, t.Text)
		doc.SetXY(t.Margin+10, lineY)
		doc.CellFormat(t.BillingBoxWidth-20, t.BillingLineHeight, ln, "", 0, "LM", false, 0, "")
		lineY += t.BillingLineHeight
	}
	doc.ClipEnd()

	return y + t.BillingBoxHeight + t.SectionGap
}

// drawItemsTable: header row plus one row per line item. A row that would
// cross the footer reserve starts a new page with the header redrawn; rows
// are never split across pages.
func (r *InvoiceRenderer) drawItemsTable(doc *gofpdf.Fpdf, items []entity.OrderItem, y float64) float64 {
	t := r.theme
	y = r.drawTableHeader(doc, y)

	nameWidth := t.Columns[0].Width - 2*t.CellPadding
	for i, it := range items {
		doc.SetFont(t.FontFamily, "", t.BodySize) // SplitLines measures with the current font
		lines := doc.SplitLines([]byte(itemName(it)), nameWidth)
		rowH := max(t.MinRowHeight, float64(len(lines))*t.LineHeight+2*t.CellPadding)

		if y+rowH > t.pageBreakAt() {
			doc.AddPage()
			y = r.drawTableHeader(doc, t.Margin)
		}

		if i%2 == 1 {
			doc.SetFillColor(t.AltRowFill.R, t.AltRowFill.G, t.AltRowFill.B)
			doc.Rect(t.Margin, y, t.tableWidth(), rowH, "F")
		}

		r.font(doc, "", t.BodySize, t.Text)
		textTop := y + t.CellPadding
		for j, ln := range lines {
			doc.SetXY(r.offsets[0]+t.CellPadding, textTop+float64(j)*t.LineHeight)
			doc.CellFormat(nameWidth, t.LineHeight, string(ln), "", 0, "LM", false, 0, "")
		}

		r.cell(doc, 1, y, rowH, option(it.Size))
		r.cell(doc, 2, y, rowH, option(it.Color))
		r.cell(doc, 3, y, rowH, fmt.Sprintf("%d", it.Quantity))
		r.cell(doc, 4, y, rowH, r.money(it.UnitPrice))
		r.cell(doc, 5, y, rowH, r.money(it.LineTotal()))

		y += rowH
	}

	return y + t.SectionGap
}

// drawTableHeader paints the filled header row and returns the cursor under it.
func (r *InvoiceRenderer) drawTableHeader(doc *gofpdf.Fpdf, y float64) float64 {
	t := r.theme
	doc.SetFillColor(t.Primary.R, t.Primary.G, t.Primary.B)
	doc.Rect(t.Margin, y, t.tableWidth(), t.HeaderRowHeight, "F")
	r.font(doc, "B", t.BodySize, t.HeaderText)
	for i, c := range t.Columns {
		doc.SetXY(r.offsets[i]+t.CellPadding, y)
		doc.CellFormat(c.Width-2*t.CellPadding, t.HeaderRowHeight, c.Label, "", 0, c.Align+"M", false, 0, "")
	}
	return y + t.HeaderRowHeight
}

// drawTotals: right-aligned label/value pairs. Subtotal and Total always
// print; Shipping and Tax only when they charge anything.
func (r *InvoiceRenderer) drawTotals(doc *gofpdf.Fpdf, order *entity.Order, y float64) float64 {
	t := r.theme
	lines := totalsLines(order, t.CurrencyPrefix)

	var blockH float64
	for _, ln := range lines {
		blockH += r.totalRowHeight(ln)
	}
	if y+blockH > t.pageBreakAt() {
		doc.AddPage()
		y = t.Margin
	}

	right := t.Margin + t.tableWidth()
	const labelW, valueW = 110.0, 110.0
	for _, ln := range lines {
		rowH := r.totalRowHeight(ln)
		if ln.emphasis {
			doc.SetDrawColor(t.Border.R, t.Border.G, t.Border.B)
			doc.SetLineWidth(0.75)
			doc.Line(right-labelW-valueW, y+1, right, y+1)
			r.font(doc, "B", t.TotalSize, t.Primary)
		} else {
			r.font(doc, "", t.BodySize, t.Text)
		}
		doc.SetXY(right-labelW-valueW, y)
		doc.CellFormat(labelW, rowH, ln.label, "", 0, "RM", false, 0, "")
		doc.SetXY(right-valueW, y)
		doc.CellFormat(valueW, rowH, ln.value, "", 0, "RM", false, 0, "")
		y += rowH
	}

	return y + t.SectionGap
}

// drawFooter writes the closing block inside the reserved bottom band of the
// current page: centered thank-you, dimmed disclaimer, brand signature.
func (r *InvoiceRenderer) drawFooter(doc *gofpdf.Fpdf) {
	t := r.theme
	y := t.PageHeight - t.Margin - 3*t.LineHeight - 8

	r.font(doc, "", t.BodySize, t.Text)
	r.centerLine(doc, y, t.LineHeight, t.ThankYou)
	y += t.LineHeight + 4

	doc.SetAlpha(0.6, "Normal")
	r.font(doc, "", t.SmallSize, t.Muted)
	r.centerLine(doc, y, t.LineHeight, t.Disclaimer)
	doc.SetAlpha(1, "Normal")
	y += t.LineHeight + 4

	r.font(doc, "I", t.BodySize, t.Primary)
	doc.SetXY(t.Margin, y)
	doc.CellFormat(t.ContentWidth(), t.LineHeight, t.Signature, "", 0, "RM", false, 0, "")
}

// ── drawing helpers ───────────────────────────────────────────────────────────

func (r *InvoiceRenderer) font(doc *gofpdf.Fpdf, style string, size float64, c Color) {
	doc.SetFont(r.theme.FontFamily, style, size)
	doc.SetTextColor(c.R, c.G, c.B)
}

// centerLine writes one horizontally centered line across the content width.
func (r *InvoiceRenderer) centerLine(doc *gofpdf.Fpdf, y, h float64, s string) {
	doc.SetXY(r.theme.Margin, y)
	doc.CellFormat(r.theme.ContentWidth(), h, s, "", 0, "CM", false, 0, "")
}

// cell draws one vertically centered value in column col of the row at y.
func (r *InvoiceRenderer) cell(doc *gofpdf.Fpdf, col int, y, rowH float64, s string) {
	t := r.theme
	c := t.Columns[col]
	doc.SetXY(r.offsets[col]+t.CellPadding, y)
	doc.CellFormat(c.Width-2*t.CellPadding, rowH, s, "", 0, c.Align+"M", false, 0, "")
}

func (r *InvoiceRenderer) money(d decimal.Decimal) string {
	return money(r.theme.CurrencyPrefix, d)
}

// resolveLogo returns the first candidate path that exists. A miss is logged
// and the invoice renders without the image.
func (r *InvoiceRenderer) resolveLogo() string {
	for _, p := range r.logoCandidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	r.log.Warn().Strs("candidates", r.logoCandidates).Msg("brand logo not found, rendering without it")
	return ""
}

// createArtifact opens a uniquely named file. On a same-millisecond collision
// the millis component is bumped and the create retried.
func (r *InvoiceRenderer) createArtifact(orderID string) (string, io.WriteCloser, error) {
	millis := time.Now().UnixMilli()
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("invoice-%s-%d.pdf", orderID, millis+int64(attempt))
		out, err := r.store.Create(name)
		if err == nil {
			return name, out, nil
		}
		if !errors.Is(err, fs.ErrExist) || attempt >= nameAttempts {
			return "", nil, fmt.Errorf("create invoice %s: %w", name, err)
		}
	}
}

// ── field fallbacks and formatting ────────────────────────────────────────────

// itemName and option are the field fallbacks used across the table: a blank
// product name renders as "Product", a blank size or color as "-".
func itemName(it entity.OrderItem) string {
	if s := strings.TrimSpace(it.Name); s != "" {
		return s
	}
	return "Product"
}

func option(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "-"
}

func displayNumber(o *entity.Order) string {
	if o.Number != "" {
		return o.Number
	}
	return o.ID
}

type totalLine struct {
	label    string
	value    string
	emphasis bool
}

// totalsLines builds the summary rows in display order.
func totalsLines(order *entity.Order, prefix string) []totalLine {
	lines := []totalLine{{label: "Subtotal", value: money(prefix, order.Subtotal)}}
	if order.ShippingCost.IsPositive() {
		lines = append(lines, totalLine{label: "Shipping", value: money(prefix, order.ShippingCost)})
	}
	if order.Tax.IsPositive() {
		lines = append(lines, totalLine{label: "Tax", value: money(prefix, order.Tax)})
	}
	return append(lines, totalLine{label: "Total", value: money(prefix, order.Total), emphasis: true})
}

// money renders "Rs. 1234.00": two fraction digits always, the decimal zero
// value comes out as "Rs. 0.00".
func money(prefix string, d decimal.Decimal) string {
	return prefix + " " + d.StringFixed(2)
}

// billingLines resolves the billing block content in display order. Empty
// fields drop out; the remaining lines close ranks without reflowing.
func billingLines(customer *entity.User, addr *entity.Address) []string {
	var lines []string
	if name := strings.TrimSpace(customer.Name); name != "" {
		lines = append(lines, name)
	}
	if addr != nil {
		if rendered := addr.Render(); rendered != "" {
			lines = append(lines, rendered)
		}
	}
	if m := strings.TrimSpace(customer.Mobile); m != "" {
		lines = append(lines, "Mobile: "+m)
	}
	if e := strings.TrimSpace(customer.Email); e != "" {
		lines = append(lines, e)
	}
	return lines
}

// totalRowHeight gives the emphasized Total line extra breathing room.
func (r *InvoiceRenderer) totalRowHeight(ln totalLine) float64 {
	if ln.emphasis {
		return r.theme.LineHeight + 8
	}
	return r.theme.LineHeight + 4
}
