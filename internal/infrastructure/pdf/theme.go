package pdf

import "fmt"

// ── Theme ─────────────────────────────────────────────────────────────────────

// Color is an RGB triple for gofpdf's 0-255 setters.
type Color struct {
	R, G, B int
}

// Column is one line-item table column. X offsets are not stored; they are
// accumulated from widths and the inter-column gap.
type Column struct {
	Label string
	Width float64
	Align string // "L", "C" or "R"
}

// Theme carries every style and geometry constant of the invoice layout.
// It is set once at renderer construction and never mutated afterwards, so
// alternate themes can be exercised in tests without touching the renderer.
type Theme struct {
	// Page geometry, in points.
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// Fonts.
	FontFamily string
	TitleSize  float64
	BodySize   float64
	SmallSize  float64
	TotalSize  float64

	// Palette.
	Primary    Color // brand color: title, table header fill, total line
	HeaderText Color // text on the primary fill
	Text       Color
	Muted      Color
	Border     Color
	AltRowFill Color // every other body row

	// Line-item table.
	Columns         []Column
	ColumnGap       float64
	HeaderRowHeight float64
	LineHeight      float64
	CellPadding     float64
	MinRowHeight    float64

	// Sections.
	SectionGap        float64
	BillingBoxWidth   float64
	BillingBoxHeight  float64 // fixed; content beyond it clips, the box never grows
	BillingLineHeight float64
	FooterReserve     float64 // bottom band kept free of rows for the footer
	LogoWidth         float64

	// Wording.
	Title          string
	CurrencyPrefix string // "Rs." instead of the rupee sign, core fonts are not UTF-8 safe
	ThankYou       string
	Disclaimer     string
	Signature      string
}

// DefaultTheme is the production Arudhra Fashions look: A4 portrait, maroon
// brand color, six item columns. Column widths plus gaps put the right edge
// of the last column at 546, inside the 555.28 limit checked by Validate.
func DefaultTheme() Theme {
	return Theme{
		PageWidth:  595.28,
		PageHeight: 841.89,
		Margin:     40,

		FontFamily: "Helvetica",
		TitleSize:  22,
		BodySize:   10,
		SmallSize:  8,
		TotalSize:  13,

		Primary:    Color{R: 136, G: 14, B: 79},
		HeaderText: Color{R: 255, G: 255, B: 255},
		Text:       Color{R: 33, G: 33, B: 33},
		Muted:      Color{R: 110, G: 110, B: 110},
		Border:     Color{R: 200, G: 200, B: 200},
		AltRowFill: Color{R: 247, G: 243, B: 245},

		Columns: []Column{
			{Label: "Item", Width: 150, Align: "L"},
			{Label: "Size", Width: 55, Align: "C"},
			{Label: "Color", Width: 55, Align: "C"},
			{Label: "Qty", Width: 40, Align: "C"},
			{Label: "Price", Width: 86, Align: "R"},
			{Label: "Total", Width: 80, Align: "R"},
		},
		ColumnGap:       8,
		HeaderRowHeight: 26,
		LineHeight:      12,
		CellPadding:     6,
		MinRowHeight:    24,

		SectionGap:        18,
		BillingBoxWidth:   280,
		BillingBoxHeight:  110,
		BillingLineHeight: 16,
		FooterReserve:     90,
		LogoWidth:         70,

		Title:          "INVOICE",
		CurrencyPrefix: "Rs.",
		ThankYou:       "Thank you for shopping with Arudhra Fashions!",
		Disclaimer:     "This is a computer generated invoice and does not require a signature.",
		Signature:      "Arudhra Fashions",
	}
}

// Validate rejects a theme whose geometry cannot be laid out. The column
// check is the load-bearing one: the last column must end inside the right
// margin, i.e. lastX + lastWidth <= pageWidth - margin.
func (t Theme) Validate() error {
	if t.PageWidth <= 0 || t.PageHeight <= 0 {
		return fmt.Errorf("theme: page size %gx%g is not positive", t.PageWidth, t.PageHeight)
	}
	if t.Margin <= 0 || t.Margin*2 >= t.PageWidth {
		return fmt.Errorf("theme: margin %g does not fit page width %g", t.Margin, t.PageWidth)
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("theme: no table columns")
	}
	if t.ColumnGap < 0 || t.LineHeight <= 0 || t.MinRowHeight <= 0 || t.HeaderRowHeight <= 0 {
		return fmt.Errorf("theme: non-positive table metric")
	}
	if t.FooterReserve <= 0 || t.FooterReserve >= t.PageHeight-t.Margin {
		return fmt.Errorf("theme: footer reserve %g does not fit page height %g", t.FooterReserve, t.PageHeight)
	}
	if t.BillingBoxHeight <= 0 || t.BillingBoxWidth <= 0 || t.BillingLineHeight <= 0 {
		return fmt.Errorf("theme: non-positive billing box metric")
	}
	for i, c := range t.Columns {
		if c.Width <= 0 {
			return fmt.Errorf("theme: column %d (%s) has non-positive width", i, c.Label)
		}
	}
	offsets := t.columnOffsets()
	last := len(t.Columns) - 1
	if edge, limit := offsets[last]+t.Columns[last].Width, t.PageWidth-t.Margin; edge > limit {
		return fmt.Errorf("theme: last column ends at %g, past the %g limit", edge, limit)
	}
	return nil
}

// ContentWidth is the horizontal space between the margins.
func (t Theme) ContentWidth() float64 {
	return t.PageWidth - 2*t.Margin
}

// columnOffsets accumulates each column's x from prior widths plus gaps.
func (t Theme) columnOffsets() []float64 {
	offsets := make([]float64, len(t.Columns))
	x := t.Margin
	for i, c := range t.Columns {
		offsets[i] = x
		x += c.Width + t.ColumnGap
	}
	return offsets
}

// tableWidth spans from the first column's left edge to the last's right edge.
func (t Theme) tableWidth() float64 {
	offsets := t.columnOffsets()
	last := len(t.Columns) - 1
	return offsets[last] + t.Columns[last].Width - t.Margin
}

// pageBreakAt is the y past which no row may start.
func (t Theme) pageBreakAt() float64 {
	return t.PageHeight - t.FooterReserve
}
