package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default column geometry must keep the last column inside the right
// margin: lastX + lastWidth <= pageWidth - margin. This is checked once at
// renderer construction, not per render.
func TestDefaultTheme_ColumnGeometryInvariant(t *testing.T) {
	theme := DefaultTheme()
	require.NoError(t, theme.Validate())

	offsets := theme.columnOffsets()
	last := len(theme.Columns) - 1
	edge := offsets[last] + theme.Columns[last].Width

	assert.InDelta(t, 546.0, edge, 0.001, "right edge of the Total column")
	assert.LessOrEqual(t, edge, theme.PageWidth-theme.Margin)
}

func TestTheme_ValidateRejectsWideColumns(t *testing.T) {
	theme := DefaultTheme()
	theme.Columns[0].Width += 20 // pushes the last edge past 555.28

	err := theme.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last column")
}

func TestTheme_ValidateRejectsBrokenGeometry(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Theme)
	}{
		{"zero page width", func(th *Theme) { th.PageWidth = 0 }},
		{"margin wider than page", func(th *Theme) { th.Margin = 400 }},
		{"no columns", func(th *Theme) { th.Columns = nil }},
		{"zero-width column", func(th *Theme) { th.Columns[2].Width = 0 }},
		{"zero line height", func(th *Theme) { th.LineHeight = 0 }},
		{"footer reserve taller than page", func(th *Theme) { th.FooterReserve = 900 }},
		{"zero billing box", func(th *Theme) { th.BillingBoxHeight = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			theme := DefaultTheme()
			tc.mutate(&theme)
			assert.Error(t, theme.Validate())
		})
	}
}

func TestTheme_ColumnOffsetsAccumulate(t *testing.T) {
	theme := DefaultTheme()
	offsets := theme.columnOffsets()

	require.Len(t, offsets, len(theme.Columns))
	assert.Equal(t, theme.Margin, offsets[0])
	for i := 1; i < len(offsets); i++ {
		want := offsets[i-1] + theme.Columns[i-1].Width + theme.ColumnGap
		assert.Equal(t, want, offsets[i], "offset of column %d", i)
	}
}

func TestTheme_ContentWidth(t *testing.T) {
	theme := DefaultTheme()
	assert.InDelta(t, 515.28, theme.ContentWidth(), 0.001)
}
