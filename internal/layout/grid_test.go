package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SideIsCeilSqrt(t *testing.T) {
	for n := 1; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d devices", n), func(t *testing.T) {
			g, err := New(n, 200, 400)
			require.NoError(t, err)
			assert.Equal(t, int(math.Ceil(math.Sqrt(float64(n)))), g.Side)
		})
	}
}

func TestNew_RowMajorMapping(t *testing.T) {
	for n := 1; n <= 9; n++ {
		g, err := New(n, 200, 400)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			row, col := g.Cell(i)
			assert.Equal(t, i/g.Side, row)
			assert.Equal(t, i%g.Side, col)
		}
	}
}

func TestNew_TooManyDevices(t *testing.T) {
	for _, n := range []int{10, 16, 100} {
		_, err := New(n, 200, 400)
		assert.ErrorIs(t, err, ErrTooManyDevices)
	}
}

func TestNew_NoDevices(t *testing.T) {
	_, err := New(0, 200, 400)
	assert.ErrorIs(t, err, ErrNoDevices)
}

func TestNew_CellDimensions(t *testing.T) {
	// 120x40 terminal with 3 devices: 2x2 grid, 19x59 cards,
	// device 2 in the second row, first column.
	g, err := New(3, 40, 120)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Side)
	assert.Equal(t, 19, g.CellHeight)
	assert.Equal(t, 59, g.CellWidth)

	row, col := g.Cell(2)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
}

func TestNew_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"short", 12, 200},        // height 11 is not > MinCardHeight
		{"narrow", 200, 12},       // width 11 is not > MinCardWidth
		{"both", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(1, tt.rows, tt.cols)
			assert.ErrorIs(t, err, ErrTerminalTooSmall)
		})
	}
}

func TestGrid_RowsAndRow(t *testing.T) {
	g, err := New(3, 40, 120)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, []int{0, 1}, g.Row(0))
	assert.Equal(t, []int{2}, g.Row(1))
}

func TestGrid_MappingStableAcrossResize(t *testing.T) {
	a, err := New(4, 40, 120)
	require.NoError(t, err)
	b, err := New(4, 60, 200)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		ar, ac := a.Cell(i)
		br, bc := b.Cell(i)
		assert.Equal(t, ar, br)
		assert.Equal(t, ac, bc)
	}
}
