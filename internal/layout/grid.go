// Package layout maps a device count onto a terminal-sized grid of cards.
package layout

import (
	"errors"
	"fmt"
)

// Minimum card dimensions. A card smaller than this cannot hold the
// gauge stack (header + four label/bar pairs + border).
const (
	MinCardHeight = 11
	MinCardWidth  = 11
)

// maxSide caps the grid at 3x3; more than nine devices is rejected.
const maxSide = 3

var (
	ErrNoDevices        = errors.New("no devices to lay out")
	ErrTooManyDevices   = errors.New("more than 9 devices is unsupported")
	ErrTerminalTooSmall = errors.New("terminal too small")
)

// Grid is a square arrangement of equally sized cards. Cards are
// addressed row-major by device index.
type Grid struct {
	Side       int // cards per row and per column
	CellHeight int
	CellWidth  int

	devices int
}

// New computes the smallest square grid that fits numDevices cards in a
// rows x cols terminal. The side is the smallest G with G*G >= numDevices.
func New(numDevices, rows, cols int) (Grid, error) {
	if numDevices < 1 {
		return Grid{}, ErrNoDevices
	}
	if numDevices > maxSide*maxSide {
		return Grid{}, fmt.Errorf("%w: have %d", ErrTooManyDevices, numDevices)
	}

	side := 1
	for side*side < numDevices {
		side++
	}

	g := Grid{
		Side:       side,
		CellHeight: rows/side - 1,
		CellWidth:  cols/side - 1,
		devices:    numDevices,
	}
	if g.CellHeight <= MinCardHeight {
		return Grid{}, fmt.Errorf("%w: card height %d, need > %d rows",
			ErrTerminalTooSmall, g.CellHeight, MinCardHeight)
	}
	if g.CellWidth <= MinCardWidth {
		return Grid{}, fmt.Errorf("%w: card width %d, need > %d cols",
			ErrTerminalTooSmall, g.CellWidth, MinCardWidth)
	}
	return g, nil
}

// Cell returns the row-major grid position for a device index.
func (g Grid) Cell(index int) (row, col int) {
	return index / g.Side, index % g.Side
}

// NumDevices returns the device count the grid was built for.
func (g Grid) NumDevices() int { return g.devices }

// Row returns the device indices occupying grid row r, in column order.
func (g Grid) Row(r int) []int {
	var idx []int
	for c := 0; c < g.Side; c++ {
		i := r*g.Side + c
		if i < g.devices {
			idx = append(idx, i)
		}
	}
	return idx
}

// Rows returns the number of grid rows that actually hold a card.
func (g Grid) Rows() int {
	return (g.devices + g.Side - 1) / g.Side
}
