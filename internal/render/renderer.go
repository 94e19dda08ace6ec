package render

import "github.com/gpudeck/gpudeck/internal/model"

// Cell is the drawable interior of one card, in character cells.
type Cell struct {
	Width  int
	Height int
}

// indent is the left margin for gauge and process lines inside a card.
const indent = 4

// barMargin is the fixed right margin reserved beside a gauge bar.
const barMargin = 4

// A ViewRenderer draws one device's snapshot into one cell. Render
// returns at most cell.Height lines, each at most cell.Width wide.
type ViewRenderer interface {
	Name() string
	Render(index int, snap model.DeviceSnapshot, cell Cell) []string
}

// truncate shortens s to fit max display cells, marking the cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(r[:max-1]) + "…"
}
