// Package render turns device snapshots into card content for the grid.
// The percent, severity, and bar-fill math is plain arithmetic so it can
// be tested without a terminal.
package render

import (
	"errors"
	"fmt"
)

// ErrZeroDenominator is returned when a percent cannot be derived
// because the upstream total is zero.
var ErrZeroDenominator = errors.New("zero denominator")

// Severity bands a percentage for coloring.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Percent returns floor(100*used/total). Values above 100 are passed
// through; inconsistent upstream readings are a display concern, not a
// fault here.
func Percent(used, total float64) (int, error) {
	if total == 0 {
		return 0, ErrZeroDenominator
	}
	return int(100 * used / total), nil
}

// Classify maps a percentage to a severity band. Total on all ints:
// below 33 is low, 33 up to but excluding 66 is medium, 66 and above
// is high.
func Classify(percent int) Severity {
	switch {
	case percent < 33:
		return SeverityLow
	case percent < 66:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// BarFill returns how many of width segments are filled at percent.
// The result is clamped to [0, width].
func BarFill(width, percent int) int {
	if width <= 0 {
		return 0
	}
	filled := width * percent / 100
	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

// gauge is one labeled metric ready for drawing.
type gauge struct {
	label   string
	percent int
	err     error // ErrZeroDenominator renders as n/a with no bar
}

// deviceHeader formats the title line shared by both views.
func deviceHeader(index int, name string) string {
	return fmt.Sprintf(" %d: %s ", index, name)
}
