package render

import (
	"fmt"
	"strings"

	"github.com/gpudeck/gpudeck/internal/model"
)

// Overview renders the four-gauge card: memory, fan, temperature, power,
// in that fixed vertical order, each as a colored label plus a bar.
type Overview struct{}

func (Overview) Name() string { return "overview" }

func (Overview) Render(index int, snap model.DeviceSnapshot, cell Cell) []string {
	header := titleStyle.Render(deviceHeader(index, truncate(snap.Name, cell.Width-12))) +
		mutedStyle.Render(fmt.Sprintf("util %d%%", snap.Utilization))
	lines := []string{header}

	usable := cell.Width - indent - barMargin
	for _, g := range buildGauges(snap) {
		pad := strings.Repeat(" ", indent)
		if g.err != nil {
			lines = append(lines, pad+mutedStyle.Render(g.label))
			lines = append(lines, "")
			continue
		}
		sev := Classify(g.percent)
		lines = append(lines, pad+SeverityStyle(sev).Render(g.label))
		lines = append(lines, pad+bar(usable, g.percent, sev))
	}
	return clip(lines, cell)
}

// buildGauges derives the label and percent for each metric. A zero
// denominator marks the gauge as n/a instead of failing the redraw.
func buildGauges(snap model.DeviceSnapshot) []gauge {
	memPct, memErr := Percent(float64(snap.UsedMemMiB), float64(snap.TotalMemMiB))
	tempPct, tempErr := Percent(snap.TempC, snap.MaxTempC)
	pwrPct, pwrErr := Percent(snap.PowerW, snap.PowerLimitW)

	return []gauge{
		{
			label:   naLabel(memErr, fmt.Sprintf("Mem %d/%d MiB", snap.UsedMemMiB, snap.TotalMemMiB), "Mem"),
			percent: memPct,
			err:     memErr,
		},
		{
			label:   fmt.Sprintf("Fan %d %%", snap.FanPercent),
			percent: snap.FanPercent,
		},
		{
			label:   naLabel(tempErr, fmt.Sprintf("Tmp %d/%d C", int(snap.TempC), int(snap.MaxTempC)), "Tmp"),
			percent: tempPct,
			err:     tempErr,
		},
		{
			label:   naLabel(pwrErr, fmt.Sprintf("Pwr %d/%d W", int(snap.PowerW), int(snap.PowerLimitW)), "Pwr"),
			percent: pwrPct,
			err:     pwrErr,
		},
	}
}

func naLabel(err error, ok, prefix string) string {
	if err != nil {
		return prefix + " n/a"
	}
	return ok
}

// bar draws a bracketed gauge: filled segments in reverse video, the
// remainder blank.
func bar(usable, percent int, sev Severity) string {
	if usable < 2 {
		return ""
	}
	inner := usable - 2 // brackets
	filled := BarFill(inner, percent)
	return "[" +
		barStyle(sev).Render(strings.Repeat(" ", filled)) +
		strings.Repeat(" ", inner-filled) +
		"]"
}

// clip bounds the rendered lines to the cell.
func clip(lines []string, cell Cell) []string {
	if len(lines) > cell.Height {
		lines = lines[:cell.Height]
	}
	return lines
}
