package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gpudeck/gpudeck/internal/model"
)

// placeholder shown when a card cannot fit its process rows.
const tooSmallMsg = "Expand terminal - currently too small ..."

// ProcessList renders the per-device process table: a header line with
// the device name, then one line per process.
type ProcessList struct{}

func (ProcessList) Name() string { return "processes" }

func (ProcessList) Render(index int, snap model.DeviceSnapshot, cell Cell) []string {
	header := titleStyle.Render(deviceHeader(index, truncate(snap.Name, cell.Width-2)))

	// One line per process plus the header must fit the cell; degrade
	// to a placeholder rather than overflow the card.
	if len(snap.Processes)+1 > cell.Height {
		return []string{truncate(tooSmallMsg, cell.Width)}
	}

	pids := make([]int32, 0, len(snap.Processes))
	for pid := range snap.Processes {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	lines := []string{header}
	pad := strings.Repeat(" ", indent)
	for _, pid := range pids {
		p := snap.Processes[pid]
		row := fmt.Sprintf("%s: %d %s %s %d", p.User, pid, p.Command, p.Lifetime, p.MemMiB)
		lines = append(lines, pad+truncate(row, cell.Width-indent))
	}
	return lines
}
