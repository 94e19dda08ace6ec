package source

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// inspector resolves the owner, command, and lifetime of a pid. Split
// out so sources can be tested without a live process table.
type inspector interface {
	inspect(ctx context.Context, pid int32) (user, command, lifetime string, err error)
}

// hostInspector reads the local process table.
type hostInspector struct{}

func (hostInspector) inspect(ctx context.Context, pid int32) (string, string, string, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", "", "", err
	}
	user, err := p.UsernameWithContext(ctx)
	if err != nil {
		return "", "", "", err
	}
	command, err := p.NameWithContext(ctx)
	if err != nil {
		return "", "", "", err
	}
	createdMs, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return "", "", "", err
	}
	elapsed := time.Since(time.UnixMilli(createdMs))
	return user, command, formatEtime(elapsed), nil
}

// formatEtime renders a duration the way ps prints etime:
// MM:SS, HH:MM:SS, or D-HH:MM:SS once the process is a day old.
func formatEtime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	mins := total % 3600 / 60
	secs := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	default:
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
}
