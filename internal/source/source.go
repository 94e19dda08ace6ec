// Package source produces telemetry snapshots for all detected devices.
//
// Two implementations share the contract: NVSMISource shells out to the
// vendor diagnostics tool and parses its XML report, NVMLSource reads
// the driver library directly. Both resolve per-pid process details
// through the host process table.
package source

import (
	"context"
	"errors"

	"github.com/gpudeck/gpudeck/internal/model"
)

// ErrFetch marks a failure to obtain or parse device telemetry. Wrapped
// errors carry the cause.
var ErrFetch = errors.New("telemetry fetch failed")

// ErrNoDevices is returned when the source reports zero devices.
var ErrNoDevices = errors.New("no devices reported")

// A SnapshotSource produces one SnapshotSet per call. Implementations
// may block for the duration of an external call; they must honor ctx
// cancellation between devices.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (model.SnapshotSet, error)
}
