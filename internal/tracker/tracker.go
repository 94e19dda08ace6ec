// Package tracker owns the polling cadence and the latest snapshot set.
//
// The Tracker is the single writer of the snapshot buffer; publication
// replaces the whole set, so readers see either the previous or the new
// set, never a mix. The render loop reads Current once per tick.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gpudeck/gpudeck/internal/model"
	"github.com/gpudeck/gpudeck/internal/source"
)

// ErrDeviceCountChanged is returned when a poll reports a different
// number of devices than the session was constructed with. The set is
// rejected and the previous buffer kept; hot-plug is not supported.
var ErrDeviceCountChanged = errors.New("device count changed since construction")

// Tracker holds the most recently published SnapshotSet. The device
// count is fixed by the construction-time poll.
type Tracker struct {
	src        source.SnapshotSource
	numDevices int

	mu      sync.RWMutex
	current model.SnapshotSet
}

// New performs the first poll synchronously and fixes the device count.
// A fetch failure here is fatal: the dashboard must not start.
func New(ctx context.Context, src source.SnapshotSource) (*Tracker, error) {
	set, err := src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %w", source.ErrFetch, source.ErrNoDevices)
	}
	return &Tracker{
		src:        src,
		numDevices: len(set),
		current:    set,
	}, nil
}

// Poll fetches a fresh set and publishes it atomically. On error the
// previous buffer is left untouched.
func (t *Tracker) Poll(ctx context.Context) error {
	set, err := t.src.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(set) != t.numDevices {
		return fmt.Errorf("%w: have %d, want %d", ErrDeviceCountChanged, len(set), t.numDevices)
	}
	t.mu.Lock()
	t.current = set
	t.mu.Unlock()
	return nil
}

// Current returns the most recently published set.
func (t *Tracker) Current() model.SnapshotSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// NumDevices returns the session device count.
func (t *Tracker) NumDevices() int { return t.numDevices }
