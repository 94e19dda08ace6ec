package source

import (
	"context"
	"sync"

	"github.com/gpudeck/gpudeck/internal/model"
)

// StaticSource serves a scripted snapshot set. It backs tests and the
// --demo mode, where the dashboard runs without hardware.
type StaticSource struct {
	mu    sync.Mutex
	set   model.SnapshotSet
	err   error
	calls int
}

func NewStaticSource(set model.SnapshotSet) *StaticSource {
	return &StaticSource{set: set}
}

func (s *StaticSource) Snapshot(_ context.Context) (model.SnapshotSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	// Serve a copy so callers can never alias the scripted set.
	out := make(model.SnapshotSet, len(s.set))
	copy(out, s.set)
	return out, nil
}

// SetError makes subsequent Snapshot calls fail with err (nil clears).
func (s *StaticSource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetSet replaces the scripted snapshot set.
func (s *StaticSource) SetSet(set model.SnapshotSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
}

// Calls reports how many snapshots have been requested.
func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
