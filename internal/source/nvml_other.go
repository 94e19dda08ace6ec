//go:build !linux

package source

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/model"
)

// ErrNVMLUnsupported is returned on platforms without NVML support.
var ErrNVMLUnsupported = errors.New("nvml source requires linux")

// NVMLSource is unavailable off linux; use the nvidia-smi source.
type NVMLSource struct{}

func NewNVMLSource(_ *zap.Logger) (*NVMLSource, error) {
	return nil, ErrNVMLUnsupported
}

func (s *NVMLSource) Snapshot(_ context.Context) (model.SnapshotSet, error) {
	return nil, ErrNVMLUnsupported
}

func (s *NVMLSource) Close() error { return nil }
