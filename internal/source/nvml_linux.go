//go:build linux

package source

import (
	"context"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/model"
)

// NVMLSource reads telemetry from the driver library directly, avoiding
// a subprocess per poll. Linux only; other platforms get the stub.
type NVMLSource struct {
	log  *zap.Logger
	insp inspector
}

// NewNVMLSource initializes NVML. Callers must Close when done.
func NewNVMLSource(log *zap.Logger) (*NVMLSource, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("%w: nvml init: %s", ErrFetch, nvml.ErrorString(ret))
	}
	return &NVMLSource{log: log, insp: hostInspector{}}, nil
}

func (s *NVMLSource) Snapshot(ctx context.Context) (model.SnapshotSet, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("%w: device count: %s", ErrFetch, nvml.ErrorString(ret))
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, ErrNoDevices)
	}

	set := make(model.SnapshotSet, 0, count)
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
		default:
		}
		snap, err := s.readDevice(ctx, i)
		if err != nil {
			return nil, err
		}
		set = append(set, snap)
	}
	return set, nil
}

func (s *NVMLSource) readDevice(ctx context.Context, index int) (model.DeviceSnapshot, error) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return model.DeviceSnapshot{}, fmt.Errorf("%w: device %d handle: %s",
			ErrFetch, index, nvml.ErrorString(ret))
	}

	var snap model.DeviceSnapshot
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		snap.Name = name
	}
	if mem, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
		snap.TotalMemMiB = int(mem.Total / (1024 * 1024))
		snap.UsedMemMiB = int(mem.Used / (1024 * 1024))
	}
	if fan, ret := device.GetFanSpeed(); ret == nvml.SUCCESS {
		snap.FanPercent = int(fan)
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		snap.TempC = float64(temp)
	}
	if maxTemp, ret := device.GetTemperatureThreshold(nvml.TEMPERATURE_THRESHOLD_GPU_MAX); ret == nvml.SUCCESS {
		snap.MaxTempC = float64(maxTemp)
	}
	if power, ret := device.GetPowerUsage(); ret == nvml.SUCCESS {
		snap.PowerW = float64(power) / 1000 // mW to W
	}
	if limit, ret := device.GetPowerManagementLimit(); ret == nvml.SUCCESS {
		snap.PowerLimitW = float64(limit) / 1000
	}
	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		snap.Utilization = int(util.Gpu)
	}

	snap.Processes = make(map[int32]model.ProcessInfo)
	procs, ret := device.GetComputeRunningProcesses()
	if ret != nvml.SUCCESS {
		return snap, nil
	}
	for _, proc := range procs {
		pid := int32(proc.Pid)
		user, command, lifetime, err := s.insp.inspect(ctx, pid)
		if err != nil {
			s.log.Warn("dropping process entry",
				zap.Int32("pid", pid),
				zap.Int("device", index),
				zap.Error(err))
			continue
		}
		snap.Processes[pid] = model.ProcessInfo{
			Name:     command,
			MemMiB:   int(proc.UsedGpuMemory / (1024 * 1024)),
			User:     user,
			Lifetime: lifetime,
			Command:  command,
		}
	}
	return snap, nil
}

// Close shuts NVML down.
func (s *NVMLSource) Close() error {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return fmt.Errorf("nvml shutdown: %s", nvml.ErrorString(ret))
	}
	return nil
}
