package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/model"
)

// NVSMISource builds snapshots from `nvidia-smi -q -x`, the structured
// report mode of the vendor diagnostics tool.
type NVSMISource struct {
	log  *zap.Logger
	run  func(ctx context.Context) ([]byte, error)
	insp inspector
}

func NewNVSMISource(log *zap.Logger) *NVSMISource {
	return &NVSMISource{
		log: log,
		run: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "nvidia-smi", "-q", "-x").Output()
		},
		insp: hostInspector{},
	}
}

// XML shapes for the parts of the report we read. Newer driver releases
// renamed power_readings to gpu_power_readings; both are accepted.
type smiLog struct {
	XMLName xml.Name `xml:"nvidia_smi_log"`
	GPUs    []smiGPU `xml:"gpu"`
}

type smiGPU struct {
	ProductName      string         `xml:"product_name"`
	FanSpeed         string         `xml:"fan_speed"`
	Memory           smiMemory      `xml:"fb_memory_usage"`
	Utilization      smiUtilization `xml:"utilization"`
	Temperature      smiTemperature `xml:"temperature"`
	PowerReadings    *smiPower      `xml:"power_readings"`
	GPUPowerReadings *smiPower      `xml:"gpu_power_readings"`
	Processes        smiProcesses   `xml:"processes"`
}

type smiMemory struct {
	Total string `xml:"total"`
	Used  string `xml:"used"`
}

type smiUtilization struct {
	GPUUtil string `xml:"gpu_util"`
}

type smiTemperature struct {
	GPUTemp    string `xml:"gpu_temp"`
	GPUTempMax string `xml:"gpu_temp_max_threshold"`
}

type smiPower struct {
	Draw  string `xml:"power_draw"`
	Limit string `xml:"power_limit"`
}

type smiProcesses struct {
	Entries []smiProcess `xml:"process_info"`
}

type smiProcess struct {
	PID        int32  `xml:"pid"`
	Name       string `xml:"process_name"`
	UsedMemory string `xml:"used_memory"`
}

func (s *NVSMISource) Snapshot(ctx context.Context) (model.SnapshotSet, error) {
	out, err := s.run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: nvidia-smi: %v", ErrFetch, err)
	}
	return s.parse(ctx, out)
}

func (s *NVSMISource) parse(ctx context.Context, report []byte) (model.SnapshotSet, error) {
	var log smiLog
	if err := xml.Unmarshal(report, &log); err != nil {
		return nil, fmt.Errorf("%w: unparsable report: %v", ErrFetch, err)
	}
	if len(log.GPUs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, ErrNoDevices)
	}

	set := make(model.SnapshotSet, 0, len(log.GPUs))
	for i, gpu := range log.GPUs {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
		default:
		}

		power := gpu.PowerReadings
		if power == nil {
			power = gpu.GPUPowerReadings
		}
		if power == nil {
			power = &smiPower{}
		}

		snap := model.DeviceSnapshot{
			Name:        strings.TrimSpace(gpu.ProductName),
			TotalMemMiB: smiInt(gpu.Memory.Total),
			UsedMemMiB:  smiInt(gpu.Memory.Used),
			FanPercent:  smiInt(gpu.FanSpeed),
			TempC:       smiFloat(gpu.Temperature.GPUTemp),
			MaxTempC:    smiFloat(gpu.Temperature.GPUTempMax),
			PowerW:      smiFloat(power.Draw),
			PowerLimitW: smiFloat(power.Limit),
			Utilization: smiInt(gpu.Utilization.GPUUtil),
			Processes:   make(map[int32]model.ProcessInfo, len(gpu.Processes.Entries)),
		}

		for _, proc := range gpu.Processes.Entries {
			user, command, lifetime, err := s.insp.inspect(ctx, proc.PID)
			if err != nil {
				// Process may have exited between the report and the
				// lookup; drop the entry and surface a warning.
				s.log.Warn("dropping process entry",
					zap.Int32("pid", proc.PID),
					zap.Int("device", i),
					zap.Error(err))
				continue
			}
			snap.Processes[proc.PID] = model.ProcessInfo{
				Name:     baseName(proc.Name),
				MemMiB:   smiInt(proc.UsedMemory),
				User:     user,
				Lifetime: lifetime,
				Command:  command,
			}
		}
		set = append(set, snap)
	}
	return set, nil
}

// smiInt reads the leading integer of a report value like "4096 MiB"
// or "40 %". "N/A" and empty values read as zero.
func smiInt(v string) int {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// smiFloat reads the leading float of a report value like "120.50 W".
func smiFloat(v string) float64 {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return f
}

// baseName strips the path from a reported process binary.
func baseName(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
