package cli

import (
	"github.com/gpudeck/gpudeck/internal/model"
	"github.com/gpudeck/gpudeck/internal/source"
)

// demoSource serves two synthetic devices so the dashboard can be
// exercised on machines without GPUs.
func demoSource() *source.StaticSource {
	return source.NewStaticSource(model.SnapshotSet{
		{
			Name:        "Demo GPU 0",
			TotalMemMiB: 8192,
			UsedMemMiB:  4096,
			FanPercent:  40,
			TempC:       65,
			MaxTempC:    90,
			PowerW:      120,
			PowerLimitW: 250,
			Utilization: 53,
			Processes: map[int32]model.ProcessInfo{
				4321: {Name: "python", MemMiB: 2048, User: "alice", Lifetime: "02:41:05", Command: "python"},
				5150: {Name: "ffmpeg", MemMiB: 512, User: "bob", Lifetime: "00:12:33", Command: "ffmpeg"},
			},
		},
		{
			Name:        "Demo GPU 1",
			TotalMemMiB: 8192,
			UsedMemMiB:  512,
			FanPercent:  0,
			TempC:       31,
			MaxTempC:    90,
			PowerW:      18,
			PowerLimitW: 250,
			Utilization: 2,
			Processes:   map[int32]model.ProcessInfo{},
		},
	})
}
