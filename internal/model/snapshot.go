package model

// ProcessInfo describes one process holding memory on a device.
type ProcessInfo struct {
	Name     string
	MemMiB   int
	User     string
	Lifetime string // elapsed time in ps etime form, e.g. "02:41:05"
	Command  string
}

// DeviceSnapshot is one device's state at a sampling instant.
type DeviceSnapshot struct {
	Name        string
	TotalMemMiB int
	UsedMemMiB  int
	FanPercent  int // 0-100
	TempC       float64
	MaxTempC    float64
	PowerW      float64
	PowerLimitW float64
	Utilization int // percent 0-100
	Processes   map[int32]ProcessInfo
}

// SnapshotSet holds one snapshot per device, indexed by the dense
// zero-based device index. A set is never mutated after publication;
// each poll builds a fresh one.
type SnapshotSet []DeviceSnapshot
