package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleReport = `<?xml version="1.0" ?>
<nvidia_smi_log>
	<attached_gpus>2</attached_gpus>
	<gpu id="00000000:01:00.0">
		<product_name>NVIDIA GeForce RTX 3090</product_name>
		<fan_speed>40 %</fan_speed>
		<fb_memory_usage>
			<total>8192 MiB</total>
			<used>4096 MiB</used>
			<free>4096 MiB</free>
		</fb_memory_usage>
		<utilization>
			<gpu_util>53 %</gpu_util>
			<memory_util>21 %</memory_util>
		</utilization>
		<temperature>
			<gpu_temp>65 C</gpu_temp>
			<gpu_temp_max_threshold>90 C</gpu_temp_max_threshold>
		</temperature>
		<power_readings>
			<power_draw>120.50 W</power_draw>
			<power_limit>250.00 W</power_limit>
		</power_readings>
		<processes>
			<process_info>
				<pid>4321</pid>
				<process_name>/usr/bin/python</process_name>
				<used_memory>512 MiB</used_memory>
			</process_info>
			<process_info>
				<pid>9999</pid>
				<process_name>ghost</process_name>
				<used_memory>64 MiB</used_memory>
			</process_info>
		</processes>
	</gpu>
	<gpu id="00000000:02:00.0">
		<product_name>NVIDIA GeForce RTX 3090</product_name>
		<fan_speed>N/A</fan_speed>
		<fb_memory_usage>
			<total>8192 MiB</total>
			<used>128 MiB</used>
			<free>8064 MiB</free>
		</fb_memory_usage>
		<utilization>
			<gpu_util>0 %</gpu_util>
		</utilization>
		<temperature>
			<gpu_temp>31 C</gpu_temp>
			<gpu_temp_max_threshold>90 C</gpu_temp_max_threshold>
		</temperature>
		<gpu_power_readings>
			<power_draw>18.20 W</power_draw>
			<power_limit>250.00 W</power_limit>
		</gpu_power_readings>
		<processes>
		</processes>
	</gpu>
</nvidia_smi_log>`

// fakeInspector resolves scripted pids and fails the rest.
type fakeInspector struct{}

func (fakeInspector) inspect(_ context.Context, pid int32) (string, string, string, error) {
	if pid == 4321 {
		return "alice", "python", "02:41:05", nil
	}
	return "", "", "", errors.New("no such process")
}

func newTestSource() *NVSMISource {
	s := NewNVSMISource(zap.NewNop())
	s.insp = fakeInspector{}
	return s
}

func TestNVSMI_ParseReport(t *testing.T) {
	s := newTestSource()
	set, err := s.parse(context.Background(), []byte(sampleReport))
	require.NoError(t, err)
	require.Len(t, set, 2)

	first := set[0]
	assert.Equal(t, "NVIDIA GeForce RTX 3090", first.Name)
	assert.Equal(t, 8192, first.TotalMemMiB)
	assert.Equal(t, 4096, first.UsedMemMiB)
	assert.Equal(t, 40, first.FanPercent)
	assert.Equal(t, 65.0, first.TempC)
	assert.Equal(t, 90.0, first.MaxTempC)
	assert.Equal(t, 120.5, first.PowerW)
	assert.Equal(t, 250.0, first.PowerLimitW)
	assert.Equal(t, 53, first.Utilization)
}

func TestNVSMI_ProcessInspection(t *testing.T) {
	s := newTestSource()
	set, err := s.parse(context.Background(), []byte(sampleReport))
	require.NoError(t, err)

	procs := set[0].Processes
	// pid 9999 failed inspection and was dropped.
	require.Len(t, procs, 1)
	p := procs[4321]
	assert.Equal(t, "python", p.Name) // path stripped
	assert.Equal(t, 512, p.MemMiB)
	assert.Equal(t, "alice", p.User)
	assert.Equal(t, "02:41:05", p.Lifetime)
	assert.Equal(t, "python", p.Command)
}

func TestNVSMI_NewPowerReadingsTag(t *testing.T) {
	s := newTestSource()
	set, err := s.parse(context.Background(), []byte(sampleReport))
	require.NoError(t, err)

	second := set[1]
	assert.Equal(t, 18.2, second.PowerW)
	assert.Equal(t, 250.0, second.PowerLimitW)
	assert.Equal(t, 0, second.FanPercent) // N/A reads as zero
	assert.Empty(t, second.Processes)
}

func TestNVSMI_UnparsableReport(t *testing.T) {
	s := newTestSource()
	_, err := s.parse(context.Background(), []byte("not xml at all"))
	assert.ErrorIs(t, err, ErrFetch)
}

func TestNVSMI_EmptyReport(t *testing.T) {
	s := newTestSource()
	_, err := s.parse(context.Background(), []byte(`<nvidia_smi_log></nvidia_smi_log>`))
	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, ErrNoDevices)
}

func TestNVSMI_RunFailure(t *testing.T) {
	s := newTestSource()
	s.run = func(context.Context) ([]byte, error) {
		return nil, errors.New("executable file not found")
	}
	_, err := s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFormatEtime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "00:42"},
		{9*time.Minute + 5*time.Second, "09:05"},
		{2*time.Hour + 41*time.Minute + 5*time.Second, "02:41:05"},
		{26*time.Hour + 3*time.Minute, "1-02:03:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatEtime(tt.d))
	}
}

func TestSMIValueParsing(t *testing.T) {
	assert.Equal(t, 4096, smiInt("4096 MiB"))
	assert.Equal(t, 40, smiInt("40 %"))
	assert.Equal(t, 0, smiInt("N/A"))
	assert.Equal(t, 0, smiInt(""))
	assert.Equal(t, 120.5, smiFloat("120.50 W"))
	assert.Equal(t, 0.0, smiFloat("N/A"))
	assert.Equal(t, "python", baseName("/usr/bin/python"))
	assert.Equal(t, "ffmpeg", baseName("ffmpeg"))
}
