package cli

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, config.SourceNVSMI, cfg.Source)
	assert.Equal(t, 0, cfg.CardWidth)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Set("interval", "250ms")
	viper.Set("source", config.SourceDemo)
	viper.Set("width", 48)
	t.Cleanup(func() {
		viper.Set("interval", time.Second)
		viper.Set("source", config.SourceNVSMI)
		viper.Set("width", 0)
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, config.SourceDemo, cfg.Source)
	assert.Equal(t, 48, cfg.CardWidth)
}

func TestLoadConfig_RejectsBadSource(t *testing.T) {
	viper.Set("source", "rocm")
	t.Cleanup(func() { viper.Set("source", config.SourceNVSMI) })

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestBuildSource_Demo(t *testing.T) {
	cfg := config.Default()
	cfg.Source = config.SourceDemo

	src, cleanup, err := buildSource(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, cleanup)
	require.NotNil(t, src)

	set, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, set, 2)
}

func TestDemoSource_StableCardinality(t *testing.T) {
	src := demoSource()
	a, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	b, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b))
}
