// Package config carries runtime options for gpudeck.
package config

import (
	"fmt"
	"time"
)

// Telemetry source selection.
const (
	SourceNVSMI = "nvsmi" // nvidia-smi -q -x subprocess
	SourceNVML  = "nvml"  // driver library, linux only
	SourceDemo  = "demo"  // synthetic devices, no hardware needed
)

// Config carries runtime options for the dashboard.
type Config struct {
	Interval  time.Duration // polling cadence
	Source    string        // nvsmi | nvml | demo
	CardWidth int           // visual card width cap, 0 = fit terminal
	LogFile   string        // empty disables logging
	Debug     bool          // log at debug level
}

func Default() Config {
	return Config{
		Interval: time.Second,
		Source:   SourceNVSMI,
	}
}

// minUsableCardWidth mirrors the layout minimum; a cap below it could
// never produce a valid card.
const minUsableCardWidth = 12

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %s", c.Interval)
	}
	switch c.Source {
	case SourceNVSMI, SourceNVML, SourceDemo:
	default:
		return fmt.Errorf("unknown source %q (want %s, %s, or %s)",
			c.Source, SourceNVSMI, SourceNVML, SourceDemo)
	}
	if c.CardWidth != 0 && c.CardWidth < minUsableCardWidth {
		return fmt.Errorf("card width %d is below the minimum of %d",
			c.CardWidth, minUsableCardWidth)
	}
	return nil
}
