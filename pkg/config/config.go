// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/restream/pkg/stream"
	"github.com/user/restream/pkg/streamer"
)

// Config represents the full configuration for restream.
type Config struct {
	// Output
	Output  string `yaml:"output"`  // file path, or "-" for stdout
	Connect string `yaml:"connect"` // host:port TCP sink; overrides output when set

	// Pipeline
	FPS        float64 `yaml:"fps"`
	Monochrome bool    `yaml:"monochrome"`
	BlockSize  int     `yaml:"block_size"` // 0 = one effective frame
	Compress   string  `yaml:"compress"`   // lz4, zstd or none

	// Sink
	WriteTimeoutMs int `yaml:"write_timeout_ms"`

	// Device override; when path is empty the device is probed.
	Device DeviceConfig `yaml:"device"`

	// Debug
	DumpDir   string `yaml:"dump_dir"`
	DumpEvery int    `yaml:"dump_every"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DeviceConfig overrides the probed framebuffer region.
type DeviceConfig struct {
	Path          string `yaml:"path"`
	Offset        int64  `yaml:"offset"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	BytesPerPixel int    `yaml:"bytes_per_pixel"`
}

// Region converts the override to a stream.Region.
func (d DeviceConfig) Region() stream.Region {
	return stream.Region{
		Path:          d.Path,
		Offset:        d.Offset,
		Width:         d.Width,
		Height:        d.Height,
		BytesPerPixel: d.BytesPerPixel,
	}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Output:         "-",
		FPS:            10,
		Monochrome:     true,
		Compress:       "lz4",
		WriteTimeoutMs: 3000,
		DumpEvery:      30,
		LogLevel:       "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks settings that cannot be caught later with useful context.
func (c Config) Validate() error {
	switch c.Compress {
	case "lz4", "zstd", "none":
	default:
		return fmt.Errorf("unsupported compressor %q (lz4, zstd or none)", c.Compress)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %g", c.FPS)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("invalid block size %d", c.BlockSize)
	}
	return nil
}

// ToStreamerConfig converts Config to streamer.Config for a resolved region.
func (c Config) ToStreamerConfig(region stream.Region) streamer.Config {
	return streamer.Config{
		Region:     region,
		FPS:        c.FPS,
		Monochrome: c.Monochrome,
		BlockSize:  c.BlockSize,
		DumpEvery:  c.DumpEvery,
	}
}
