// Package main provides the CLI entry point for restream.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/restream/pkg/adapters/filesink"
	"github.com/user/restream/pkg/adapters/framedump"
	"github.com/user/restream/pkg/adapters/logger"
	"github.com/user/restream/pkg/adapters/lz4compressor"
	"github.com/user/restream/pkg/adapters/nulldump"
	"github.com/user/restream/pkg/adapters/oscmd"
	"github.com/user/restream/pkg/adapters/osfilesystem"
	"github.com/user/restream/pkg/adapters/rawcompressor"
	"github.com/user/restream/pkg/adapters/rmdevice"
	"github.com/user/restream/pkg/adapters/sysclock"
	"github.com/user/restream/pkg/adapters/tcpsink"
	"github.com/user/restream/pkg/adapters/zstdcompressor"
	"github.com/user/restream/pkg/config"
	"github.com/user/restream/pkg/ports"
	"github.com/user/restream/pkg/stream"
	"github.com/user/restream/pkg/streamer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "restream",
		Usage:   l10n.T("Stream the reMarkable framebuffer over TCP or to a file"),
		Version: version,
		Commands: []*cli.Command{
			streamCommand(),
			probeCommand(),
		},
		DefaultCommand: "stream",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "restream: %v\n", err)
		os.Exit(1)
	}
}

func streamCommand() *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: l10n.T("Capture the screen and stream it (default command)"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Path to a YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Output file path, or - for stdout"),
			},
			&cli.StringFlag{
				Name:  "connect",
				Usage: l10n.T("Stream to host:port over TCP instead of a file"),
			},
			&cli.Float64Flag{
				Name:  "fps",
				Usage: l10n.T("Target frame rate"),
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: l10n.T("Send raw pixels instead of packed 1-bit monochrome"),
			},
			&cli.IntFlag{
				Name:  "block-size",
				Usage: l10n.T("Delta encoding block size in bytes (0 = one frame)"),
			},
			&cli.StringFlag{
				Name:  "compress",
				Usage: l10n.T("Compression codec (lz4, zstd or none)"),
			},
			&cli.StringFlag{
				Name:  "dump-dir",
				Usage: l10n.T("Directory for debug frame dumps"),
			},
			&cli.IntFlag{
				Name:  "dump-every",
				Usage: l10n.T("Dump every Nth frame"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Action: runStream,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: l10n.T("Detect the device and print its framebuffer region"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
		},
		Action: runProbe,
	}
}

// buildConfig loads the configuration file (when given) and layers the
// command-line flags on top. Only flags the user actually set override
// the file.
func buildConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.Defaults()
	}

	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("connect") {
		cfg.Connect = c.String("connect")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("raw") {
		cfg.Monochrome = !c.Bool("raw")
	}
	if c.IsSet("block-size") {
		cfg.BlockSize = c.Int("block-size")
	}
	if c.IsSet("compress") {
		cfg.Compress = c.String("compress")
	}
	if c.IsSet("dump-dir") {
		cfg.DumpDir = c.String("dump-dir")
	}
	if c.IsSet("dump-every") {
		cfg.DumpEvery = c.Int("dump-every")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

func runStream(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	region, err := resolveRegion(cfg, log)
	if err != nil {
		return err
	}

	handle, err := os.Open(region.Path)
	if err != nil {
		return fmt.Errorf("open capture source %s: %w", region.Path, err)
	}
	defer handle.Close()

	var sink ports.Sink
	if cfg.Connect != "" {
		sink = tcpsink.New(cfg.Connect, time.Duration(cfg.WriteTimeoutMs)*time.Millisecond)
	} else {
		sink = filesink.New(cfg.Output)
	}

	var dump ports.FrameDump
	if cfg.DumpDir != "" {
		dump = framedump.New(cfg.DumpDir, fs)
	} else {
		dump = nulldump.New()
	}

	st := streamer.New(
		buildCompressor(cfg, region),
		sink,
		dump,
		log,
		sysclock.New(),
	)
	return st.Run(ctx, handle, cfg.ToStreamerConfig(region))
}

func runProbe(c *cli.Context) error {
	log := logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	prober := rmdevice.NewProber(osfilesystem.New(), oscmd.New(), log)

	gen, err := prober.Detect()
	if err != nil {
		return err
	}
	region, err := prober.Region()
	if err != nil {
		return err
	}

	fmt.Printf("device: %s\n", gen)
	fmt.Printf("path: %s\n", region.Path)
	fmt.Printf("offset: %d\n", region.Offset)
	fmt.Printf("resolution: %dx%d\n", region.Width, region.Height)
	fmt.Printf("bytes per pixel: %d\n", region.BytesPerPixel)
	return nil
}

// resolveRegion uses the configured device override when present and
// otherwise probes the hardware.
func resolveRegion(cfg config.Config, log ports.Logger) (stream.Region, error) {
	if cfg.Device.Path != "" {
		region := cfg.Device.Region()
		if err := region.Validate(); err != nil {
			return stream.Region{}, fmt.Errorf("device override: %w", err)
		}
		log.Debug("Using configured region %s", region.Path)
		return region, nil
	}
	return rmdevice.NewProber(osfilesystem.New(), oscmd.New(), log).Region()
}

// buildCompressor selects the codec. The LZ4 frame block size is matched
// to the effective frame size so each compressed block holds whole frames.
func buildCompressor(cfg config.Config, region stream.Region) ports.Compressor {
	switch cfg.Compress {
	case "zstd":
		return zstdcompressor.New()
	case "none":
		return rawcompressor.New()
	default:
		frameBytes := region.FrameSize()
		if cfg.Monochrome {
			frameBytes = region.Width * region.Height / 8
		}
		return lz4compressor.New(frameBytes)
	}
}
