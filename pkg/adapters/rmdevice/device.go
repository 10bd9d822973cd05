// Package rmdevice probes reMarkable tablets for their framebuffer region.
//
// The probe runs once at startup, never on the hot path. Generation 1
// exposes the framebuffer directly at /dev/fb0. Generation 2 draws through
// the xochitl process instead; its framebuffer lives inside xochitl's
// address space and is located by scanning the process's memory map.
package rmdevice

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/restream/pkg/ports"
	"github.com/user/restream/pkg/stream"
)

const machinePath = "/sys/devices/soc0/machine"

// fbHeaderAdjust skips the header bytes preceding the pixel data in
// xochitl's mapped framebuffer region.
const fbHeaderAdjust = 8

// ErrUnknownDevice is returned when the machine name is not a reMarkable.
var ErrUnknownDevice = errors.New("unknown device model")

// Generation identifies a reMarkable hardware generation.
type Generation int

const (
	GenUnknown Generation = iota
	Gen1
	Gen2
)

// String returns the human-readable generation name.
func (g Generation) String() string {
	switch g {
	case Gen1:
		return "reMarkable 1"
	case Gen2:
		return "reMarkable 2"
	default:
		return "unknown device"
	}
}

// Prober detects the device generation and resolves its capture region.
type Prober struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
	logger ports.Logger
}

// NewProber creates a prober reading sysfs/procfs through fs and locating
// processes through runner.
func NewProber(fs ports.FileSystem, runner ports.CommandRunner, logger ports.Logger) *Prober {
	return &Prober{
		fs:     fs,
		runner: runner,
		logger: logger.WithComponent("device"),
	}
}

// Detect identifies the device generation from the SoC machine name.
func (p *Prober) Detect() (Generation, error) {
	data, err := p.fs.ReadFile(machinePath)
	if err != nil {
		return GenUnknown, fmt.Errorf("read machine name: %w", err)
	}
	machine := strings.TrimSpace(string(data))

	switch {
	case strings.HasPrefix(machine, "reMarkable 2"):
		return Gen2, nil
	case strings.HasPrefix(machine, "reMarkable"):
		return Gen1, nil
	default:
		return GenUnknown, fmt.Errorf("%w: %q", ErrUnknownDevice, machine)
	}
}

// Region resolves the framebuffer capture region for the detected device.
func (p *Prober) Region() (stream.Region, error) {
	gen, err := p.Detect()
	if err != nil {
		return stream.Region{}, err
	}
	p.logger.Debug("Detected %s", gen)

	switch gen {
	case Gen1:
		return stream.Region{
			Path:          "/dev/fb0",
			Offset:        0,
			Width:         1408,
			Height:        1872,
			BytesPerPixel: 2,
		}, nil
	case Gen2:
		pid, err := p.xochitlPID()
		if err != nil {
			return stream.Region{}, err
		}
		p.logger.Debug("Found xochitl with pid %d", pid)
		offset, err := p.framebufferOffset(pid)
		if err != nil {
			return stream.Region{}, err
		}
		return stream.Region{
			Path:          fmt.Sprintf("/proc/%d/mem", pid),
			Offset:        offset,
			Width:         1404,
			Height:        1872,
			BytesPerPixel: 1,
		}, nil
	default:
		return stream.Region{}, ErrUnknownDevice
	}
}

// xochitlPID locates the running xochitl process.
func (p *Prober) xochitlPID() (int, error) {
	p.logger.Debug("Locating xochitl process")
	out, err := p.runner.Output("/bin/pidof", "xochitl")
	if err != nil {
		return 0, fmt.Errorf("could not find pid of xochitl, is xochitl running? %w", err)
	}
	// pidof may report several pids; the first is the newest instance.
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return 0, errors.New("could not find pid of xochitl, is xochitl running?")
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("parse xochitl pid %q: %w", fields[0], err)
	}
	return pid, nil
}

// framebufferOffset finds the framebuffer address inside xochitl's memory
// map. The pixel data starts in the mapping directly after the one backed
// by /dev/fb0, plus a fixed header adjustment.
func (p *Prober) framebufferOffset(pid int) (int64, error) {
	mapsPath := fmt.Sprintf("/proc/%d/maps", pid)
	data, err := p.fs.ReadFile(mapsPath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", mapsPath, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	found := false
	for scanner.Scan() {
		line := scanner.Text()
		if found {
			addr, _, ok := strings.Cut(line, "-")
			if !ok {
				return 0, fmt.Errorf("malformed line in %s: %q", mapsPath, line)
			}
			start, err := strconv.ParseInt(addr, 16, 64)
			if err != nil {
				return 0, fmt.Errorf("parse framebuffer address %q: %w", addr, err)
			}
			return start + fbHeaderAdjust, nil
		}
		if strings.HasSuffix(line, "/dev/fb0") {
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan %s: %w", mapsPath, err)
	}
	return 0, fmt.Errorf("no line containing /dev/fb0 in %s", mapsPath)
}
