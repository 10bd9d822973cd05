package rmdevice

import (
	"errors"
	"testing"

	"github.com/user/restream/pkg/adapters/logger"
	"github.com/user/restream/pkg/mocks"
)

const gen2Maps = `70000000-7010a000 r-xp 00000000 b3:02 279      /usr/bin/xochitl
7010a000-7011a000 ---p 00000000 00:00 0
701fa000-70240000 rw-p 00000000 00:00 0
701ff000-70200000 rw-s 00000000 00:06 406      /dev/fb0
70400000-72400000 rw-p 00000000 00:00 0
72400000-72500000 r--p 00000000 b3:02 143      /lib/libc.so
`

func newTestProber(fs *mocks.FileSystem, runner *mocks.CommandRunner) *Prober {
	return NewProber(fs, runner, logger.NewNoop())
}

func TestProber_DetectsGen1(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("reMarkable 1.0\n"))
	p := newTestProber(fs, mocks.NewCommandRunner())

	region, err := p.Region()
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if region.Path != "/dev/fb0" {
		t.Errorf("expected /dev/fb0, got %s", region.Path)
	}
	if region.Offset != 0 {
		t.Errorf("expected offset 0, got %d", region.Offset)
	}
	if region.Width != 1408 || region.Height != 1872 || region.BytesPerPixel != 2 {
		t.Errorf("unexpected geometry %dx%dx%d", region.Width, region.Height, region.BytesPerPixel)
	}
}

func TestProber_DetectsGen2(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("reMarkable 2.0\n"))
	fs.SetFile("/proc/123/maps", []byte(gen2Maps))
	runner := mocks.NewCommandRunner()
	runner.SetOutput("/bin/pidof xochitl", []byte("123\n"))
	p := newTestProber(fs, runner)

	region, err := p.Region()
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if region.Path != "/proc/123/mem" {
		t.Errorf("expected /proc/123/mem, got %s", region.Path)
	}
	// Mapping after the /dev/fb0 line starts at 0x70400000, plus the
	// 8-byte header adjustment.
	if region.Offset != 0x70400000+8 {
		t.Errorf("expected offset 0x70400008, got 0x%x", region.Offset)
	}
	if region.Width != 1404 || region.Height != 1872 || region.BytesPerPixel != 1 {
		t.Errorf("unexpected geometry %dx%dx%d", region.Width, region.Height, region.BytesPerPixel)
	}
}

func TestProber_TakesFirstOfSeveralPids(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("reMarkable 2.0\n"))
	fs.SetFile("/proc/42/maps", []byte(gen2Maps))
	runner := mocks.NewCommandRunner()
	runner.SetOutput("/bin/pidof xochitl", []byte("42 41\n"))
	p := newTestProber(fs, runner)

	region, err := p.Region()
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if region.Path != "/proc/42/mem" {
		t.Errorf("expected /proc/42/mem, got %s", region.Path)
	}
}

func TestProber_UnknownMachine(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("imx7d-sabresd\n"))
	p := newTestProber(fs, mocks.NewCommandRunner())

	if _, err := p.Region(); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("expected ErrUnknownDevice, got %v", err)
	}
}

func TestProber_MissingXochitl(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("reMarkable 2.0\n"))
	p := newTestProber(fs, mocks.NewCommandRunner())

	if _, err := p.Region(); err == nil {
		t.Error("expected error when pidof fails")
	}
}

func TestProber_MapsWithoutFramebuffer(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile(machinePath, []byte("reMarkable 2.0\n"))
	fs.SetFile("/proc/7/maps", []byte("70000000-7010a000 r-xp 00000000 b3:02 279 /usr/bin/xochitl\n"))
	runner := mocks.NewCommandRunner()
	runner.SetOutput("/bin/pidof xochitl", []byte("7\n"))
	p := newTestProber(fs, runner)

	if _, err := p.Region(); err == nil {
		t.Error("expected error when /dev/fb0 is missing from maps")
	}
}

func TestProber_MachineReadFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	p := newTestProber(fs, mocks.NewCommandRunner())

	if _, err := p.Detect(); err == nil {
		t.Error("expected error when machine name is unreadable")
	}
}
