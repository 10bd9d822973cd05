package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/restream/pkg/ports"
)

// CommandRunner is a mock implementation of ports.CommandRunner.
type CommandRunner struct {
	mu      sync.Mutex
	outputs map[string][]byte
	Calls   []string

	OutputFunc func(name string, args ...string) ([]byte, error)
}

// NewCommandRunner creates a new mock CommandRunner.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{outputs: make(map[string][]byte)}
}

// SetOutput seeds the output for a command line for test setup.
func (m *CommandRunner) SetOutput(cmdline string, out []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[cmdline] = out
}

func (m *CommandRunner) Output(name string, args ...string) ([]byte, error) {
	if m.OutputFunc != nil {
		return m.OutputFunc(name, args...)
	}
	cmdline := strings.Join(append([]string{name}, args...), " ")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, cmdline)
	if out, ok := m.outputs[cmdline]; ok {
		return out, nil
	}
	return nil, fmt.Errorf("command failed: %s", cmdline)
}

var _ ports.CommandRunner = (*CommandRunner)(nil)
