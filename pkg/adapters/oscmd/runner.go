// Package oscmd provides a command runner implementation using os/exec.
package oscmd

import (
	"os/exec"

	"github.com/user/restream/pkg/ports"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Output runs the named command and returns its standard output.
func (r *Runner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var _ ports.CommandRunner = (*Runner)(nil)
