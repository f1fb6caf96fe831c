package stager

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/logging"
)

// outputTail bounds how much installer output is kept in an error
const outputTail = 4096

// Runner runs an external program to completion
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs programs with os/exec
type ExecRunner struct{}

// Run executes name with args in dir. A non-zero exit is reported as
// ErrInstallerProcess with the end of the combined output attached.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	logger := logging.GetLogger("stager")
	commandLine := strings.Join(append([]string{name}, args...), " ")
	logger.Info().Str("command", commandLine).Str("dir", dir).Msg("Running installer")

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		tail := output.String()
		if len(tail) > outputTail {
			tail = tail[len(tail)-outputTail:]
		}
		logger.Debug().Str("output", tail).Msg("Installer output")
		return errors.Wrapf(err, errors.ErrInstallerProcess, "%s failed", commandLine).
			WithDetail("dir", dir).
			WithDetail("output", tail)
	}

	logger.Trace().Str("output", output.String()).Msg("Installer output")
	return nil
}
