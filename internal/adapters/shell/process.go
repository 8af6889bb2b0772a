package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// OutputFunc runs a host program and returns its standard output.
type OutputFunc func(ctx context.Context, env domain.Environment, name string, args ...string) ([]byte, error)

// LookPathFunc resolves an executable against the PATH of env.
type LookPathFunc func(file string, env domain.Environment) (string, error)

// Output runs name with args in env and returns its standard output.
// On failure the trimmed standard error is attached as "stderr" metadata.
func Output(ctx context.Context, env domain.Environment, name string, args ...string) ([]byte, error) {
	cmdEnv := env.Environ()

	executable := name
	if lp, err := lookPath(name, cmdEnv); err == nil {
		executable = lp
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // package names come from task definitions
	c.Args[0] = name
	c.Env = cmdEnv
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = waitDelay

	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		wrapped = zerr.With(wrapped, "command", strings.Join(append([]string{name}, args...), " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return nil, wrapped
	}
	return stdout.Bytes(), nil
}

// LookPath searches for file in the PATH that a step running in env would see.
func LookPath(file string, env domain.Environment) (string, error) {
	return lookPath(file, env.Environ())
}
