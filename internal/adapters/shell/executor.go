// Package shell runs task steps as host processes and evaluates skip guards.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long output copying may continue after a cancelled process exits.
const waitDelay = 5 * time.Second

// Options configures an Executor.
type Options struct {
	// WorkDir is the directory commands run in; empty means the current directory.
	WorkDir string
	// PTY runs commands attached to a pseudo terminal, merging stdout and stderr.
	PTY bool
}

// Executor implements ports.Executor using os/exec, optionally through a PTY.
type Executor struct {
	logger ports.Logger
	opts   Options
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, opts Options) *Executor {
	return &Executor{
		logger: logger,
		opts:   opts,
	}
}

// Execute runs the command and waits for it to complete.
// Every output line is also logged at debug level.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, env []string, stdout, stderr io.Writer) error {
	if cmd == nil || strings.TrimSpace(cmd.Program) == "" {
		return zerr.Wrap(domain.ErrInvalidCommand, "cannot execute step")
	}

	stdoutLog := &logWriter{logger: e.logger}
	stderrLog := &logWriter{logger: e.logger}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	c := e.command(ctx, cmd, env)

	var err error
	if e.opts.PTY {
		err = runPTY(c, io.MultiWriter(stdoutLog, stdout))
	} else {
		c.Stdout = io.MultiWriter(stdoutLog, stdout)
		c.Stderr = io.MultiWriter(stderrLog, stderr)
		err = c.Run()
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(err, "command", cmd.Line())
	}
	return nil
}

func (e *Executor) command(ctx context.Context, cmd *domain.Command, env []string) *exec.Cmd {
	// A nil Env would inherit the host environment.
	cmdEnv := append([]string{}, env...)

	executable := cmd.Program
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // task steps are user provided
	c.Args[0] = cmd.Program
	c.Env = cmdEnv
	c.Dir = e.opts.WorkDir
	c.WaitDelay = waitDelay
	return c
}

func runPTY(c *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The PTY merges stdout and stderr.
		_, _ = io.Copy(out, ptmx)
	}()

	err = c.Wait()
	// Reading the master fails with EIO once the child side is closed.
	<-ioDone
	_ = ptmx.Close()
	return err
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	w.logger.Debug(strings.TrimSuffix(string(line), "\r"))
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
