package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/rustci/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var _ ports.Executor = (*shell.Executor)(nil)

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	l := mocks.NewMockLogger(gomock.NewController(t))
	l.EXPECT().Debug(gomock.Any()).AnyTimes()
	return l
}

func TestExecutor_Execute_LogsEachLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("line1").Times(1)
	mockLogger.EXPECT().Debug("line2").Times(1)

	executor := shell.NewExecutor(mockLogger, shell.Options{WorkDir: t.TempDir()})
	cmd := domain.ShellCommand("echo line1; echo line2")

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), &cmd, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", stdout.String())
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger, shell.Options{})
	cmd := domain.ShellCommand("printf part1; printf part2")

	err := executor.Execute(context.Background(), &cmd, nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_SeparatesStderr(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.ShellCommand("echo out; echo err >&2")

	var stdout, stderr bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), &cmd, nil, &stdout, &stderr))
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.ShellCommand("exit 101")

	err := executor.Execute(context.Background(), &cmd, nil, io.Discard, io.Discard)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, 101, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_UnknownProgram(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.MustCommand("definitely-not-a-real-program-rustci")

	err := executor.Execute(context.Background(), &cmd, nil, io.Discard, io.Discard)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})

	err := executor.Execute(context.Background(), &domain.Command{}, nil, io.Discard, io.Discard)
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)
}

func TestExecutor_Execute_Environment(t *testing.T) {
	t.Setenv("RUSTCI_HOST_SECRET", "leaked")
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.ShellCommand(`echo "$CARGO_TERM_COLOR:$RUSTCI_HOST_SECRET"`)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), &cmd, []string{"CARGO_TERM_COLOR=always"}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "always:\n", stdout.String(), "host variables stay out of the step")
}

func TestExecutor_Execute_StepEnvironmentOnly(t *testing.T) {
	t.Setenv("HOME", "/home/host")
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.ShellCommand(`echo "${HOME:-unset}:${RUSTUP_HOME:-unset}"`)

	var stdout bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), &cmd, nil, &stdout, io.Discard))
	assert.Equal(t, "unset:unset\n", stdout.String())

	stdout.Reset()
	env := domain.Environment{"HOME": "/home/ci", "RUSTUP_HOME": "/opt/rustup"}.Environ()
	require.NoError(t, executor.Execute(context.Background(), &cmd, env, &stdout, io.Discard))
	assert.Equal(t, "/home/ci:/opt/rustup\n", stdout.String())
}

func TestExecutor_Execute_StepPath(t *testing.T) {
	binDir := t.TempDir()
	script := filepath.Join(binDir, "cargo-fake")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho fake cargo \"$@\"\n"), 0o700))

	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.MustCommand("cargo-fake", "test")

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), &cmd, []string{"PATH=" + binDir}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "fake cargo test\n", stdout.String())
}

func TestExecutor_Execute_WorkDir(t *testing.T) {
	dir := t.TempDir()
	executor := shell.NewExecutor(quietLogger(t), shell.Options{WorkDir: dir})
	cmd := domain.MustCommand("pwd")

	var stdout bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), &cmd, nil, &stdout, io.Discard))

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{})
	cmd := domain.MustCommand("sleep", "30")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := executor.Execute(ctx, &cmd, nil, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestExecutor_Execute_PTY(t *testing.T) {
	executor := shell.NewExecutor(quietLogger(t), shell.Options{PTY: true})
	cmd := domain.ShellCommand("echo out; echo err >&2")

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), &cmd, nil, &stdout, io.Discard)
	if err != nil && strings.Contains(err.Error(), "failed to start pty") {
		t.Skipf("pty unavailable: %v", err)
	}
	require.NoError(t, err)

	out := strings.ReplaceAll(stdout.String(), "\r", "")
	assert.Contains(t, out, "out\n")
	assert.Contains(t, out, "err\n", "the pty merges stderr into stdout")
}
