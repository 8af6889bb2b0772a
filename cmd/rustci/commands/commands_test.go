package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/cmd/rustci/commands"
	"go.trai.ch/rustci/internal/app"
	"go.trai.ch/rustci/internal/build"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

type invocation struct {
	name string
	args string
	opts app.InvokeOptions
}

type mockApp struct {
	invocations []invocation
	invokeFunc  func(name, args string) (string, error)
	ops         []ports.OperationInfo

	serveOpts app.ServeOptions
	callOpts  app.CallOptions
	called    string
	stopped   bool
}

func (m *mockApp) Invoke(_ context.Context, name, args string, opts app.InvokeOptions) (string, error) {
	m.invocations = append(m.invocations, invocation{name: name, args: args, opts: opts})
	if m.invokeFunc != nil {
		return m.invokeFunc(name, args)
	}
	return "", nil
}

func (m *mockApp) Tasks() []ports.OperationInfo {
	return m.ops
}

func (m *mockApp) Serve(_ context.Context, opts app.ServeOptions) error {
	m.serveOpts = opts
	return nil
}

func (m *mockApp) Call(_ context.Context, operation, args string, opts app.CallOptions) (string, error) {
	m.callOpts = opts
	m.called = operation + " " + args
	return "remote output\n", nil
}

func (m *mockApp) Status(_ context.Context, opts app.CallOptions) (*app.PluginStatus, error) {
	m.callOpts = opts
	return &app.PluginStatus{IdleRemaining: 4*time.Minute + 30*time.Second + 400*time.Millisecond, Operations: m.ops}, nil
}

func (m *mockApp) Stop(_ context.Context, opts app.CallOptions) error {
	m.callOpts = opts
	m.stopped = true
	return nil
}

func sampleOperations() []ports.OperationInfo {
	return []ports.OperationInfo{
		{Name: "clippy", Description: "Lint with clippy and write a SARIF report", Fingerprint: "a1b2c3d4e5f60718"},
		{Name: "test", Description: "Run the test suite", AcceptsArgs: true, Fingerprint: "0f1e2d3c4b5a6978"},
		{Name: "fmt", Description: "Check formatting", Fingerprint: "77aa88bb99cc0011"},
	}
}

func builtinOperations() []ports.OperationInfo {
	return []ports.OperationInfo{
		{Name: "clippy", Description: "Lint with clippy and write a SARIF report"},
		{Name: "llvmcov", Description: "Generate an lcov coverage report with cargo-llvm-cov"},
		{Name: "test", Description: "Run the cargo test suite", AcceptsArgs: true},
		{Name: "build", Description: "Build a release binary", AcceptsArgs: true},
		{Name: "pipeline", Description: "Test and then build", AcceptsArgs: true},
		{Name: "fmt", Description: "Check formatting", AcceptsArgs: true},
	}
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, new(bytes.Buffer))
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_BuiltinTasks(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantTask string
		wantArgs string
		wantMode string
	}{
		{name: "clippy", args: []string{"clippy"}, wantTask: "clippy", wantMode: "auto"},
		{name: "llvmcov quiet", args: []string{"llvmcov", "-o", "quiet"}, wantTask: "llvmcov", wantMode: "quiet"},
		{
			name:     "test with args",
			args:     []string{"test", "--", "--all-features", "--no-fail-fast"},
			wantTask: "test",
			wantArgs: "--all-features --no-fail-fast",
			wantMode: "auto",
		},
		{name: "build in ci", args: []string{"--ci", "build"}, wantTask: "build", wantMode: "ci"},
		{name: "pipeline", args: []string{"pipeline", "--", "--locked"}, wantTask: "pipeline", wantArgs: "--locked", wantMode: "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{
				ops:        builtinOperations(),
				invokeFunc: func(_, _ string) (string, error) { return "captured\n", nil },
			}

			out, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "captured\n", out)
			require.Len(t, m.invocations, 1)
			assert.Equal(t, tt.wantTask, m.invocations[0].name)
			assert.Equal(t, tt.wantArgs, m.invocations[0].args)
			assert.Equal(t, tt.wantMode, m.invocations[0].opts.OutputMode)
		})
	}
}

func TestCommands_ClippyRejectsArgs(t *testing.T) {
	m := &mockApp{ops: builtinOperations()}
	_, err := execute(t, m, "clippy", "--", "--fix")
	require.Error(t, err)
	assert.Empty(t, m.invocations)
}

func TestCommands_TaskCommandsFollowRegistry(t *testing.T) {
	for _, op := range builtinOperations()[:5] {
		m := &mockApp{ops: builtinOperations()}

		out, err := execute(t, m, op.Name, "--help")
		require.NoError(t, err, op.Name)
		assert.Contains(t, out, op.Description, op.Name)

		_, err = execute(t, m, op.Name, "--", "--locked")
		assert.Equal(t, op.AcceptsArgs, err == nil, op.Name)
	}

	_, err := execute(t, &mockApp{ops: builtinOperations()}, "fmt")
	require.Error(t, err, "project tasks run through the run command")

	_, err = execute(t, &mockApp{}, "clippy")
	require.Error(t, err, "no subcommand without a registered task")
}

func TestCommands_Run(t *testing.T) {
	t.Run("runs a project task", func(t *testing.T) {
		m := &mockApp{invokeFunc: func(_, _ string) (string, error) { return "ok\n", nil }}

		out, err := execute(t, m, "run", "fmt", "--", "--check")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
		require.Len(t, m.invocations, 1)
		assert.Equal(t, "fmt", m.invocations[0].name)
		assert.Equal(t, "--check", m.invocations[0].args)
	})

	t.Run("returns error on failure without output", func(t *testing.T) {
		m := &mockApp{invokeFunc: func(_, _ string) (string, error) {
			return "", errors.Join(domain.ErrTaskExecutionFailed, domain.ErrStepExecutionFailed)
		}}

		out, err := execute(t, m, "run", "build")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
		assert.Empty(t, out)
	})

	t.Run("shows usage when no task provided", func(t *testing.T) {
		m := &mockApp{}

		out, err := execute(t, m, "run")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
		assert.Empty(t, m.invocations)
	})
}

func TestCommands_List(t *testing.T) {
	m := &mockApp{ops: sampleOperations()}

	out, err := execute(t, m, "list")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "list", []byte(out))
}

func TestCommands_Serve(t *testing.T) {
	m := &mockApp{}

	_, err := execute(t, m, "serve", "--socket", "/tmp/ci.sock", "--idle-timeout", "90s")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ci.sock", m.serveOpts.Socket)
	assert.Equal(t, 90*time.Second, m.serveOpts.IdleTimeout)

	_, err = execute(t, m, "serve")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIdleTimeout, m.serveOpts.IdleTimeout)
	assert.Empty(t, m.serveOpts.Socket)
}

func TestCommands_Call(t *testing.T) {
	m := &mockApp{}

	out, err := execute(t, m, "call", "test", "--socket", "ci.sock", "--", "--all-features")
	require.NoError(t, err)
	assert.Equal(t, "remote output\n", out)
	assert.Equal(t, "test --all-features", m.called)
	assert.Equal(t, "ci.sock", m.callOpts.Socket)

	_, err = execute(t, m, "call")
	require.Error(t, err, "an operation is required")
}

func TestCommands_PluginStatus(t *testing.T) {
	m := &mockApp{ops: sampleOperations()}

	out, err := execute(t, m, "plugin", "status", "--socket", "ci.sock")
	require.NoError(t, err)
	assert.Equal(t, "ci.sock", m.callOpts.Socket)

	g := goldie.New(t)
	g.Assert(t, "plugin_status", []byte(out))
}

func TestCommands_PluginStop(t *testing.T) {
	m := &mockApp{}

	_, err := execute(t, m, "plugin", "stop")
	require.NoError(t, err)
	assert.True(t, m.stopped)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rustci version "+build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "rustci version "+build.Version)
}
