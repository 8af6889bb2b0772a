package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/adapters/detector"
	"go.trai.ch/rustci/internal/app"
	"go.trai.ch/rustci/internal/catalog"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	exec     *mocks.MockExecutor
	packages *mocks.MockPackageManager
	guards   *mocks.MockGuardEvaluator
	environ  *mocks.MockEnvironmentReader
	dialer   *mocks.MockPluginDialer
	logger   *mocks.MockLogger
	project  *domain.Project
	progress *bytes.Buffer
	app      *app.App
}

func newFixture(t *testing.T, tasks ...*domain.TaskDefinition) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		exec:     mocks.NewMockExecutor(ctrl),
		packages: mocks.NewMockPackageManager(ctrl),
		guards:   mocks.NewMockGuardEvaluator(ctrl),
		environ:  mocks.NewMockEnvironmentReader(ctrl),
		dialer:   mocks.NewMockPluginDialer(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		project:  domain.DefaultProject(t.TempDir()),
		progress: &bytes.Buffer{},
	}
	f.project.Tasks = tasks
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	registry, err := catalog.NewRegistry(f.project)
	require.NoError(t, err)

	f.app = app.New(registry, f.project, f.exec, f.packages, f.guards, f.environ, f.dialer, f.logger).
		WithProgressOutput(f.progress).
		WithModeDetector(func() detector.OutputMode { return detector.ModeQuiet })
	return f
}

func (f *fixture) expectSnapshot() {
	f.environ.EXPECT().Snapshot(gomock.Any(), gomock.Any()).
		Return(domain.Environment{"HOME": "/home/ci", "PATH": "/usr/bin"}, nil)
}

func (f *fixture) expectProvision() {
	f.packages.EXPECT().Ensure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
}

func writeOutput(out string) func(context.Context, *domain.Command, []string, io.Writer, io.Writer) error {
	return func(_ context.Context, _ *domain.Command, _ []string, stdout, _ io.Writer) error {
		_, err := io.WriteString(stdout, out)
		return err
	}
}

func TestInvoke_TestBindsArguments(t *testing.T) {
	f := newFixture(t)
	f.expectSnapshot()
	f.expectProvision()
	f.guards.EXPECT().Satisfied(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	gomock.InOrder(
		f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(writeOutput("rustup installed\n")),
		f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd *domain.Command, _ []string, stdout, _ io.Writer) error {
				assert.Contains(t, cmd.Line(), "--all-features")
				assert.Equal(t, []string{"cargo", "test", "--all-features"}, cmd.Argv())
				_, err := io.WriteString(stdout, "test result: ok\n")
				return err
			}),
	)

	out, err := f.app.Invoke(context.Background(), catalog.Test, "--all-features", app.InvokeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "rustup installed\ntest result: ok\n", out)
	assert.Empty(t, f.progress.String(), "quiet mode renders nothing")
}

func TestInvoke_BuildStopsWhenToolchainInstallFails(t *testing.T) {
	f := newFixture(t)
	f.expectSnapshot()
	f.expectProvision()
	f.guards.EXPECT().Satisfied(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Command, _ []string, stdout, _ io.Writer) error {
			_, _ = io.WriteString(stdout, "curl: (6) Could not resolve host\n")
			return errors.New("exit status 6")
		}).Times(1)

	res, err := f.app.Run(context.Background(), catalog.Build, "", app.InvokeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrStepExecutionFailed)

	require.NotNil(t, res)
	require.NotNil(t, res.FailedStepIndex)
	assert.Equal(t, 0, *res.FailedStepIndex)
	assert.Contains(t, res.ErrorMessage, "exit status 6")
	assert.Empty(t, res.CapturedOutput)

	out, err := f.app.Invoke(context.Background(), "", "", app.InvokeOptions{})
	require.ErrorIs(t, err, domain.ErrNoTaskSpecified)
	assert.Empty(t, out)
}

func TestInvoke_UnknownTask(t *testing.T) {
	f := newFixture(t)

	out, err := f.app.Invoke(context.Background(), "deploy", "", app.InvokeOptions{})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrUnknownTask)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "deploy", zErr.Metadata()["task"])
}

func TestInvoke_MissingEnvironmentFailsBeforeAnyStep(t *testing.T) {
	missing := zerr.With(zerr.Wrap(domain.ErrMissingEnvironmentVariable, "cannot snapshot environment"),
		"name", "CARGO_REGISTRY_TOKEN")
	f := newFixture(t)
	f.environ.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(nil, missing)

	_, err := f.app.Invoke(context.Background(), catalog.Clippy, "", app.InvokeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrMissingEnvironmentVariable)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "clippy", zErr.Metadata()["task"])
}

func TestInvoke_SnapshotsProjectAndTaskEnvironment(t *testing.T) {
	def, err := domain.NewTask("fmt", domain.TaskSpec{
		Environment: []domain.EnvVar{domain.OptionalEnv("RUSTFMT", "rustfmt")},
	}, domain.MustCommand("cargo", "fmt"))
	require.NoError(t, err)

	f := newFixture(t, def)
	f.project.Settings.Environment = []domain.EnvVar{domain.RequiredEnv("CARGO_REGISTRY_TOKEN")}
	f.project.Settings.Passthrough = []string{"RUSTFLAGS"}

	f.environ.EXPECT().Snapshot(
		[]domain.EnvVar{domain.RequiredEnv("CARGO_REGISTRY_TOKEN"), domain.OptionalEnv("RUSTFMT", "rustfmt")},
		[]string{"RUSTFLAGS"},
	).Return(domain.Environment{}, nil)
	f.expectProvision()
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(writeOutput("formatted\n"))

	out, err := f.app.Invoke(context.Background(), "fmt", "", app.InvokeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "formatted\n", out)
}

func TestInvoke_LinearModeRendersProgress(t *testing.T) {
	f := newFixture(t)
	f.expectSnapshot()
	f.expectProvision()
	f.guards.EXPECT().Satisfied(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(writeOutput("test result: ok\n"))

	out, err := f.app.Invoke(context.Background(), catalog.Test, "", app.InvokeOptions{OutputMode: "ci"})
	require.NoError(t, err)
	assert.Equal(t, "test result: ok\n", out)

	progress := f.progress.String()
	assert.Contains(t, progress, "[test] Starting...")
	assert.Contains(t, progress, "Skipped install rustup")
	assert.Contains(t, progress, "[test] test result: ok")
	assert.True(t, strings.Contains(progress, "Completed in"), progress)
}

func TestTasks_ListsBuiltinsInOrder(t *testing.T) {
	f := newFixture(t)

	ops := f.app.Tasks()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
		assert.NotEmpty(t, op.Fingerprint)
	}
	assert.Equal(t, []string{catalog.Clippy, catalog.LlvmCov, catalog.Test, catalog.Build, catalog.Pipeline}, names)
	assert.False(t, ops[0].AcceptsArgs)
	assert.True(t, ops[2].AcceptsArgs)
}
