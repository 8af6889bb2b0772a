// Package catalog defines the built-in Rust CI tasks and assembles the task registry.
package catalog

import (
	"fmt"

	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// Names of the built-in tasks.
const (
	Clippy   = "clippy"
	LlvmCov  = "llvmcov"
	Test     = "test"
	Build    = "build"
	Pipeline = "pipeline"
)

// Names lists the built-in tasks in registration order.
var Names = []string{Clippy, LlvmCov, Test, Build, Pipeline}

const (
	cargoBinPath     = "$HOME/.cargo/bin"
	clippyReportFile = "rust-clippy-results.sarif"
	lcovReportFile   = "lcov.info"
	llvmCovTarball   = "cargo-llvm-cov-x86_64-unknown-linux-gnu.tar.gz"
	llvmCovRelease   = "https://github.com/taiki-e/cargo-llvm-cov/releases/download/%s/" + llvmCovTarball
	llvmCovInstallTo = "/usr/local/bin"
)

var (
	fetchTools = []string{"curl", "wget"}
	curlOnly   = []string{"curl"}
)

// rustup installs the toolchain unless rustup is already on PATH.
func rustup(tc domain.ToolchainSettings) domain.Command {
	script := fmt.Sprintf("curl --proto '=https' --tlsv1.2 -sSf %s | sh -s -- -y", tc.RustupURL)
	return domain.ShellCommand(script).
		WithGuard(domain.SkipIfCommandExists("rustup")).
		WithLabel("install rustup")
}

func cargoInstall(crate, version string) domain.Command {
	return domain.MustCommand("cargo", "install", crate, "--version", version).
		WithGuard(domain.SkipIfCommandExists(crate))
}

func spec(description string, prerequisites []string, artifacts ...string) domain.TaskSpec {
	return domain.TaskSpec{
		Description:   description,
		Prerequisites: prerequisites,
		Paths:         []string{cargoBinPath},
		Artifacts:     artifacts,
	}
}

// Builtins returns the built-in task definitions for the given toolchain.
func Builtins(tc domain.ToolchainSettings) ([]*domain.TaskDefinition, error) {
	tarball := fmt.Sprintf(llvmCovRelease, tc.LlvmCovVersion)
	hasLlvmCov := domain.SkipIfCommandExists("cargo-llvm-cov")

	type builtin struct {
		name  string
		spec  domain.TaskSpec
		steps []domain.Command
	}

	builtins := []builtin{
		{
			name: Clippy,
			spec: spec("Lint with clippy and write a SARIF report", fetchTools, clippyReportFile),
			steps: []domain.Command{
				rustup(tc),
				domain.MustCommand("rustup", "component", "add", "clippy"),
				cargoInstall("clippy-sarif", tc.ClippySarifVersion),
				cargoInstall("sarif-fmt", tc.SarifFmtVersion),
				domain.ShellCommand(
					"cargo clippy --all-features --message-format=json | clippy-sarif | tee " +
						clippyReportFile + " | sarif-fmt",
				).WithLabel("cargo clippy | clippy-sarif | sarif-fmt"),
			},
		},
		{
			name: LlvmCov,
			spec: spec("Generate an lcov coverage report with cargo-llvm-cov", fetchTools, lcovReportFile),
			steps: []domain.Command{
				rustup(tc),
				domain.MustCommand("rustup", "component", "add", "llvm-tools"),
				domain.MustCommand("wget", tarball).WithGuard(hasLlvmCov),
				domain.MustCommand("tar", "xvf", llvmCovTarball).WithGuard(hasLlvmCov),
				domain.MustCommand("mv", "cargo-llvm-cov", llvmCovInstallTo).WithGuard(hasLlvmCov),
				domain.MustCommand("cargo", "llvm-cov",
					"--all-features", "--lib", "--workspace", "--lcov", "--output-path", lcovReportFile),
			},
		},
		{
			name: Test,
			spec: spec("Run the test suite", fetchTools),
			steps: []domain.Command{
				rustup(tc),
				domain.MustCommand("cargo", "test").AcceptingArgs(),
			},
		},
		{
			name: Build,
			spec: spec("Build the project", curlOnly),
			steps: []domain.Command{
				rustup(tc),
				domain.MustCommand("cargo", "build").AcceptingArgs(),
			},
		},
		{
			name: Pipeline,
			spec: spec("Run the tests, then build a release", fetchTools),
			steps: []domain.Command{
				rustup(tc),
				domain.MustCommand("cargo", "test").AcceptingArgs(),
				domain.MustCommand("cargo", "build", "--release").AcceptingArgs(),
			},
		},
	}

	defs := make([]*domain.TaskDefinition, 0, len(builtins))
	for _, b := range builtins {
		def, err := domain.NewTask(b.name, b.spec, b.steps...)
		if err != nil {
			return nil, zerr.Wrap(err, "invalid built-in task")
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// NewRegistry registers the built-in tasks followed by the project's tasks
// and returns the sealed registry. A project task named like a built-in is
// rejected with domain.ErrDuplicateTask.
func NewRegistry(project *domain.Project) (*domain.Registry, error) {
	if project == nil {
		project = domain.DefaultProject(".")
	}

	builtins, err := Builtins(project.Settings.Toolchain)
	if err != nil {
		return nil, err
	}

	reg := domain.NewRegistry()
	for _, def := range builtins {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	for _, def := range project.Tasks {
		if err := reg.Register(def); err != nil {
			return nil, zerr.Wrap(err, "cannot register project task")
		}
	}

	return reg.Seal(), nil
}
