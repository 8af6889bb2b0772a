package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidCommand is returned when a command descriptor has an empty program.
	ErrInvalidCommand = zerr.New("invalid command: program must not be empty")

	// ErrInvalidGuard is returned when a skip guard has an unknown kind or an empty value.
	ErrInvalidGuard = zerr.New("invalid skip guard")

	// ErrInvalidTask is returned when a task definition violates its invariants.
	ErrInvalidTask = zerr.New("invalid task definition")

	// ErrInvalidTaskName is returned when a task name is empty or contains invalid characters.
	ErrInvalidTaskName = zerr.New("task name can only contain alphanumeric characters, hyphens and underscores")

	// ErrDuplicateTask is returned when a task name is registered twice.
	ErrDuplicateTask = zerr.New("task already registered")

	// ErrUnknownTask is returned when a requested task is not registered.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrRegistrySealed is returned when registering into a registry that finished initialization.
	ErrRegistrySealed = zerr.New("task registry is sealed")

	// ErrNoTaskSpecified is returned when an invocation names no task.
	ErrNoTaskSpecified = zerr.New("no task specified")

	// ErrMissingEnvironmentVariable is returned when a required environment variable is absent.
	ErrMissingEnvironmentVariable = zerr.New("missing required environment variable")

	// ErrStepExecutionFailed is returned when the engine reports a failing step.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrTimeout is returned when a task exceeds its wall-clock budget.
	ErrTimeout = zerr.New("task timed out")

	// ErrPrerequisitesFailed is returned when declared prerequisites cannot be provisioned.
	ErrPrerequisitesFailed = zerr.New("failed to provision prerequisites")

	// ErrPrerequisiteMissing is returned when a prerequisite is absent and the backend cannot install it.
	ErrPrerequisiteMissing = zerr.New("prerequisite not found on PATH")

	// ErrPackageInstallFailed is returned when a package manager fails to install a package.
	ErrPackageInstallFailed = zerr.New("failed to install package")

	// ErrGuardEvaluationFailed is returned when a skip guard cannot be evaluated.
	ErrGuardEvaluationFailed = zerr.New("failed to evaluate skip guard")

	// ErrTaskExecutionFailed is returned when an invocation does not complete successfully.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrConfigReadFailed is returned when the project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read project file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse project file")

	// ErrInvalidBackend is returned when the configured package backend is unknown.
	ErrInvalidBackend = zerr.New("invalid engine backend, expected 'pkgx', 'nix' or 'host'")

	// ErrInvalidDuration is returned when a configured duration cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrInvalidLogLevel is returned when the configured log level is unknown.
	ErrInvalidLogLevel = zerr.New("invalid log level, expected 'debug', 'info', 'warn' or 'error'")

	// ErrInvalidExporter is returned when the configured trace exporter is unknown.
	ErrInvalidExporter = zerr.New("invalid telemetry exporter, expected 'none' or 'stdout'")

	// ErrPluginUnavailable is returned when the plugin service cannot be reached.
	ErrPluginUnavailable = zerr.New("plugin service unavailable")
)
