package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Backend names the package manager used to provision prerequisites.
type Backend string

const (
	// BackendPkgx provisions prerequisites with pkgx.
	BackendPkgx Backend = "pkgx"
	// BackendNix provisions prerequisites from nixpkgs.
	BackendNix Backend = "nix"
	// BackendHost only verifies prerequisites on the host PATH.
	BackendHost Backend = "host"
)

// ParseBackend validates a configured backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendPkgx, BackendNix, BackendHost:
		return b, nil
	case "":
		return BackendPkgx, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidBackend, "cannot parse backend"), "backend", s)
	}
}

// Exporter names the span exporter.
type Exporter string

const (
	// ExporterNone disables span export.
	ExporterNone Exporter = "none"
	// ExporterStdout writes spans as JSON.
	ExporterStdout Exporter = "stdout"
)

// ParseExporter validates a configured exporter name.
func ParseExporter(s string) (Exporter, error) {
	switch e := Exporter(strings.ToLower(strings.TrimSpace(s))); e {
	case ExporterNone, ExporterStdout:
		return e, nil
	case "":
		return ExporterNone, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidExporter, "cannot parse exporter"), "exporter", s)
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a configured level name. An empty name means info.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, zerr.With(zerr.Wrap(ErrInvalidLogLevel, "cannot parse log level"), "level", s)
	}
}

// ToolchainSettings pins the versions of the tools installed by the built-in tasks.
type ToolchainSettings struct {
	RustupURL          string
	ClippySarifVersion string
	SarifFmtVersion    string
	LlvmCovVersion     string
}

// TelemetrySettings configures span export.
type TelemetrySettings struct {
	Exporter Exporter
	File     string
}

// LogSettings configures the logger.
type LogSettings struct {
	JSON  bool
	Level LogLevel
}

// Settings holds project wide execution settings.
type Settings struct {
	Backend Backend
	// Timeout bounds one invocation; zero disables it.
	Timeout     time.Duration
	PTY         bool
	WorkDir     string
	Toolchain   ToolchainSettings
	Environment []EnvVar
	Passthrough []string
	Telemetry   TelemetrySettings
	Log         LogSettings
}

// DefaultSettings returns the settings used when no project file exists.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendPkgx,
		WorkDir: ".",
		Toolchain: ToolchainSettings{
			RustupURL:          "https://sh.rustup.rs",
			ClippySarifVersion: "0.3.0",
			SarifFmtVersion:    "0.3.0",
			LlvmCovVersion:     "v0.5.36",
		},
		Telemetry: TelemetrySettings{
			Exporter: ExporterNone,
			File:     DefaultTracePath(),
		},
		Log: LogSettings{Level: LogLevelInfo},
	}
}

// Project is the loaded project configuration.
type Project struct {
	// Root is the directory containing the project file, or the working directory when none exists.
	Root     string
	Settings Settings
	Tasks    []*TaskDefinition
}

// DefaultProject returns a project rooted at root with default settings and no extra tasks.
func DefaultProject(root string) *Project {
	return &Project{Root: root, Settings: DefaultSettings()}
}
