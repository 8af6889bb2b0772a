package config

// Projectfile represents the structure of the rustci.yaml or rustci.toml project file.
type Projectfile struct {
	Version     string              `yaml:"version" toml:"version"`
	Engine      EngineDTO           `yaml:"engine" toml:"engine"`
	Toolchain   ToolchainDTO        `yaml:"toolchain" toml:"toolchain"`
	Environment []EnvVarDTO         `yaml:"environment" toml:"environment"`
	Passthrough []string            `yaml:"passthrough" toml:"passthrough"`
	Telemetry   TelemetryDTO        `yaml:"telemetry" toml:"telemetry"`
	Log         LogDTO              `yaml:"log" toml:"log"`
	Tasks       map[string]*TaskDTO `yaml:"tasks" toml:"tasks"`
}

// EngineDTO configures how steps are executed.
type EngineDTO struct {
	Backend string `yaml:"backend" toml:"backend"`
	Timeout string `yaml:"timeout" toml:"timeout"`
	PTY     bool   `yaml:"pty" toml:"pty"`
	WorkDir string `yaml:"workdir" toml:"workdir"`
}

// ToolchainDTO pins the tool versions used by the built-in tasks.
type ToolchainDTO struct {
	RustupURL          string `yaml:"rustupURL" toml:"rustupURL"`
	ClippySarifVersion string `yaml:"clippySarifVersion" toml:"clippySarifVersion"`
	SarifFmtVersion    string `yaml:"sarifFmtVersion" toml:"sarifFmtVersion"`
	LlvmCovVersion     string `yaml:"llvmCovVersion" toml:"llvmCovVersion"`
}

// EnvVarDTO declares an environment variable.
type EnvVarDTO struct {
	Name     string  `yaml:"name" toml:"name"`
	Default  *string `yaml:"default" toml:"default"`
	Required bool    `yaml:"required" toml:"required"`
}

// TelemetryDTO configures span export.
type TelemetryDTO struct {
	Exporter string `yaml:"exporter" toml:"exporter"`
	File     string `yaml:"file" toml:"file"`
}

// LogDTO configures the logger.
type LogDTO struct {
	JSON  bool   `yaml:"json" toml:"json"`
	Level string `yaml:"level" toml:"level"`
}

// TaskDTO represents a task definition in the project file.
type TaskDTO struct {
	Description string      `yaml:"description" toml:"description"`
	Packages    []string    `yaml:"packages" toml:"packages"`
	Paths       []string    `yaml:"paths" toml:"paths"`
	Environment []EnvVarDTO `yaml:"environment" toml:"environment"`
	Artifacts   []string    `yaml:"artifacts" toml:"artifacts"`
	Steps       []StepDTO   `yaml:"steps" toml:"steps"`
}

// StepDTO represents one step of a task.
type StepDTO struct {
	Cmd    []string   `yaml:"cmd" toml:"cmd"`
	Args   bool       `yaml:"args" toml:"args"`
	Label  string     `yaml:"label" toml:"label"`
	SkipIf *SkipIfDTO `yaml:"skipIf" toml:"skipIf"`
}

// SkipIfDTO declares a skip guard. Exactly one field must be set.
type SkipIfDTO struct {
	Command string `yaml:"command" toml:"command"`
	File    string `yaml:"file" toml:"file"`
	Shell   string `yaml:"shell" toml:"shell"`
}
