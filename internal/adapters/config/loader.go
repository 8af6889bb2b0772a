// Package config discovers and loads the rustci project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "RUSTCI_LOG_LEVEL"

// Loader implements ports.ConfigLoader for rustci.yaml and rustci.toml files.
type Loader struct {
	FS        FileSystem
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader reading from the host filesystem and environment.
func NewLoader() *Loader {
	return &Loader{
		FS:        OSFS{},
		LookupEnv: os.LookupEnv,
	}
}

// Load walks up from cwd to the nearest project file and builds the project.
// When no project file exists, the default project rooted at cwd is returned.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	path, found := l.findProjectFile(cwd)

	project := domain.DefaultProject(cwd)
	if found {
		var err error
		if project, err = l.loadProjectfile(path); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if err := l.applyEnv(project); err != nil {
		return nil, err
	}
	project.Settings.WorkDir = resolvePath(project.Root, project.Settings.WorkDir)
	return project, nil
}

// findProjectFile returns the nearest project file. YAML wins over TOML in the same directory.
func (l *Loader) findProjectFile(cwd string) (string, bool) {
	currentDir := cwd
	for {
		for _, name := range []string{domain.ProjectFileName, domain.ProjectFileNameTOML} {
			candidate := filepath.Join(currentDir, name)
			if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadProjectfile(path string) (*domain.Project, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "cannot read project file")
	}

	var pf Projectfile
	if err := decode(path, data, &pf); err != nil {
		return nil, err
	}

	settings, err := buildSettings(&pf)
	if err != nil {
		return nil, err
	}

	tasks, err := buildTasks(pf.Tasks)
	if err != nil {
		return nil, err
	}

	return &domain.Project{
		Root:     filepath.Dir(path),
		Settings: settings,
		Tasks:    tasks,
	}, nil
}

// decode rejects unknown keys so typos do not silently fall back to defaults.
func decode(path string, data []byte, pf *Projectfile) error {
	if filepath.Ext(path) == ".toml" {
		md, err := toml.Decode(string(data), pf)
		if err != nil {
			return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "cannot parse project file")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "unknown field in project file")
			return zerr.With(err, "field", undecoded[0].String())
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(pf); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "cannot parse project file")
	}
	return nil
}

func buildSettings(pf *Projectfile) (domain.Settings, error) {
	s := domain.DefaultSettings()

	backend, err := domain.ParseBackend(pf.Engine.Backend)
	if err != nil {
		return s, zerr.With(err, "field", "engine.backend")
	}
	s.Backend = backend

	if pf.Engine.Timeout != "" {
		timeout, err := time.ParseDuration(pf.Engine.Timeout)
		if err != nil || timeout < 0 {
			invalid := zerr.With(zerr.Wrap(domain.ErrInvalidDuration, "cannot parse timeout"), "field", "engine.timeout")
			return s, zerr.With(invalid, "value", pf.Engine.Timeout)
		}
		s.Timeout = timeout
	}
	s.PTY = pf.Engine.PTY
	if pf.Engine.WorkDir != "" {
		s.WorkDir = pf.Engine.WorkDir
	}

	overrideString(&s.Toolchain.RustupURL, pf.Toolchain.RustupURL)
	overrideString(&s.Toolchain.ClippySarifVersion, pf.Toolchain.ClippySarifVersion)
	overrideString(&s.Toolchain.SarifFmtVersion, pf.Toolchain.SarifFmtVersion)
	overrideString(&s.Toolchain.LlvmCovVersion, pf.Toolchain.LlvmCovVersion)

	if s.Environment, err = buildEnvVars(pf.Environment, "environment"); err != nil {
		return s, err
	}
	s.Passthrough = slices.Clone(pf.Passthrough)

	exporter, err := domain.ParseExporter(pf.Telemetry.Exporter)
	if err != nil {
		return s, zerr.With(err, "field", "telemetry.exporter")
	}
	s.Telemetry.Exporter = exporter
	overrideString(&s.Telemetry.File, pf.Telemetry.File)

	level, err := domain.ParseLogLevel(pf.Log.Level)
	if err != nil {
		return s, zerr.With(err, "field", "log.level")
	}
	s.Log = domain.LogSettings{JSON: pf.Log.JSON, Level: level}

	return s, nil
}

func buildEnvVars(dtos []EnvVarDTO, field string) ([]domain.EnvVar, error) {
	vars := make([]domain.EnvVar, 0, len(dtos))
	for i, dto := range dtos {
		if strings.TrimSpace(dto.Name) == "" {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "environment variable must have a name")
			return nil, zerr.With(err, "field", fmt.Sprintf("%s[%d].name", field, i))
		}
		v := domain.EnvVar{Name: dto.Name, Required: dto.Required}
		if dto.Default != nil {
			v.Default = *dto.Default
			v.HasDefault = true
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// buildTasks converts task DTOs in name order.
func buildTasks(dtos map[string]*TaskDTO) ([]*domain.TaskDefinition, error) {
	names := make([]string, 0, len(dtos))
	for name := range dtos {
		names = append(names, name)
	}
	slices.Sort(names)

	tasks := make([]*domain.TaskDefinition, 0, len(names))
	for _, name := range names {
		task, err := buildTask(name, dtos[name])
		if err != nil {
			return nil, zerr.With(err, "task", name)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func buildTask(name string, dto *TaskDTO) (*domain.TaskDefinition, error) {
	if dto == nil {
		dto = &TaskDTO{}
	}

	steps := make([]domain.Command, 0, len(dto.Steps))
	for i, stepDTO := range dto.Steps {
		field := fmt.Sprintf("tasks.%s.steps[%d]", name, i)
		step, err := buildStep(stepDTO)
		if err != nil {
			return nil, zerr.With(err, "field", field)
		}
		steps = append(steps, step)
	}

	env, err := buildEnvVars(dto.Environment, "tasks."+name+".environment")
	if err != nil {
		return nil, err
	}

	return domain.NewTask(name, domain.TaskSpec{
		Description:   dto.Description,
		Prerequisites: dto.Packages,
		Environment:   env,
		Paths:         dto.Paths,
		Artifacts:     dto.Artifacts,
	}, steps...)
}

func buildStep(dto StepDTO) (domain.Command, error) {
	if len(dto.Cmd) == 0 {
		return domain.Command{}, zerr.Wrap(domain.ErrInvalidCommand, "step must declare a command")
	}
	step, err := domain.NewCommand(dto.Cmd[0], dto.Cmd[1:]...)
	if err != nil {
		return domain.Command{}, err
	}

	if dto.Args {
		step = step.AcceptingArgs()
	}
	if dto.Label != "" {
		step = step.WithLabel(dto.Label)
	}
	if dto.SkipIf != nil {
		guard, err := buildGuard(dto.SkipIf)
		if err != nil {
			return domain.Command{}, err
		}
		step = step.WithGuard(guard)
	}
	return step, nil
}

func buildGuard(dto *SkipIfDTO) (*domain.SkipGuard, error) {
	set := 0
	kind, value := domain.GuardKind(""), ""
	if dto.Command != "" {
		set++
		kind, value = domain.GuardCommand, dto.Command
	}
	if dto.File != "" {
		set++
		kind, value = domain.GuardFile, dto.File
	}
	if dto.Shell != "" {
		set++
		kind, value = domain.GuardShell, dto.Shell
	}
	if set != 1 {
		return nil, zerr.Wrap(domain.ErrInvalidGuard, "skipIf must set exactly one guard")
	}
	return domain.NewSkipGuard(kind, value)
}

func (l *Loader) applyEnv(project *domain.Project) error {
	if l.LookupEnv == nil {
		return nil
	}
	if raw, ok := l.LookupEnv(LogLevelEnv); ok && raw != "" {
		level, err := domain.ParseLogLevel(raw)
		if err != nil {
			return zerr.With(err, "env", LogLevelEnv)
		}
		project.Settings.Log.Level = level
	}
	return nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// resolvePath makes p absolute relative to root.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
