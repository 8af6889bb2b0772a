package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

var validTaskNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// TaskDefinition is a named, ordered list of steps together with the
// packages and environment they need. It is immutable once created.
type TaskDefinition struct {
	Name        string
	Description string
	// Prerequisites is a sorted set of package names provisioned before the first step.
	Prerequisites []string
	Steps         []Command
	Environment   []EnvVar
	// Paths are extra PATH entries; they may reference snapshot variables such as $HOME.
	Paths []string
	// Artifacts are files the task is expected to produce, relative to the working directory.
	Artifacts []string
}

// TaskSpec holds the optional parts of a task definition.
type TaskSpec struct {
	Description   string
	Prerequisites []string
	Environment   []EnvVar
	Paths         []string
	Artifacts     []string
}

// NewTask validates and returns a task definition.
func NewTask(name string, spec TaskSpec, steps ...Command) (*TaskDefinition, error) {
	if name == "" || !validTaskNameRegex.MatchString(name) {
		return nil, zerr.With(zerr.Wrap(ErrInvalidTaskName, ErrInvalidTask.Error()), "task", name)
	}
	if len(steps) == 0 {
		err := zerr.Wrap(ErrInvalidTask, "task must declare at least one step")
		return nil, zerr.With(err, "task", name)
	}
	for i, s := range steps {
		if strings.TrimSpace(s.Program) == "" {
			err := zerr.Wrap(ErrInvalidCommand, ErrInvalidTask.Error())
			err = zerr.With(err, "task", name)
			return nil, zerr.With(err, "step", i)
		}
	}

	return &TaskDefinition{
		Name:          name,
		Description:   spec.Description,
		Prerequisites: normalizeSet(spec.Prerequisites),
		Steps:         cloneSteps(steps),
		Environment:   slices.Clone(spec.Environment),
		Paths:         slices.Clone(spec.Paths),
		Artifacts:     slices.Clone(spec.Artifacts),
	}, nil
}

// AcceptsArgs reports whether any step receives invocation arguments.
func (t *TaskDefinition) AcceptsArgs() bool {
	return slices.ContainsFunc(t.Steps, func(c Command) bool { return c.AcceptsArgs })
}

// Bind returns a copy of t in which every step accepting arguments has the
// whitespace separated fields of args appended. Quoting is not interpreted.
func (t *TaskDefinition) Bind(args string) *TaskDefinition {
	fields := strings.Fields(args)
	out := *t
	out.Steps = make([]Command, len(t.Steps))
	for i, s := range t.Steps {
		if s.AcceptsArgs && len(fields) > 0 {
			out.Steps[i] = s.AppendingArgs(fields...)
			continue
		}
		out.Steps[i] = s.clone()
	}
	return &out
}

// Fingerprint returns a stable digest of the definition's executable content.
func (t *TaskDefinition) Fingerprint() string {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.WriteString("\x00")
		}
	}

	write("task", t.Name)
	write(append([]string{"prerequisites"}, t.Prerequisites...)...)
	write(append([]string{"paths"}, t.Paths...)...)
	for _, e := range t.Environment {
		write("env", e.Name, e.Default, strconv.FormatBool(e.HasDefault), strconv.FormatBool(e.Required))
	}
	for _, s := range t.Steps {
		write(append([]string{"step", s.Guard.String(), strconv.FormatBool(s.AcceptsArgs)}, s.Argv()...)...)
	}

	return strconv.FormatUint(d.Sum64(), 16)
}

func normalizeSet(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func cloneSteps(steps []Command) []Command {
	out := make([]Command, len(steps))
	for i, s := range steps {
		out[i] = s.clone()
	}
	return out
}
