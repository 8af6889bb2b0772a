package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Command describes one step of a task: a program, its arguments and an
// optional guard that marks the step as already satisfied.
// A Command is immutable; the With* methods return modified copies.
type Command struct {
	Program string
	Args    []string
	Guard   *SkipGuard
	// AcceptsArgs marks the step that receives invocation arguments.
	AcceptsArgs bool
	// Label replaces the rendered command line in progress output.
	Label string
}

// NewCommand validates and returns a command descriptor.
func NewCommand(program string, args ...string) (Command, error) {
	if strings.TrimSpace(program) == "" {
		err := zerr.Wrap(ErrInvalidCommand, "cannot build command descriptor")
		return Command{}, zerr.With(err, "args", strings.Join(args, " "))
	}
	return Command{
		Program: program,
		Args:    slices.Clone(args),
	}, nil
}

// MustCommand is like NewCommand but panics on an invalid descriptor.
// It is meant for statically known commands.
func MustCommand(program string, args ...string) Command {
	c, err := NewCommand(program, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// ShellCommand returns a command that runs script through sh -c.
func ShellCommand(script string) Command {
	return MustCommand("sh", "-c", script)
}

// WithGuard returns a copy of c skipped when g is satisfied.
func (c Command) WithGuard(g *SkipGuard) Command {
	c.Args = slices.Clone(c.Args)
	c.Guard = g
	return c
}

// WithLabel returns a copy of c rendered as label.
func (c Command) WithLabel(label string) Command {
	c.Args = slices.Clone(c.Args)
	c.Label = label
	return c
}

// AcceptingArgs returns a copy of c that receives invocation arguments.
func (c Command) AcceptingArgs() Command {
	c.Args = slices.Clone(c.Args)
	c.AcceptsArgs = true
	return c
}

// AppendingArgs returns a copy of c with extra appended to its arguments.
func (c Command) AppendingArgs(extra ...string) Command {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	args = append(args, extra...)
	c.Args = args
	return c
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// Line renders the command as a shell-quoted line.
func (c Command) Line() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range c.Argv() {
		parts = append(parts, shellQuote(p))
	}
	return strings.Join(parts, " ")
}

// Display returns the label if set, otherwise the command line.
func (c Command) Display() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Line()
}

func (c Command) clone() Command {
	c.Args = slices.Clone(c.Args)
	return c
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./=:,+@%"

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
