package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// GuardKind identifies how a skip guard is evaluated.
type GuardKind string

const (
	// GuardCommand is satisfied when the value resolves to an executable on PATH.
	GuardCommand GuardKind = "command"
	// GuardFile is satisfied when the value names an existing path.
	GuardFile GuardKind = "file"
	// GuardShell is satisfied when the value, run by sh -c, exits 0.
	GuardShell GuardKind = "shell"
)

// SkipGuard describes a condition under which a step is already satisfied
// and should be skipped.
type SkipGuard struct {
	Kind  GuardKind
	Value string
}

// NewSkipGuard validates and returns a guard.
func NewSkipGuard(kind GuardKind, value string) (*SkipGuard, error) {
	switch kind {
	case GuardCommand, GuardFile, GuardShell:
	default:
		return nil, zerr.With(zerr.Wrap(ErrInvalidGuard, "unknown guard kind"), "kind", string(kind))
	}
	if strings.TrimSpace(value) == "" {
		return nil, zerr.With(zerr.Wrap(ErrInvalidGuard, "guard value must not be empty"), "kind", string(kind))
	}
	return &SkipGuard{Kind: kind, Value: value}, nil
}

// SkipIfCommandExists returns a guard satisfied when name is on PATH.
// It panics on an empty name; use NewSkipGuard for untrusted input.
func SkipIfCommandExists(name string) *SkipGuard {
	return mustGuard(GuardCommand, name)
}

// SkipIfFileExists returns a guard satisfied when path exists.
func SkipIfFileExists(path string) *SkipGuard {
	return mustGuard(GuardFile, path)
}

// SkipIfShell returns a guard satisfied when the predicate script exits 0.
func SkipIfShell(script string) *SkipGuard {
	return mustGuard(GuardShell, script)
}

func mustGuard(kind GuardKind, value string) *SkipGuard {
	g, err := NewSkipGuard(kind, value)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the guard for traces.
func (g *SkipGuard) String() string {
	if g == nil {
		return ""
	}
	return string(g.Kind) + ":" + g.Value
}
