package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/adapters/shell"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

var _ ports.GuardEvaluator = (*shell.GuardEvaluator)(nil)

func TestGuardEvaluator_Satisfied(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lcov.info"), nil, 0o600))

	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "cargo-llvm-cov"), []byte("#!/bin/sh\n"), 0o700))

	g := shell.NewGuardEvaluator(dir)
	t.Setenv("RUSTCI_HOST_SECRET", "leaked")
	env := domain.Environment{"PATH": binDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	tests := []struct {
		name  string
		guard *domain.SkipGuard
		want  bool
	}{
		{"nil guard", nil, false},
		{"command on step PATH", domain.SkipIfCommandExists("cargo-llvm-cov"), true},
		{"missing command", domain.SkipIfCommandExists("rustci-missing-tool"), false},
		{"host command", domain.SkipIfCommandExists("sh"), true},
		{"relative file", domain.SkipIfFileExists("lcov.info"), true},
		{"missing file", domain.SkipIfFileExists("rust-clippy-results.sarif"), false},
		{"shell predicate true", domain.SkipIfShell("test -f lcov.info"), true},
		{"shell predicate false", domain.SkipIfShell("exit 1"), false},
		{"host variable hidden", domain.SkipIfShell(`test -z "$RUSTCI_HOST_SECRET"`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Satisfied(context.Background(), tt.guard, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardEvaluator_OnlyStepPath(t *testing.T) {
	g := shell.NewGuardEvaluator(t.TempDir())

	got, err := g.Satisfied(context.Background(), domain.SkipIfCommandExists("sh"), domain.Environment{"PATH": t.TempDir()})
	require.NoError(t, err)
	assert.False(t, got, "the host PATH is not searched")
}

func TestGuardEvaluator_UnknownKind(t *testing.T) {
	g := shell.NewGuardEvaluator(t.TempDir())

	_, err := g.Satisfied(context.Background(), &domain.SkipGuard{Kind: "env", Value: "CI"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidGuard)
}
