package nix_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/adapters/nix"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestManager_Ensure(t *testing.T) {
	var calls [][]string
	output := func(_ context.Context, _ domain.Environment, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		pkg := args[len(args)-1]
		return []byte(`[{"drvPath":"/nix/store/drv","outputs":{"out":"/nix/store/` + pkg[len("nixpkgs#"):] + `"}}]`), nil
	}

	m := nix.NewManagerWithOutput(nix.DefaultFlake, output)
	dirs, err := m.Ensure(context.Background(), []string{"curl", "wget"}, domain.Environment{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/nix/store/curl/bin", "/nix/store/wget/bin"}, dirs)
	assert.Equal(t, [][]string{
		{"nix", "build", "--json", "--no-link", "nixpkgs#curl"},
		{"nix", "build", "--json", "--no-link", "nixpkgs#wget"},
	}, calls)
}

func TestManager_Ensure_NoPackages(t *testing.T) {
	output := func(context.Context, domain.Environment, string, ...string) ([]byte, error) {
		t.Fatal("nix must not be invoked without packages")
		return nil, nil
	}

	dirs, err := nix.NewManagerWithOutput(nix.DefaultFlake, output).Ensure(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestManager_Ensure_BuildFails(t *testing.T) {
	output := func(context.Context, domain.Environment, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	_, err := nix.NewManagerWithOutput(nix.DefaultFlake, output).Ensure(context.Background(), []string{"curl"}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrPackageInstallFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "curl", zErr.Metadata()["package"])
}

func TestParseBuildResults(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr string
	}{
		{
			name:   "out path",
			output: `[{"drvPath":"/nix/store/drv","outputs":{"out":"/nix/store/out-path"}}]`,
			want:   "/nix/store/out-path",
		},
		{
			name:    "invalid json",
			output:  `invalid json`,
			wantErr: "failed to parse nix build JSON output",
		},
		{
			name:    "empty results",
			output:  `[]`,
			wantErr: "empty build results from nix build",
		},
		{
			name:    "missing out",
			output:  `[{"drvPath":"/nix/store/drv","outputs":{"dev":"/nix/store/dev-path"}}]`,
			wantErr: "no 'out' output found in build results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nix.ParseBuildResults([]byte(tt.output), "tool")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrPackageInstallFailed)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
