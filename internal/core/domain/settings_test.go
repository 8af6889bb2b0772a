package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/core/domain"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Backend
	}{
		{"", domain.BackendPkgx},
		{"pkgx", domain.BackendPkgx},
		{"NIX", domain.BackendNix},
		{" host ", domain.BackendHost},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseBackend(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseBackend("docker")
	assert.ErrorIs(t, err, domain.ErrInvalidBackend)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := domain.ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, domain.LogLevelDebug, lvl)
	assert.Equal(t, "DEBUG", lvl.String())

	lvl, err = domain.ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, domain.LogLevelInfo, lvl)

	_, err = domain.ParseLogLevel("loud")
	assert.ErrorIs(t, err, domain.ErrInvalidLogLevel)

	assert.Equal(t, "INFO", domain.LogLevel(999).String())
}

func TestParseExporter(t *testing.T) {
	e, err := domain.ParseExporter("stdout")
	require.NoError(t, err)
	assert.Equal(t, domain.ExporterStdout, e)

	_, err = domain.ParseExporter("jaeger")
	assert.ErrorIs(t, err, domain.ErrInvalidExporter)
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, domain.BackendPkgx, s.Backend)
	assert.Equal(t, "0.3.0", s.Toolchain.ClippySarifVersion)
	assert.Equal(t, "v0.5.36", s.Toolchain.LlvmCovVersion)
	assert.Equal(t, ".rustci/trace.json", s.Telemetry.File)
	assert.Zero(t, s.Timeout)
}
