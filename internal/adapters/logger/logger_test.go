package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rustci/internal/adapters/logger"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Output: &buf})

	l.Info("starting")
	l.Warn("careful")
	l.Debug("hidden")

	assert.Equal(t, "starting\n! careful\n", buf.String())
}

func TestLogger_SetLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Output: &buf, Level: domain.LogLevelWarn})

	l.Info("dropped")
	l.Warn("kept")
	assert.Equal(t, "! kept\n", buf.String())

	buf.Reset()
	l.SetLevel(domain.LogLevelDebug)
	l.Debug("step output")
	assert.Equal(t, "step output\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.SetJSON(true)

	l.Error(zerr.With(zerr.Wrap(domain.ErrUnknownTask, "task lookup failed"), "task", "fmt"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, buf.String(), "unknown task")
}

func TestLogger_ErrorHierarchy(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Output: &buf})

	inner := errors.New("exit status 101")
	l.Error(zerr.With(zerr.Wrap(inner, "command failed"), "exit_code", 101))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: command failed\n"), out)
	assert.Contains(t, out, "       exit_code: 101\n")
	assert.Contains(t, out, "  Caused by:\n    → exit status 101\n")
}

func TestLogger_ErrorTaskPrefix(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Output: &buf})

	err := zerr.With(zerr.Wrap(domain.ErrUnknownTask, "task lookup failed"), "task", "deploy")
	l.Error(errors.Join(err, domain.ErrTaskExecutionFailed))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[deploy] ✗ Error: task lookup failed\n"), out)
	assert.NotContains(t, out, "task: deploy")
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Output: &buf})
	l.Error(nil)
	assert.Empty(t, buf.String())
}
