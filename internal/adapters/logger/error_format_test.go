package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rustci/internal/adapters/logger"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{
			name: "failure marker",
			err: errors.Join(domain.ErrTaskExecutionFailed,
				zerr.Wrap(errors.Join(domain.ErrUnknownTask, errors.New("deploy")), "task lookup failed")),
			wantMessages: []string{"task lookup failed", "unknown task\ndeploy"},
		},
		{
			name:         "nil",
			err:          nil,
			wantMessages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "package", "wget")
	outer := zerr.With(zerr.Wrap(inner, "cannot prepare task"), "task", "clippy")

	entries := logger.CollectErrorEntries(outer)

	assert.Len(t, entries, 2)
	assert.Equal(t, "clippy", entries[0].Metadata["task"])
	assert.Equal(t, "wget", entries[1].Metadata["package"])
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name: "caused by",
			entries: []logger.ErrorEntry{
				{Message: "first"},
				{Message: "second"},
				{Message: "third"},
			},
			want: "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "step failed",
				Metadata: map[string]any{"task": "test", "exit_code": 101},
			}},
			want: "Error: step failed\n       exit_code: 101\n       task: test",
		},
		{
			name: "multiline cause with metadata",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2", Metadata: map[string]any{"step": 2}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2\n      step: 2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
