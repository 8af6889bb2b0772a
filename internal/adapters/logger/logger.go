// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/rustci/internal/core/domain"
)

// zerrError describes the parts of a zerr.Error the formatter reads.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Options configures a Logger.
type Options struct {
	JSON   bool
	Level  domain.LogLevel
	Output io.Writer
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a pretty printing Logger writing to stderr at info level.
func New() *Logger {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Logger from opts.
func NewWithOptions(opts Options) *Logger {
	l := &Logger{
		level:    &slog.LevelVar{},
		jsonMode: opts.JSON,
		output:   opts.Output,
	}
	l.level.Set(slog.Level(opts.Level))
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination, preserving the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// SetLevel changes the minimum level of emitted records.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewPrettyHandler(w, opts)
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Error logs err. Pretty mode prints the chain hierarchically with its metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	entries, attrs := liftContext(collectErrorEntries(err))
	l.logger.Error(formatErrorEntries(entries), attrs...)
}

// liftContext moves the outermost task and step metadata out of the entries so
// the handler can print them as a prefix.
func liftContext(entries []ErrorEntry) ([]ErrorEntry, []any) {
	var attrs []any
	for _, key := range []string{TaskKey, StepKey} {
		for i, entry := range entries {
			v, ok := entry.Metadata[key]
			if !ok {
				continue
			}
			attrs = append(attrs, slog.Any(key, v))
			md := maps.Clone(entry.Metadata)
			delete(md, key)
			entries[i].Metadata = md
			break
		}
	}
	return entries, attrs
}

// collectErrorEntries walks the chain of zerr errors. The first error that is
// not a zerr error ends the walk with its full message.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		current = unmarkFailure(current)
		zErr, ok := current.(zerrError)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entries = append(entries, ErrorEntry{Message: zErr.Message(), Metadata: zErr.Metadata()})
		current = errors.Unwrap(current)
	}
	return entries
}

// unmarkFailure drops the ErrTaskExecutionFailed marker joined onto a single cause.
func unmarkFailure(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	var rest []error
	for _, e := range joined.Unwrap() {
		if e != domain.ErrTaskExecutionFailed { //nolint:errorlint // identity check on the sentinel
			rest = append(rest, e)
		}
	}
	if len(rest) != 1 {
		return err
	}
	return rest[0]
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lead, indent = "    → ", "      "
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}
