package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/rustci/internal/ui/output"
	"go.trai.ch/rustci/internal/ui/style"
)

// Attribute keys the pretty handler renders as a line prefix instead of key=value.
const (
	TaskKey = "task"
	StepKey = "step"
)

// PrettyHandler is a slog.Handler for terminals. Records are printed as
//
//	[task step N] <icon> message key=value ...
//
// where the bracketed prefix appears only when the task or step attributes are set.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, stderr when nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var task, step string
	var rest []string
	collect := func(attr slog.Attr) {
		switch {
		case h.group == "" && attr.Key == TaskKey:
			task = attr.Value.String()
		case h.group == "" && attr.Key == StepKey:
			step = attr.Value.String()
		default:
			rest = append(rest, formatAttr(h.group, attr))
		}
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		collect(attr)
		return true
	})

	var b strings.Builder
	if p := prefix(task, step); p != "" {
		b.WriteString(h.out.String(p).Faint().String())
		b.WriteByte(' ')
	}

	msg := r.Message
	if len(rest) > 0 {
		msg += " " + strings.Join(rest, " ")
	}

	switch {
	case r.Level >= slog.LevelError:
		b.WriteString(h.paint(style.Cross+" "+msg, string(style.Red)))
	case r.Level >= slog.LevelWarn:
		b.WriteString(h.paint(style.Warning+" "+msg, string(style.Yellow)))
	case r.Level >= slog.LevelInfo:
		b.WriteString(h.paint(msg, string(style.Slate)))
	default:
		b.WriteString(h.out.String(msg).Faint().String())
	}
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

func (h *PrettyHandler) paint(s, hex string) string {
	return h.out.String(s).Foreground(termenv.RGBColor(hex)).String()
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

func prefix(task, step string) string {
	switch {
	case task != "" && step != "":
		return "[" + task + " step " + step + "]"
	case task != "":
		return "[" + task + "]"
	case step != "":
		return "[step " + step + "]"
	default:
		return ""
	}
}

// formatAttr formats a single attribute, prefixing the key with the group if set.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
