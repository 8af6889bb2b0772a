// Package linear provides a synchronous, line-buffered progress renderer for CI environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/rustci/internal/ui/output"
	"go.trai.ch/rustci/internal/ui/style"
)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It writes chronological progress lines prefixed with the task name.
// Step output goes to logs, status lines to status.
type Renderer struct {
	logs   io.Writer
	status io.Writer
	output *termenv.Output

	mu    sync.Mutex
	spans map[string]*spanState
}

type spanState struct {
	task      string
	name      string
	step      bool
	startTime time.Time
	partial   bytes.Buffer
}

// NewRenderer creates a new Renderer. Nil writers default to stderr so
// progress never mixes with the captured output printed on stdout.
func NewRenderer(logs, status io.Writer) *Renderer {
	if logs == nil {
		logs = os.Stderr
	}
	if status == nil {
		status = os.Stderr
	}

	return &Renderer{
		logs:   logs,
		status: status,
		output: output.NewWithProfile(status, output.ColorProfileANSI),
		spans:  make(map[string]*spanState),
	}
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all partial lines.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.spans {
		r.flushLocked(s)
	}
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the number of planned steps.
func (r *Renderer) OnPlanEmit(task string, steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.status, "%s Planning %d step(s)\n", r.prefix(task), len(steps))
}

// OnTaskStart prints a start line. Spans with a known parent are steps of that task.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &spanState{task: name, name: name, startTime: startTime}
	if parent, ok := r.spans[parentID]; ok && parentID != "" {
		s.task = parent.task
		s.step = true
	}
	r.spans[spanID] = s

	if s.step {
		arrow := r.output.String(style.Arrow).Faint().String()
		_, _ = fmt.Fprintf(r.status, "%s %s %s\n", r.prefix(s.task), arrow, name)
		return
	}
	_, _ = fmt.Fprintf(r.status, "%s Starting...\n", r.prefix(s.task))
}

// OnTaskLog buffers data and prints complete lines with the task prefix.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.spans[spanID]
	if !ok {
		return
	}

	s.partial.Write(data)
	for {
		idx := bytes.IndexByte(s.partial.Bytes(), '\n')
		if idx < 0 {
			return
		}
		line := s.partial.Next(idx + 1)
		r.printLineLocked(s.task, line)
	}
}

// OnTaskComplete flushes the remaining output and prints the outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error, skipped bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.spans[spanID]
	if !ok {
		return
	}
	r.flushLocked(s)
	delete(r.spans, spanID)

	prefix := r.prefix(s.task)
	duration := endTime.Sub(s.startTime).Round(time.Millisecond)
	label := ""
	if s.step {
		label = s.name + " "
	}

	switch {
	case skipped:
		symbol := r.output.String(style.Tilde).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(r.status, "%s %s Skipped %s\n", prefix, symbol, s.name)
	case err != nil:
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.status, "%s %s %sFailed after %v: %v\n", prefix, symbol, label, duration, err)
	default:
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.status, "%s %s %sCompleted in %v\n", prefix, symbol, label, duration)
	}
}

func (r *Renderer) prefix(task string) string {
	return r.output.String(fmt.Sprintf("[%s]", task)).Faint().String()
}

// flushLocked prints a pending partial line. Must be called with r.mu held.
func (r *Renderer) flushLocked(s *spanState) {
	if s.partial.Len() > 0 {
		r.printLineLocked(s.task, s.partial.Bytes())
		s.partial.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(task string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.logs, "[%s] %s\n", task, line)
}
