package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called with the steps of the task about to run.
	OnPlanEmit(task string, steps []string)

	// OnTaskStart is called when a task or step begins execution.
	// parentID is empty for the task span.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a step emits output.
	// data may contain partial lines or ANSI sequences.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task or step finishes.
	// skipped is set for steps whose guard was satisfied.
	OnTaskComplete(spanID string, endTime time.Time, err error, skipped bool)
}
