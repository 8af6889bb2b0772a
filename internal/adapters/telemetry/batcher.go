// Package telemetry adapts OpenTelemetry tracing to the runner's ports and
// forwards span events to a progress renderer.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size (4KB) that triggers a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is how long buffered output may wait before it is flushed.
	DefaultTimeLimit = 50 * time.Millisecond
)

var errBatcherClosed = errors.New("log batcher is closed")

// LogBatcher coalesces step output before it reaches the renderer.
// Data is flushed when the buffer exceeds the size limit, when the time
// limit elapses after the first buffered write, or on Close.
// It is safe for concurrent use.
type LogBatcher struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewLogBatcher returns a LogBatcher calling onFlush with each batch.
// Non-positive limits select the defaults.
func NewLogBatcher(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *LogBatcher {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &LogBatcher{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
	}
}

// Write buffers p.
func (b *LogBatcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errBatcherClosed
	}

	n, _ := b.buffer.Write(p)
	if b.buffer.Len() >= b.sizeLimit {
		b.flushLocked()
		return n, nil
	}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.timeLimit, b.Flush)
	}
	return n, nil
}

// Flush hands buffered data to the callback.
func (b *LogBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.flushLocked()
}

// Close flushes the remaining data. Later writes fail.
func (b *LogBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.flushLocked()
	b.closed = true
	return nil
}

// flushLocked must be called with mu held.
// The callback runs under the lock so batches keep their order.
func (b *LogBatcher) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.buffer.Len() == 0 {
		return
	}
	data := bytes.Clone(b.buffer.Bytes())
	b.buffer.Reset()
	if b.onFlush != nil {
		b.onFlush(data)
	}
}
