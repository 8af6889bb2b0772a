package plugin

import (
	"sync"
	"time"
)

// Lifecycle shuts the plugin service down after a period without requests.
type Lifecycle struct {
	mu           sync.Mutex
	timer        *time.Timer
	startTime    time.Time
	lastActivity time.Time
	timeout      time.Duration
	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewLifecycle creates a new lifecycle manager with the given idle timeout.
func NewLifecycle(timeout time.Duration) *Lifecycle {
	now := time.Now()
	l := &Lifecycle{
		startTime:    now,
		lastActivity: now,
		timeout:      timeout,
		shutdownChan: make(chan struct{}),
	}
	l.timer = time.AfterFunc(timeout, l.triggerShutdown)
	return l
}

// ResetTimer restarts the idle timer. Called on every request.
func (l *Lifecycle) ResetTimer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastActivity = time.Now()
	l.timer.Reset(l.timeout)
}

// Hold stops the idle timer while a long request runs. The returned func restarts it.
func (l *Lifecycle) Hold() (release func()) {
	l.mu.Lock()
	l.timer.Stop()
	l.mu.Unlock()
	return l.ResetTimer
}

// IdleRemaining returns the duration until auto-shutdown.
func (l *Lifecycle) IdleRemaining() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	remaining := l.timeout - time.Since(l.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Uptime returns how long the service has been running.
func (l *Lifecycle) Uptime() time.Duration {
	return time.Since(l.startTime)
}

// ShutdownChan returns a channel that closes when shutdown is triggered.
func (l *Lifecycle) ShutdownChan() <-chan struct{} {
	return l.shutdownChan
}

func (l *Lifecycle) triggerShutdown() {
	l.shutdownOnce.Do(func() {
		close(l.shutdownChan)
	})
}

// Shutdown stops the timer and triggers shutdown.
func (l *Lifecycle) Shutdown() {
	l.mu.Lock()
	l.timer.Stop()
	l.mu.Unlock()
	l.triggerShutdown()
}
