package ports

import (
	"context"
	"time"
)

//go:generate mockgen -source=plugin.go -destination=mocks/mock_plugin.go -package=mocks

// OperationInfo describes an operation exposed to the host.
type OperationInfo struct {
	Name        string
	Description string
	AcceptsArgs bool
	Fingerprint string
}

// PluginClient defines the interface for talking to a running plugin service.
type PluginClient interface {
	// Invoke runs the named operation with args and returns its captured output.
	Invoke(ctx context.Context, operation, args string) (string, error)

	// ListOperations returns the operations the service exposes.
	ListOperations(ctx context.Context) ([]OperationInfo, error)

	// Ping checks the service is alive and resets its inactivity timer.
	Ping(ctx context.Context) (idleRemaining time.Duration, err error)

	// Shutdown requests a graceful shutdown.
	Shutdown(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// PluginDialer connects to a plugin service listening on a socket.
type PluginDialer interface {
	Dial(ctx context.Context, socketPath string) (PluginClient, error)
}
