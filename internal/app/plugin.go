package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.trai.ch/rustci/internal/adapters/detector"
	"go.trai.ch/rustci/internal/adapters/plugin"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
)

// ServeOptions configures the plugin service.
type ServeOptions struct {
	// Socket defaults to .rustci/plugin.sock under the project root.
	Socket      string
	IdleTimeout time.Duration
}

// Serve exposes the registered tasks over gRPC until ctx is done, a client
// requests shutdown or the service idles for IdleTimeout.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = domain.DefaultIdleTimeout
	}

	srv := plugin.NewServer(plugin.NewLifecycle(idle), pluginHandler{app: a}, a.logger)
	err := srv.Serve(ctx, a.socketPath(opts.Socket))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// CallOptions selects the service a call goes to.
type CallOptions struct {
	Socket string
}

// Call invokes operation on a running plugin service and returns its output.
func (a *App) Call(ctx context.Context, operation, args string, opts CallOptions) (string, error) {
	var out string
	err := a.withClient(ctx, opts.Socket, func(c ports.PluginClient) error {
		var err error
		out, err = c.Invoke(ctx, operation, args)
		return err
	})
	if err != nil {
		return "", errors.Join(err, domain.ErrTaskExecutionFailed)
	}
	return out, nil
}

// PluginStatus describes a running plugin service.
type PluginStatus struct {
	IdleRemaining time.Duration
	Operations    []ports.OperationInfo
}

// Status pings the plugin service and lists its operations.
func (a *App) Status(ctx context.Context, opts CallOptions) (*PluginStatus, error) {
	status := &PluginStatus{}
	err := a.withClient(ctx, opts.Socket, func(c ports.PluginClient) error {
		var err error
		if status.IdleRemaining, err = c.Ping(ctx); err != nil {
			return err
		}
		status.Operations, err = c.ListOperations(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Stop asks the plugin service to shut down.
func (a *App) Stop(ctx context.Context, opts CallOptions) error {
	return a.withClient(ctx, opts.Socket, func(c ports.PluginClient) error {
		return c.Shutdown(ctx)
	})
}

func (a *App) withClient(ctx context.Context, socket string, fn func(ports.PluginClient) error) error {
	client, err := a.dialer.Dial(ctx, a.socketPath(socket))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	return fn(client)
}

func (a *App) socketPath(socket string) string {
	if socket == "" {
		socket = domain.DefaultPluginSocketPath()
	}
	if filepath.IsAbs(socket) {
		return socket
	}
	return filepath.Join(a.project.Root, socket)
}

// pluginHandler runs plugin invocations without progress rendering.
type pluginHandler struct {
	app *App
}

func (h pluginHandler) Execute(ctx context.Context, operation, args string) (string, string, error) {
	res, err := h.app.Run(ctx, operation, args, InvokeOptions{OutputMode: detector.ModeQuiet.String()})
	if err != nil {
		return "", "", err
	}
	return res.CapturedOutput, res.RunID, nil
}

func (h pluginHandler) Operations() []ports.OperationInfo {
	return h.app.Tasks()
}
