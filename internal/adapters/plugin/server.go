// Package plugin exposes tasks to a host over gRPC on a Unix socket.
package plugin

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"sync"

	pluginv1 "go.trai.ch/rustci/api/plugin/v1"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
)

// Handler runs operations for the server.
type Handler interface {
	// Execute runs operation with args and returns its captured output and run ID.
	Execute(ctx context.Context, operation, args string) (output, runID string, err error)
	// Operations lists the exposed operations.
	Operations() []ports.OperationInfo
}

// Server implements the gRPC plugin service.
type Server struct {
	pluginv1.UnimplementedPluginServiceServer
	lifecycle  *Lifecycle
	handler    Handler
	logger     ports.Logger
	grpcServer *grpc.Server

	// mu serialises invocations.
	mu sync.Mutex
}

// NewServer creates a new plugin server.
func NewServer(lifecycle *Lifecycle, handler Handler, logger ports.Logger) *Server {
	s := &Server{
		lifecycle:  lifecycle,
		handler:    handler,
		logger:     logger,
		grpcServer: grpc.NewServer(),
	}
	pluginv1.RegisterPluginServiceServer(s.grpcServer, s)
	return s
}

// Serve listens on the Unix socket at socketPath until ctx is done, a
// Shutdown request arrives or the lifecycle times out.
func (s *Server) Serve(ctx context.Context, socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create socket directory")
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen on socket"), "socket", socketPath)
	}
	defer func() { _ = os.Remove(socketPath) }()

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	s.logger.Info("plugin service listening on " + socketPath)
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on lis. It returns nil on Shutdown or idle timeout and ctx.Err() on cancellation.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return ctx.Err()
	case <-s.lifecycle.ShutdownChan():
		s.logger.Info("plugin service shutting down")
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Invoke implements PluginService.Invoke.
func (s *Server) Invoke(ctx context.Context, req *pluginv1.InvokeRequest) (*pluginv1.InvokeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	release := s.lifecycle.Hold()
	defer release()

	output, runID, err := s.handler.Execute(ctx, req.Operation, req.Args)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pluginv1.InvokeResponse{Output: output, RunID: runID}, nil
}

// ListOperations implements PluginService.ListOperations.
func (s *Server) ListOperations(_ context.Context, _ *pluginv1.ListOperationsRequest) (*pluginv1.ListOperationsResponse, error) {
	s.lifecycle.ResetTimer()

	ops := s.handler.Operations()
	resp := &pluginv1.ListOperationsResponse{Operations: make([]*pluginv1.Operation, 0, len(ops))}
	for _, op := range ops {
		resp.Operations = append(resp.Operations, &pluginv1.Operation{
			Name:        op.Name,
			Description: op.Description,
			AcceptsArgs: op.AcceptsArgs,
			Fingerprint: op.Fingerprint,
		})
	}
	return resp, nil
}

// Ping implements PluginService.Ping.
func (s *Server) Ping(_ context.Context, _ *pluginv1.PingRequest) (*pluginv1.PingResponse, error) {
	s.lifecycle.ResetTimer()
	return &pluginv1.PingResponse{
		IdleRemainingSeconds: int64(s.lifecycle.IdleRemaining().Seconds()),
	}, nil
}

// Shutdown implements PluginService.Shutdown.
func (s *Server) Shutdown(_ context.Context, _ *pluginv1.ShutdownRequest) (*pluginv1.ShutdownResponse, error) {
	s.lifecycle.Shutdown()
	return &pluginv1.ShutdownResponse{Success: true}, nil
}
