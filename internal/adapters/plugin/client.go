package plugin

import (
	"context"
	"path/filepath"
	"time"

	pluginv1 "go.trai.ch/rustci/api/plugin/v1"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/rustci/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client implements ports.PluginClient.
type Client struct {
	conn   *grpc.ClientConn
	client pluginv1.PluginServiceClient
}

// Dialer implements ports.PluginDialer.
type Dialer struct {
	// Options are appended to the default dial options.
	Options []grpc.DialOption
}

// Dial connects to the plugin service over the Unix socket at socketPath.
// grpc.NewClient connects lazily, so an absent service surfaces on the first call.
func (d Dialer) Dial(_ context.Context, socketPath string) (ports.PluginClient, error) {
	abs, err := filepath.Abs(socketPath)
	if err != nil {
		return nil, zerr.Wrap(err, "cannot resolve socket path")
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, d.Options...)
	conn, err := grpc.NewClient("unix://"+abs, opts...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPluginUnavailable, "plugin client creation failed"), "socket", abs)
	}

	return &Client{
		conn:   conn,
		client: pluginv1.NewPluginServiceClient(conn),
	}, nil
}

// Invoke implements ports.PluginClient.
func (c *Client) Invoke(ctx context.Context, operation, args string) (string, error) {
	resp, err := c.client.Invoke(ctx, &pluginv1.InvokeRequest{Operation: operation, Args: args})
	if err != nil {
		return "", zerr.With(fromStatus(err), "operation", operation)
	}
	return resp.Output, nil
}

// ListOperations implements ports.PluginClient.
func (c *Client) ListOperations(ctx context.Context) ([]ports.OperationInfo, error) {
	resp, err := c.client.ListOperations(ctx, &pluginv1.ListOperationsRequest{})
	if err != nil {
		return nil, fromStatus(err)
	}

	ops := make([]ports.OperationInfo, 0, len(resp.Operations))
	for _, op := range resp.Operations {
		ops = append(ops, ports.OperationInfo{
			Name:        op.Name,
			Description: op.Description,
			AcceptsArgs: op.AcceptsArgs,
			Fingerprint: op.Fingerprint,
		})
	}
	return ops, nil
}

// Ping implements ports.PluginClient.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	resp, err := c.client.Ping(ctx, &pluginv1.PingRequest{})
	if err != nil {
		return 0, fromStatus(err)
	}
	return time.Duration(resp.IdleRemainingSeconds) * time.Second, nil
}

// Shutdown implements ports.PluginClient.
func (c *Client) Shutdown(ctx context.Context) error {
	_, err := c.client.Shutdown(ctx, &pluginv1.ShutdownRequest{})
	return fromStatus(err)
}

// Close implements ports.PluginClient.
func (c *Client) Close() error {
	return c.conn.Close()
}
