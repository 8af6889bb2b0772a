package pluginv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	invokeMethod         = "/" + ServiceName + "/Invoke"
	listOperationsMethod = "/" + ServiceName + "/ListOperations"
	pingMethod           = "/" + ServiceName + "/Ping"
	shutdownMethod       = "/" + ServiceName + "/Shutdown"
)

// PluginServiceClient is the client API for PluginService.
type PluginServiceClient interface {
	Invoke(ctx context.Context, in *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error)
	ListOperations(ctx context.Context, in *ListOperationsRequest, opts ...grpc.CallOption) (*ListOperationsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Shutdown(ctx context.Context, in *ShutdownRequest, opts ...grpc.CallOption) (*ShutdownResponse, error)
}

type pluginServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPluginServiceClient creates a new PluginServiceClient.
func NewPluginServiceClient(cc grpc.ClientConnInterface) PluginServiceClient {
	return &pluginServiceClient{cc}
}

func (c *pluginServiceClient) Invoke(ctx context.Context, in *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error) {
	out := new(InvokeResponse)
	if err := c.cc.Invoke(ctx, invokeMethod, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pluginServiceClient) ListOperations(
	ctx context.Context,
	in *ListOperationsRequest,
	opts ...grpc.CallOption,
) (*ListOperationsResponse, error) {
	out := new(ListOperationsResponse)
	if err := c.cc.Invoke(ctx, listOperationsMethod, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pluginServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, pingMethod, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pluginServiceClient) Shutdown(ctx context.Context, in *ShutdownRequest, opts ...grpc.CallOption) (*ShutdownResponse, error) {
	out := new(ShutdownResponse)
	if err := c.cc.Invoke(ctx, shutdownMethod, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

// PluginServiceServer is the server API for PluginService.
type PluginServiceServer interface {
	Invoke(context.Context, *InvokeRequest) (*InvokeResponse, error)
	ListOperations(context.Context, *ListOperationsRequest) (*ListOperationsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Shutdown(context.Context, *ShutdownRequest) (*ShutdownResponse, error)
	mustEmbedUnimplementedPluginServiceServer()
}

// UnimplementedPluginServiceServer must be embedded by implementations.
type UnimplementedPluginServiceServer struct{}

func (UnimplementedPluginServiceServer) Invoke(context.Context, *InvokeRequest) (*InvokeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Invoke not implemented")
}

func (UnimplementedPluginServiceServer) ListOperations(context.Context, *ListOperationsRequest) (*ListOperationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOperations not implemented")
}

func (UnimplementedPluginServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedPluginServiceServer) Shutdown(context.Context, *ShutdownRequest) (*ShutdownResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Shutdown not implemented")
}

func (UnimplementedPluginServiceServer) mustEmbedUnimplementedPluginServiceServer() {}

// RegisterPluginServiceServer registers srv with a gRPC server.
func RegisterPluginServiceServer(s grpc.ServiceRegistrar, srv PluginServiceServer) {
	s.RegisterService(&PluginService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to a grpc.MethodDesc handler.
func unaryHandler[Req, Resp any](
	method string,
	call func(PluginServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PluginServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PluginServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PluginService_ServiceDesc is the grpc.ServiceDesc for PluginService.
//
//nolint:revive,stylecheck // name matches generated gRPC code
var PluginService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PluginServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invoke", Handler: unaryHandler(invokeMethod, PluginServiceServer.Invoke)},
		{MethodName: "ListOperations", Handler: unaryHandler(listOperationsMethod, PluginServiceServer.ListOperations)},
		{MethodName: "Ping", Handler: unaryHandler(pingMethod, PluginServiceServer.Ping)},
		{MethodName: "Shutdown", Handler: unaryHandler(shutdownMethod, PluginServiceServer.Shutdown)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rustci/plugin/v1/plugin.proto",
}
