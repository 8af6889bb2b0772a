// Package pluginv1 defines the rustci plugin service.
// The service is hand-written and uses a JSON codec instead of protobuf.
package pluginv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// ServiceName is the fully qualified name of the plugin service.
const ServiceName = "rustci.plugin.v1.PluginService"

// CodecName is the content subtype selected by clients.
const CodecName = "json"

func init() {
	// Registration is process wide; calls opt in with grpc.CallContentSubtype(CodecName).
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

// InvokeRequest names the operation to run.
type InvokeRequest struct {
	Operation string `json:"operation"`
	Args      string `json:"args,omitempty"`
}

// InvokeResponse carries the captured output of a successful run.
type InvokeResponse struct {
	Output string `json:"output"`
	RunID  string `json:"run_id"`
}

// ListOperationsRequest is empty.
type ListOperationsRequest struct{}

// Operation describes one exposed operation.
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AcceptsArgs bool   `json:"accepts_args"`
	Fingerprint string `json:"fingerprint"`
}

// ListOperationsResponse lists the exposed operations in registration order.
type ListOperationsResponse struct {
	Operations []*Operation `json:"operations"`
}

// PingRequest is empty.
type PingRequest struct{}

// PingResponse reports how long the service stays up without further requests.
type PingResponse struct {
	IdleRemainingSeconds int64 `json:"idle_remaining_seconds"`
}

// ShutdownRequest is empty.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges a shutdown request.
type ShutdownResponse struct {
	Success bool `json:"success"`
}
