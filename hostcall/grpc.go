package hostcall

import (
	"time"

	rpcstatus "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// DispatchHttpCall sends an HTTP request to the upstream cluster and returns the token the host
// assigned to it. The response is delivered to OnHttpCallResponse of the calling context. A
// response with zero headers means the call failed or timed out.
func DispatchHttpCall(upstream string, headers [][2]string, body []byte, trailers [][2]string,
	timeout time.Duration,
) (uint32, error) {
	d := dispatcher.Default()
	if err := d.Running("dispatch_http_call"); err != nil {
		return 0, err
	}
	token, st := d.Host().HttpCall(upstream, wire.EncodeStringPairs(headers), body,
		wire.EncodeStringPairs(trailers), durationMillis(timeout))
	if st != shared.StatusOk {
		return 0, st
	}
	if err := d.RegisterHttpCallout(token); err != nil {
		return 0, err
	}
	return token, nil
}

// DispatchGrpcCall starts a unary gRPC call. The reply is delivered to OnGrpcCallResponse of
// the calling context.
func DispatchGrpcCall(upstream, serviceName, methodName string, initialMetadata [][2]string,
	message []byte, timeout time.Duration,
) (uint32, error) {
	d := dispatcher.Default()
	if err := d.Running("dispatch_grpc_call"); err != nil {
		return 0, err
	}
	token, st := d.Host().GrpcCall(upstream, serviceName, methodName,
		wire.EncodeStringPairs(initialMetadata), message, durationMillis(timeout))
	if st != shared.StatusOk {
		return 0, st
	}
	if err := d.RegisterGrpcCall(token); err != nil {
		return 0, err
	}
	return token, nil
}

// OpenGrpcStream opens a streaming gRPC call. Its events are delivered to the OnGrpcStream*
// handlers of the calling context until OnGrpcStreamClose.
func OpenGrpcStream(upstream, serviceName, methodName string, initialMetadata [][2]string) (uint32, error) {
	d := dispatcher.Default()
	if err := d.Running("open_grpc_stream"); err != nil {
		return 0, err
	}
	token, st := d.Host().GrpcStream(upstream, serviceName, methodName,
		wire.EncodeStringPairs(initialMetadata))
	if st != shared.StatusOk {
		return 0, st
	}
	if err := d.RegisterGrpcStream(token); err != nil {
		return 0, err
	}
	return token, nil
}

func SendGrpcStreamMessage(token uint32, message []byte, endOfStream bool) error {
	return host().GrpcSend(token, message, endOfStream).Err()
}

// CancelGrpcCall abandons a unary call. No completion is delivered for it afterwards.
func CancelGrpcCall(token uint32) error {
	return cancelGrpc(token)
}

// CancelGrpcStream abandons a stream. No further events are delivered for it.
func CancelGrpcStream(token uint32) error {
	return cancelGrpc(token)
}

func cancelGrpc(token uint32) error {
	d := dispatcher.Default()
	if st := d.Host().GrpcCancel(token); st != shared.StatusOk {
		return st
	}
	d.CancelToken(token)
	return nil
}

// CloseGrpcStream half-closes a stream. The stream stays registered until the remote side
// closes it.
func CloseGrpcStream(token uint32) error {
	return host().GrpcClose(token).Err()
}

// GetGrpcStatus returns the status of the gRPC call whose completion is being handled.
func GetGrpcStatus() (*status.Status, error) {
	code, message, st := host().GetStatus()
	if st != shared.StatusOk {
		return nil, st
	}
	return status.New(codes.Code(code), string(message)), nil
}

// GetGrpcStatusProto is GetGrpcStatus in its wire form.
func GetGrpcStatusProto() (*rpcstatus.Status, error) {
	s, err := GetGrpcStatus()
	if err != nil {
		return nil, err
	}
	return s.Proto(), nil
}

func GetGrpcReceiveBuffer(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeGrpcReceiveBuffer, start, maxSize)
}

func GetGrpcStreamInitialMetadata() ([][2]string, error) {
	return GetMap(shared.MapTypeGrpcReceiveInitialMetadata)
}

func GetGrpcStreamInitialMetadataValue(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeGrpcReceiveInitialMetadata, key)
}

func GetGrpcStreamTrailingMetadata() ([][2]string, error) {
	return GetMap(shared.MapTypeGrpcReceiveTrailingMetadata)
}

func GetGrpcStreamTrailingMetadataValue(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeGrpcReceiveTrailingMetadata, key)
}
