package abi

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// logFailure reports an error the host cannot be told about.
func logFailure(op string, contextID, token uint32, err error) {
	fields := []zap.Field{zap.String("event", op), zap.Uint32("context_id", contextID)}
	if token != 0 {
		fields = append(fields, zap.Uint32("token", token))
	}
	dispatcher.Default().Logger().Error("event failed", append(fields, zap.Error(err))...)
}

// recoverPanic must be deferred directly by an entry point. The entry point then returns
// whatever its named result held when the handler panicked.
func recoverPanic(op string, contextID, token uint32) {
	if e := recover(); e != nil {
		const size = 64 << 10
		buf := make([]byte, size)
		buf = buf[:runtime.Stack(buf, false)]
		logFailure(op, contextID, token, fmt.Errorf("panic: %v\n%s", e, buf))
	}
}

func ProxyOnContextCreate(contextID, parentContextID uint32) {
	const op = "proxy_on_context_create"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnContextCreate(contextID, parentContextID); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnDone(contextID uint32) (done bool) {
	const op = "proxy_on_done"
	done = true
	defer recoverPanic(op, contextID, 0)
	ok, err := dispatcher.Default().OnDone(contextID)
	if err != nil {
		logFailure(op, contextID, 0, err)
		return true
	}
	return ok
}

func ProxyOnLog(contextID uint32) {
	const op = "proxy_on_log"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnLog(contextID); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnDelete(contextID uint32) {
	const op = "proxy_on_delete"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnDelete(contextID); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnVMStart(contextID uint32, vmConfigurationSize int) (ok bool) {
	const op = "proxy_on_vm_start"
	ok = true
	defer recoverPanic(op, contextID, 0)
	started, err := dispatcher.Default().OnVMStart(contextID, vmConfigurationSize)
	if err != nil {
		logFailure(op, contextID, 0, err)
		return true
	}
	return started
}

func ProxyOnConfigure(contextID uint32, pluginConfigurationSize int) (ok bool) {
	const op = "proxy_on_configure"
	ok = true
	defer recoverPanic(op, contextID, 0)
	configured, err := dispatcher.Default().OnConfigure(contextID, pluginConfigurationSize)
	if err != nil {
		logFailure(op, contextID, 0, err)
		return true
	}
	return configured
}

func ProxyOnTick(contextID uint32) {
	const op = "proxy_on_tick"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnTick(contextID); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnQueueReady(contextID, queueID uint32) {
	const op = "proxy_on_queue_ready"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnQueueReady(contextID, queueID); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

// action runs one of the dispatcher events that return an Action, falling back to Continue.
func action(op string, contextID uint32, fn func(*dispatcher.Dispatcher) (shared.Action, error)) (a shared.Action) {
	a = shared.ActionContinue
	defer recoverPanic(op, contextID, 0)
	result, err := fn(dispatcher.Default())
	if err != nil {
		logFailure(op, contextID, 0, err)
		return shared.ActionContinue
	}
	return result
}

func ProxyOnNewConnection(contextID uint32) shared.Action {
	return action("proxy_on_new_connection", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnNewConnection(contextID)
	})
}

func ProxyOnDownstreamData(contextID uint32, dataSize int, endOfStream bool) shared.Action {
	return action("proxy_on_downstream_data", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnDownstreamData(contextID, dataSize, endOfStream)
	})
}

func ProxyOnDownstreamConnectionClose(contextID uint32, peerType shared.PeerType) {
	const op = "proxy_on_downstream_connection_close"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnDownstreamClose(contextID, peerType); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnUpstreamData(contextID uint32, dataSize int, endOfStream bool) shared.Action {
	return action("proxy_on_upstream_data", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnUpstreamData(contextID, dataSize, endOfStream)
	})
}

func ProxyOnUpstreamConnectionClose(contextID uint32, peerType shared.PeerType) {
	const op = "proxy_on_upstream_connection_close"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnUpstreamClose(contextID, peerType); err != nil {
		logFailure(op, contextID, 0, err)
	}
}

func ProxyOnRequestHeaders(contextID uint32, numHeaders int, endOfStream bool) shared.Action {
	return action("proxy_on_request_headers", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpRequestHeaders(contextID, numHeaders, endOfStream)
	})
}

func ProxyOnRequestBody(contextID uint32, bodySize int, endOfStream bool) shared.Action {
	return action("proxy_on_request_body", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpRequestBody(contextID, bodySize, endOfStream)
	})
}

func ProxyOnRequestTrailers(contextID uint32, numTrailers int) shared.Action {
	return action("proxy_on_request_trailers", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpRequestTrailers(contextID, numTrailers)
	})
}

func ProxyOnResponseHeaders(contextID uint32, numHeaders int, endOfStream bool) shared.Action {
	return action("proxy_on_response_headers", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpResponseHeaders(contextID, numHeaders, endOfStream)
	})
}

func ProxyOnResponseBody(contextID uint32, bodySize int, endOfStream bool) shared.Action {
	return action("proxy_on_response_body", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpResponseBody(contextID, bodySize, endOfStream)
	})
}

func ProxyOnResponseTrailers(contextID uint32, numTrailers int) shared.Action {
	return action("proxy_on_response_trailers", contextID, func(d *dispatcher.Dispatcher) (shared.Action, error) {
		return d.OnHttpResponseTrailers(contextID, numTrailers)
	})
}

// ProxyOnHttpCallResponse routes by token. The context ID the host passes is not used.
func ProxyOnHttpCallResponse(contextID, token uint32, numHeaders, bodySize, numTrailers int) {
	const op = "proxy_on_http_call_response"
	defer recoverPanic(op, contextID, token)
	if err := dispatcher.Default().OnHttpCallResponse(token, numHeaders, bodySize, numTrailers); err != nil {
		logFailure(op, contextID, token, err)
	}
}

func ProxyOnGrpcReceiveInitialMetadata(contextID, token uint32, numElements int) {
	const op = "proxy_on_grpc_receive_initial_metadata"
	defer recoverPanic(op, contextID, token)
	if err := dispatcher.Default().OnGrpcReceiveInitialMetadata(token, numElements); err != nil {
		logFailure(op, contextID, token, err)
	}
}

func ProxyOnGrpcReceive(contextID, token uint32, responseSize int) {
	const op = "proxy_on_grpc_receive"
	defer recoverPanic(op, contextID, token)
	if err := dispatcher.Default().OnGrpcReceive(token, responseSize); err != nil {
		logFailure(op, contextID, token, err)
	}
}

func ProxyOnGrpcReceiveTrailingMetadata(contextID, token uint32, numElements int) {
	const op = "proxy_on_grpc_receive_trailing_metadata"
	defer recoverPanic(op, contextID, token)
	if err := dispatcher.Default().OnGrpcReceiveTrailingMetadata(token, numElements); err != nil {
		logFailure(op, contextID, token, err)
	}
}

func ProxyOnGrpcClose(contextID, token, statusCode uint32) {
	const op = "proxy_on_grpc_close"
	defer recoverPanic(op, contextID, token)
	if err := dispatcher.Default().OnGrpcClose(token, statusCode); err != nil {
		logFailure(op, contextID, token, err)
	}
}

func ProxyOnForeignFunction(contextID, functionID uint32, argumentsSize int) {
	const op = "proxy_on_foreign_function"
	defer recoverPanic(op, contextID, 0)
	if err := dispatcher.Default().OnForeignFunction(contextID, functionID, argumentsSize); err != nil {
		logFailure(op, contextID, 0, err)
	}
}
