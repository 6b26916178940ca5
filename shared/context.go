package shared

// Context is the capability set shared by root, stream and http contexts. The handlers are
// invoked by the dispatcher on completion of out-calls issued by the context and on lifecycle
// events common to every variant.
type Context interface {
	// OnHttpCallResponse is called when an HTTP callout dispatched by this context completes.
	// A timed out or failed callout is reported with numHeaders == 0.
	OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int)

	// OnGrpcCallResponse is called once per unary gRPC call. On success statusCode is 0 and
	// responseSize is the size of the message in the gRPC receive buffer. On failure responseSize
	// is 0 and statusCode carries the gRPC status.
	OnGrpcCallResponse(token uint32, statusCode uint32, responseSize int)

	OnGrpcStreamInitialMetadata(token uint32, numElements int)
	OnGrpcStreamMessage(token uint32, messageSize int)
	OnGrpcStreamTrailingMetadata(token uint32, numElements int)
	// OnGrpcStreamClose is the last event delivered for a stream token.
	OnGrpcStreamClose(token uint32, statusCode uint32)

	// OnForeignFunction is called when the host invokes a function registered by name on the
	// host side. The arguments are available in BufferTypeCallData.
	OnForeignFunction(functionID uint32, argumentsSize int)

	// OnDone is called when the host is about to tear the context down. Returning false defers
	// the teardown until hostcall.Done is called.
	OnDone() bool

	// OnLog is called after the stream has completed, for access logging.
	OnLog()
}

// RootContext is the per-plugin context. It receives the VM and plugin configuration, owns the
// tick timer and shared queue notifications, and creates the per-connection and per-request
// contexts when no global factory is registered.
type RootContext interface {
	Context

	// OnVMStart is called once per VM with the size of the VM configuration.
	// Returning false fails the VM start.
	OnVMStart(vmConfigurationSize int) bool

	// OnConfigure is called with the size of the plugin configuration. Returning false rejects
	// the configuration.
	OnConfigure(pluginConfigurationSize int) bool

	OnTick()
	OnQueueReady(queueID uint32)

	// NewHttpContext creates the context for a new HTTP request. Returning nil declines.
	NewHttpContext(contextID uint32) HttpContext
	// NewStreamContext creates the context for a new L4 connection. Returning nil declines.
	NewStreamContext(contextID uint32) StreamContext

	// ContextType reports which kind of children this root creates. The second result is false
	// when the root has no preference.
	ContextType() (ContextType, bool)
}

// StreamContext is the per-connection L4 context.
type StreamContext interface {
	Context

	OnNewConnection() Action
	OnDownstreamData(dataSize int, endOfStream bool) Action
	OnDownstreamClose(peerType PeerType)
	OnUpstreamData(dataSize int, endOfStream bool) Action
	OnUpstreamClose(peerType PeerType)
}

// HttpContext is the per-request L7 context.
type HttpContext interface {
	Context

	// OnHttpRequestHeaders will be called when the request headers are received.
	OnHttpRequestHeaders(numHeaders int, endOfStream bool) Action
	// OnHttpRequestBody will be called for every request body chunk. The body is buffered by
	// the host while ActionPause is returned.
	OnHttpRequestBody(bodySize int, endOfStream bool) Action
	OnHttpRequestTrailers(numTrailers int) Action

	OnHttpResponseHeaders(numHeaders int, endOfStream bool) Action
	OnHttpResponseBody(bodySize int, endOfStream bool) Action
	OnHttpResponseTrailers(numTrailers int) Action
}

// EmptyContext implements Context with no-op handlers. Embed it to only override the handlers
// you need.
type EmptyContext struct{}

func (*EmptyContext) OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int) {}

func (*EmptyContext) OnGrpcCallResponse(token uint32, statusCode uint32, responseSize int) {}

func (*EmptyContext) OnGrpcStreamInitialMetadata(token uint32, numElements int) {}

func (*EmptyContext) OnGrpcStreamMessage(token uint32, messageSize int) {}

func (*EmptyContext) OnGrpcStreamTrailingMetadata(token uint32, numElements int) {}

func (*EmptyContext) OnGrpcStreamClose(token uint32, statusCode uint32) {}

func (*EmptyContext) OnForeignFunction(functionID uint32, argumentsSize int) {}

func (*EmptyContext) OnDone() bool { return true }

func (*EmptyContext) OnLog() {}

type EmptyRootContext struct {
	EmptyContext
}

func (*EmptyRootContext) OnVMStart(vmConfigurationSize int) bool { return true }

func (*EmptyRootContext) OnConfigure(pluginConfigurationSize int) bool { return true }

func (*EmptyRootContext) OnTick() {}

func (*EmptyRootContext) OnQueueReady(queueID uint32) {}

func (*EmptyRootContext) NewHttpContext(contextID uint32) HttpContext { return nil }

func (*EmptyRootContext) NewStreamContext(contextID uint32) StreamContext { return nil }

func (*EmptyRootContext) ContextType() (ContextType, bool) { return 0, false }

type EmptyStreamContext struct {
	EmptyContext
}

func (*EmptyStreamContext) OnNewConnection() Action { return ActionContinue }

func (*EmptyStreamContext) OnDownstreamData(dataSize int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyStreamContext) OnDownstreamClose(peerType PeerType) {}

func (*EmptyStreamContext) OnUpstreamData(dataSize int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyStreamContext) OnUpstreamClose(peerType PeerType) {}

type EmptyHttpContext struct {
	EmptyContext
}

func (*EmptyHttpContext) OnHttpRequestHeaders(numHeaders int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyHttpContext) OnHttpRequestBody(bodySize int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyHttpContext) OnHttpRequestTrailers(numTrailers int) Action {
	return ActionContinue
}

func (*EmptyHttpContext) OnHttpResponseHeaders(numHeaders int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyHttpContext) OnHttpResponseBody(bodySize int, endOfStream bool) Action {
	return ActionContinue
}

func (*EmptyHttpContext) OnHttpResponseTrailers(numTrailers int) Action {
	return ActionContinue
}
