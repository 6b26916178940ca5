package shared

import "strconv"

// Action tells the host how to proceed with the in-flight data of a stream after a handler
// returns.
type Action uint32

const (
	// ActionContinue lets the data continue to the next filter in the chain.
	ActionContinue Action = 0
	// ActionPause stops the iteration at this extension. The data stays buffered by the host
	// until one of the resume calls is issued, or a local response is sent.
	ActionPause Action = 1
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "Continue"
	case ActionPause:
		return "Pause"
	}
	return "Action(" + strconv.FormatUint(uint64(a), 10) + ")"
}

type LogLevel uint32

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelCritical
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelCritical:
		return "critical"
	}
	return "LogLevel(" + strconv.FormatUint(uint64(l), 10) + ")"
}

// ContextType is the hint a root context gives about which kind of child contexts it creates
// when the host does not say so itself.
type ContextType uint32

const (
	ContextTypeHttp   ContextType = 0
	ContextTypeStream ContextType = 1
)

type BufferType uint32

const (
	BufferTypeHttpRequestBody      BufferType = 0
	BufferTypeHttpResponseBody     BufferType = 1
	BufferTypeDownstreamData       BufferType = 2
	BufferTypeUpstreamData         BufferType = 3
	BufferTypeHttpCallResponseBody BufferType = 4
	BufferTypeGrpcReceiveBuffer    BufferType = 5
	BufferTypeVMConfiguration      BufferType = 6
	BufferTypePluginConfiguration  BufferType = 7
	// BufferTypeCallData holds the arguments of a foreign function call made by the host.
	BufferTypeCallData BufferType = 8
)

type MapType uint32

const (
	MapTypeHttpRequestHeaders          MapType = 0
	MapTypeHttpRequestTrailers         MapType = 1
	MapTypeHttpResponseHeaders         MapType = 2
	MapTypeHttpResponseTrailers        MapType = 3
	MapTypeGrpcReceiveInitialMetadata  MapType = 4
	MapTypeGrpcReceiveTrailingMetadata MapType = 5
	MapTypeHttpCallResponseHeaders     MapType = 6
	MapTypeHttpCallResponseTrailers    MapType = 7
)

// PeerType identifies which side closed an L4 connection.
type PeerType uint32

const (
	PeerTypeUnknown PeerType = 0
	PeerTypeLocal   PeerType = 1
	PeerTypeRemote  PeerType = 2
)

type MetricType uint32

const (
	MetricTypeCounter   MetricType = 0
	MetricTypeGauge     MetricType = 1
	MetricTypeHistogram MetricType = 2
)

// StreamType selects the direction targeted by proxy_continue_stream and proxy_close_stream.
type StreamType uint32

const (
	StreamTypeHttpRequest  StreamType = 0
	StreamTypeHttpResponse StreamType = 1
	StreamTypeDownstream   StreamType = 2
	StreamTypeUpstream     StreamType = 3
)

// NewRootContext creates the root context for a plugin instance.
type NewRootContext func(contextID uint32) RootContext

// NewStreamContext creates an L4 context bound to the given root context.
type NewStreamContext func(contextID, rootContextID uint32) StreamContext

// NewHttpContext creates an L7 context bound to the given root context.
type NewHttpContext func(contextID, rootContextID uint32) HttpContext
