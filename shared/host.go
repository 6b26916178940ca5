//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
package shared

// Host is the set of calls an extension can make back into the proxy. Each method mirrors one
// proxy_* import of the ABI. Implementations own the conversion between host memory and Go
// values: every returned byte slice is an owned copy that stays valid after the call returns.
//
// Calls that operate on per-stream state (header maps, buffers, stream control) target the
// effective context, which is the context the host is currently dispatching into, or the one
// selected by SetEffectiveContext.
type Host interface {
	Log(level LogLevel, message string) Status
	GetLogLevel() (LogLevel, Status)
	GetCurrentTimeNanoseconds() (uint64, Status)
	SetTickPeriodMilliseconds(period uint32) Status

	// GetBufferBytes reads up to maxSize bytes starting at start from the given buffer.
	GetBufferBytes(bufferType BufferType, start, maxSize int) ([]byte, Status)
	// SetBufferBytes replaces size bytes starting at start with value.
	SetBufferBytes(bufferType BufferType, start, size int, value []byte) Status

	// GetHeaderMapPairs returns the whole map in the serialized pair format.
	GetHeaderMapPairs(mapType MapType) ([]byte, Status)
	// SetHeaderMapPairs replaces the whole map with the serialized pairs.
	SetHeaderMapPairs(mapType MapType, pairs []byte) Status
	GetHeaderMapValue(mapType MapType, key string) ([]byte, Status)
	ReplaceHeaderMapValue(mapType MapType, key string, value []byte) Status
	AddHeaderMapValue(mapType MapType, key string, value []byte) Status
	RemoveHeaderMapValue(mapType MapType, key string) Status

	// GetProperty looks up a property by its serialized path.
	GetProperty(path []byte) ([]byte, Status)
	SetProperty(path []byte, value []byte) Status

	// GetSharedData returns the value and its compare-and-swap version.
	GetSharedData(key string) ([]byte, uint32, Status)
	// SetSharedData stores value. A non-zero cas must match the current version, otherwise
	// StatusCasMismatch is returned.
	SetSharedData(key string, value []byte, cas uint32) Status

	RegisterSharedQueue(name string) (uint32, Status)
	ResolveSharedQueue(vmID, name string) (uint32, Status)
	DequeueSharedQueue(queueID uint32) ([]byte, Status)
	EnqueueSharedQueue(queueID uint32, value []byte) Status

	ContinueStream(streamType StreamType) Status
	CloseStream(streamType StreamType) Status
	// SendLocalResponse replies to the downstream without forwarding the request upstream.
	// headers is in the serialized pair format.
	SendLocalResponse(statusCode uint32, details, body, headers []byte, grpcStatus int32) Status

	// HttpCall dispatches an HTTP request to the upstream cluster and returns the token that
	// identifies its completion.
	HttpCall(upstream string, headers, body, trailers []byte, timeoutMilliseconds uint32) (uint32, Status)
	GrpcCall(upstream, serviceName, methodName string, initialMetadata, message []byte,
		timeoutMilliseconds uint32) (uint32, Status)
	GrpcStream(upstream, serviceName, methodName string, initialMetadata []byte) (uint32, Status)
	GrpcSend(token uint32, message []byte, endOfStream bool) Status
	GrpcCancel(token uint32) Status
	GrpcClose(token uint32) Status
	// GetStatus returns the gRPC status code and message of the last gRPC event.
	GetStatus() (uint32, []byte, Status)

	// SetEffectiveContext selects the context targeted by subsequent stream-scoped calls.
	SetEffectiveContext(contextID uint32) Status
	CallForeignFunction(functionName string, arguments []byte) ([]byte, Status)
	// Done signals that a context which returned false from OnDone has finished.
	Done() Status

	DefineMetric(metricType MetricType, name string) (uint32, Status)
	GetMetric(metricID uint32) (uint64, Status)
	RecordMetric(metricID uint32, value uint64) Status
	IncrementMetric(metricID uint32, offset int64) Status
}
