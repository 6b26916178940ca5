package shared

// UnimplementedHost answers every call with StatusUnimplemented. It is the host used outside a
// wasm module, and can be embedded by partial test hosts.
type UnimplementedHost struct{}

var _ Host = UnimplementedHost{}

func (UnimplementedHost) Log(level LogLevel, message string) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetLogLevel() (LogLevel, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) GetCurrentTimeNanoseconds() (uint64, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) SetTickPeriodMilliseconds(period uint32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetBufferBytes(bufferType BufferType, start, maxSize int) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) SetBufferBytes(bufferType BufferType, start, size int, value []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetHeaderMapPairs(mapType MapType) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) SetHeaderMapPairs(mapType MapType, pairs []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetHeaderMapValue(mapType MapType, key string) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) ReplaceHeaderMapValue(mapType MapType, key string, value []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) AddHeaderMapValue(mapType MapType, key string, value []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) RemoveHeaderMapValue(mapType MapType, key string) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetProperty(path []byte) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) SetProperty(path []byte, value []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetSharedData(key string) ([]byte, uint32, Status) {
	return nil, 0, StatusUnimplemented
}

func (UnimplementedHost) SetSharedData(key string, value []byte, cas uint32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) RegisterSharedQueue(name string) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) ResolveSharedQueue(vmID, name string) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) DequeueSharedQueue(queueID uint32) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) EnqueueSharedQueue(queueID uint32, value []byte) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) ContinueStream(streamType StreamType) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) CloseStream(streamType StreamType) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) SendLocalResponse(statusCode uint32, details, body, headers []byte, grpcStatus int32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) HttpCall(upstream string, headers, body, trailers []byte,
	timeoutMilliseconds uint32) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) GrpcCall(upstream, serviceName, methodName string, initialMetadata, message []byte,
	timeoutMilliseconds uint32) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) GrpcStream(upstream, serviceName, methodName string, initialMetadata []byte) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) GrpcSend(token uint32, message []byte, endOfStream bool) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GrpcCancel(token uint32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GrpcClose(token uint32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) GetStatus() (uint32, []byte, Status) {
	return 0, nil, StatusUnimplemented
}

func (UnimplementedHost) SetEffectiveContext(contextID uint32) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) CallForeignFunction(functionName string, arguments []byte) ([]byte, Status) {
	return nil, StatusUnimplemented
}

func (UnimplementedHost) Done() Status {
	return StatusUnimplemented
}

func (UnimplementedHost) DefineMetric(metricType MetricType, name string) (uint32, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) GetMetric(metricID uint32) (uint64, Status) {
	return 0, StatusUnimplemented
}

func (UnimplementedHost) RecordMetric(metricID uint32, value uint64) Status {
	return StatusUnimplemented
}

func (UnimplementedHost) IncrementMetric(metricID uint32, offset int64) Status {
	return StatusUnimplemented
}
