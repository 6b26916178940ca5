// Package fake provides an in-memory proxy-wasm host for unit tests. It implements shared.Host,
// installs itself behind the process-wide dispatcher and drives contexts through the same
// entry points a real host calls.
package fake

import (
	"time"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// HttpCall is an HTTP callout dispatched by an extension.
type HttpCall struct {
	Token     uint32
	ContextID uint32
	Upstream  string
	Headers   [][2]string
	Body      []byte
	Trailers  [][2]string
	Timeout   time.Duration
}

// GrpcCall is a unary gRPC call or a gRPC stream opened by an extension.
type GrpcCall struct {
	Token     uint32
	ContextID uint32
	Upstream  string
	Service   string
	Method    string
	Metadata  [][2]string
	Message   []byte
	Timeout   time.Duration
	Stream    bool
	Sent      [][]byte
	Cancelled bool
	Closed    bool
}

// LocalResponse is a reply an extension sent instead of forwarding the request.
type LocalResponse struct {
	StatusCode uint32
	Details    string
	Body       []byte
	Headers    [][2]string
	GrpcStatus int32
}

type sharedEntry struct {
	value []byte
	cas   uint32
}

type queue struct {
	owner uint32
	items [][]byte
}

// ForeignFunction answers proxy_call_foreign_function for one name.
type ForeignFunction func(arguments []byte) ([]byte, shared.Status)

type Option func(*Host)

func WithVMConfiguration(data []byte) Option {
	return func(h *Host) { h.vmConfiguration = data }
}

func WithPluginConfiguration(data []byte) Option {
	return func(h *Host) { h.pluginConfiguration = data }
}

func WithProperty(path []string, value []byte) Option {
	return func(h *Host) { h.properties[string(wire.EncodePath(path))] = value }
}

func WithLogLevel(level shared.LogLevel) Option {
	return func(h *Host) { h.logLevel = level }
}

func WithVMID(vmID string) Option {
	return func(h *Host) { h.vmID = vmID }
}

func WithForeignFunction(name string, fn ForeignFunction) Option {
	return func(h *Host) { h.foreign[name] = fn }
}

func WithClock(now func() time.Time) Option {
	return func(h *Host) { h.now = now }
}

// Host is an in-memory shared.Host. Header maps, buffers and stream actions are kept per
// context, and every call made through it applies to the effective context.
type Host struct {
	vmID                string
	vmConfiguration     []byte
	pluginConfiguration []byte
	logLevel            shared.LogLevel
	now                 func() time.Time

	rootID        uint32
	nextContextID uint32
	contexts      map[uint32]bool
	effective     uint32

	logs        map[shared.LogLevel][]string
	tickPeriods map[uint32]time.Duration
	headers     map[uint32]map[shared.MapType]*HeaderMap
	buffers     map[uint32]map[shared.BufferType][]byte
	properties  map[string][]byte
	continued   map[uint32][]shared.StreamType
	closed      map[uint32][]shared.StreamType
	responses   map[uint32]*LocalResponse
	doneCalled  map[uint32]bool

	sharedData  map[string]*sharedEntry
	queues      map[uint32]*queue
	queueIDs    map[string]uint32
	readyQueues []uint32

	nextToken  uint32
	httpCalls  map[uint32]*HttpCall
	grpcCalls  map[uint32]*GrpcCall
	grpcStatus struct {
		code    uint32
		message string
	}
	// Data of the completion being delivered, readable from its handler only.
	completion struct {
		headers  *HeaderMap
		trailers *HeaderMap
		body     []byte
	}
	callData []byte

	foreign map[string]ForeignFunction
	metrics *metricStore
}

// NewHost creates a host and installs a fresh process-wide dispatcher backed by it. The
// returned func restores the previous dispatcher.
func NewHost(opts ...Option) (*Host, func()) {
	h := &Host{
		logLevel:    shared.LogLevelTrace,
		now:         time.Now,
		contexts:    make(map[uint32]bool),
		logs:        make(map[shared.LogLevel][]string),
		tickPeriods: make(map[uint32]time.Duration),
		headers:     make(map[uint32]map[shared.MapType]*HeaderMap),
		buffers:     make(map[uint32]map[shared.BufferType][]byte),
		properties:  make(map[string][]byte),
		continued:   make(map[uint32][]shared.StreamType),
		closed:      make(map[uint32][]shared.StreamType),
		responses:   make(map[uint32]*LocalResponse),
		doneCalled:  make(map[uint32]bool),
		sharedData:  make(map[string]*sharedEntry),
		queues:      make(map[uint32]*queue),
		queueIDs:    make(map[string]uint32),
		httpCalls:   make(map[uint32]*HttpCall),
		grpcCalls:   make(map[uint32]*GrpcCall),
		foreign:     make(map[string]ForeignFunction),
		metrics:     newMetricStore(),
	}
	for _, opt := range opts {
		opt(h)
	}
	restore := dispatcher.Install(h)
	return h, restore
}

var _ shared.Host = (*Host)(nil)

func (h *Host) headerMap(contextID uint32, mapType shared.MapType) *HeaderMap {
	switch mapType {
	case shared.MapTypeHttpCallResponseHeaders, shared.MapTypeGrpcReceiveInitialMetadata:
		if h.completion.headers == nil {
			h.completion.headers = NewHeaderMap(nil)
		}
		return h.completion.headers
	case shared.MapTypeHttpCallResponseTrailers, shared.MapTypeGrpcReceiveTrailingMetadata:
		if h.completion.trailers == nil {
			h.completion.trailers = NewHeaderMap(nil)
		}
		return h.completion.trailers
	}
	maps, ok := h.headers[contextID]
	if !ok {
		maps = make(map[shared.MapType]*HeaderMap)
		h.headers[contextID] = maps
	}
	m, ok := maps[mapType]
	if !ok {
		m = NewHeaderMap(nil)
		maps[mapType] = m
	}
	return m
}

func (h *Host) buffer(bufferType shared.BufferType) ([]byte, bool) {
	switch bufferType {
	case shared.BufferTypeVMConfiguration:
		return h.vmConfiguration, h.vmConfiguration != nil
	case shared.BufferTypePluginConfiguration:
		return h.pluginConfiguration, h.pluginConfiguration != nil
	case shared.BufferTypeHttpCallResponseBody, shared.BufferTypeGrpcReceiveBuffer:
		return h.completion.body, h.completion.body != nil
	case shared.BufferTypeCallData:
		return h.callData, h.callData != nil
	}
	data, ok := h.buffers[h.effective][bufferType]
	return data, ok
}

func (h *Host) setBuffer(contextID uint32, bufferType shared.BufferType, data []byte) {
	buffers, ok := h.buffers[contextID]
	if !ok {
		buffers = make(map[shared.BufferType][]byte)
		h.buffers[contextID] = buffers
	}
	buffers[bufferType] = data
}

func (h *Host) Log(level shared.LogLevel, message string) shared.Status {
	h.logs[level] = append(h.logs[level], message)
	return shared.StatusOk
}

func (h *Host) GetLogLevel() (shared.LogLevel, shared.Status) {
	return h.logLevel, shared.StatusOk
}

func (h *Host) GetCurrentTimeNanoseconds() (uint64, shared.Status) {
	return uint64(h.now().UnixNano()), shared.StatusOk
}

func (h *Host) SetTickPeriodMilliseconds(period uint32) shared.Status {
	h.tickPeriods[h.effective] = time.Duration(period) * time.Millisecond
	return shared.StatusOk
}

func (h *Host) GetBufferBytes(bufferType shared.BufferType, start, maxSize int) ([]byte, shared.Status) {
	data, ok := h.buffer(bufferType)
	if !ok {
		return nil, shared.StatusNotFound
	}
	if start < 0 || maxSize < 0 {
		return nil, shared.StatusBadArgument
	}
	if start > len(data) {
		start = len(data)
	}
	end := len(data)
	if maxSize < end-start {
		end = start + maxSize
	}
	return append([]byte{}, data[start:end]...), shared.StatusOk
}

func (h *Host) SetBufferBytes(bufferType shared.BufferType, start, size int, value []byte) shared.Status {
	switch bufferType {
	case shared.BufferTypeHttpRequestBody, shared.BufferTypeHttpResponseBody,
		shared.BufferTypeDownstreamData, shared.BufferTypeUpstreamData:
	default:
		return shared.StatusBadArgument
	}
	if start < 0 {
		return shared.StatusBadArgument
	}
	data, _ := h.buffer(bufferType)
	h.setBuffer(h.effective, bufferType, splice(data, start, size, value))
	return shared.StatusOk
}

func (h *Host) GetHeaderMapPairs(mapType shared.MapType) ([]byte, shared.Status) {
	return wire.EncodeStringPairs(h.headerMap(h.effective, mapType).GetAll()), shared.StatusOk
}

func (h *Host) SetHeaderMapPairs(mapType shared.MapType, pairs []byte) shared.Status {
	decoded, err := wire.DecodeStringPairs(pairs)
	if err != nil {
		return shared.StatusBadArgument
	}
	h.headerMap(h.effective, mapType).Pairs = decoded
	return shared.StatusOk
}

func (h *Host) GetHeaderMapValue(mapType shared.MapType, key string) ([]byte, shared.Status) {
	value, ok := h.headerMap(h.effective, mapType).GetOne(key)
	if !ok {
		return nil, shared.StatusNotFound
	}
	return []byte(value), shared.StatusOk
}

func (h *Host) ReplaceHeaderMapValue(mapType shared.MapType, key string, value []byte) shared.Status {
	h.headerMap(h.effective, mapType).Set(key, string(value))
	return shared.StatusOk
}

func (h *Host) AddHeaderMapValue(mapType shared.MapType, key string, value []byte) shared.Status {
	h.headerMap(h.effective, mapType).Add(key, string(value))
	return shared.StatusOk
}

func (h *Host) RemoveHeaderMapValue(mapType shared.MapType, key string) shared.Status {
	h.headerMap(h.effective, mapType).Remove(key)
	return shared.StatusOk
}

func (h *Host) GetProperty(path []byte) ([]byte, shared.Status) {
	value, ok := h.properties[string(path)]
	if !ok {
		return nil, shared.StatusNotFound
	}
	return value, shared.StatusOk
}

func (h *Host) SetProperty(path []byte, value []byte) shared.Status {
	h.properties[string(path)] = append([]byte{}, value...)
	return shared.StatusOk
}

func (h *Host) GetSharedData(key string) ([]byte, uint32, shared.Status) {
	entry, ok := h.sharedData[key]
	if !ok {
		return nil, 0, shared.StatusNotFound
	}
	return append([]byte{}, entry.value...), entry.cas, shared.StatusOk
}

func (h *Host) SetSharedData(key string, value []byte, cas uint32) shared.Status {
	entry, ok := h.sharedData[key]
	if !ok {
		h.sharedData[key] = &sharedEntry{value: append([]byte{}, value...), cas: 1}
		return shared.StatusOk
	}
	if cas != 0 && cas != entry.cas {
		return shared.StatusCasMismatch
	}
	entry.value = append([]byte{}, value...)
	entry.cas++
	return shared.StatusOk
}

func queueKey(vmID, name string) string { return vmID + "\x00" + name }

func (h *Host) RegisterSharedQueue(name string) (uint32, shared.Status) {
	key := queueKey(h.vmID, name)
	if queueID, ok := h.queueIDs[key]; ok {
		h.queues[queueID].owner = h.effective
		return queueID, shared.StatusOk
	}
	queueID := uint32(len(h.queueIDs) + 1)
	h.queueIDs[key] = queueID
	h.queues[queueID] = &queue{owner: h.effective}
	return queueID, shared.StatusOk
}

func (h *Host) ResolveSharedQueue(vmID, name string) (uint32, shared.Status) {
	queueID, ok := h.queueIDs[queueKey(vmID, name)]
	if !ok {
		return 0, shared.StatusNotFound
	}
	return queueID, shared.StatusOk
}

func (h *Host) DequeueSharedQueue(queueID uint32) ([]byte, shared.Status) {
	q, ok := h.queues[queueID]
	if !ok {
		return nil, shared.StatusNotFound
	}
	if len(q.items) == 0 {
		return nil, shared.StatusEmpty
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, shared.StatusOk
}

func (h *Host) EnqueueSharedQueue(queueID uint32, value []byte) shared.Status {
	q, ok := h.queues[queueID]
	if !ok {
		return shared.StatusNotFound
	}
	q.items = append(q.items, append([]byte{}, value...))
	h.readyQueues = append(h.readyQueues, queueID)
	return shared.StatusOk
}

func (h *Host) ContinueStream(streamType shared.StreamType) shared.Status {
	h.continued[h.effective] = append(h.continued[h.effective], streamType)
	return shared.StatusOk
}

func (h *Host) CloseStream(streamType shared.StreamType) shared.Status {
	h.closed[h.effective] = append(h.closed[h.effective], streamType)
	return shared.StatusOk
}

func (h *Host) SendLocalResponse(statusCode uint32, details, body, headers []byte, grpcStatus int32) shared.Status {
	decoded, err := wire.DecodeStringPairs(headers)
	if err != nil {
		return shared.StatusBadArgument
	}
	h.responses[h.effective] = &LocalResponse{
		StatusCode: statusCode,
		Details:    string(details),
		Body:       append([]byte{}, body...),
		Headers:    decoded,
		GrpcStatus: grpcStatus,
	}
	return shared.StatusOk
}

func (h *Host) HttpCall(upstream string, headers, body, trailers []byte,
	timeoutMilliseconds uint32,
) (uint32, shared.Status) {
	if upstream == "" {
		return 0, shared.StatusBadArgument
	}
	decodedHeaders, err := wire.DecodeStringPairs(headers)
	if err != nil {
		return 0, shared.StatusBadArgument
	}
	decodedTrailers, err := wire.DecodeStringPairs(trailers)
	if err != nil {
		return 0, shared.StatusBadArgument
	}
	h.nextToken++
	h.httpCalls[h.nextToken] = &HttpCall{
		Token:     h.nextToken,
		ContextID: h.effective,
		Upstream:  upstream,
		Headers:   decodedHeaders,
		Body:      append([]byte{}, body...),
		Trailers:  decodedTrailers,
		Timeout:   time.Duration(timeoutMilliseconds) * time.Millisecond,
	}
	return h.nextToken, shared.StatusOk
}

func (h *Host) grpcOpen(call *GrpcCall, initialMetadata []byte) (uint32, shared.Status) {
	if call.Upstream == "" {
		return 0, shared.StatusBadArgument
	}
	metadata, err := wire.DecodeStringPairs(initialMetadata)
	if err != nil {
		return 0, shared.StatusBadArgument
	}
	h.nextToken++
	call.Token = h.nextToken
	call.ContextID = h.effective
	call.Metadata = metadata
	h.grpcCalls[call.Token] = call
	return call.Token, shared.StatusOk
}

func (h *Host) GrpcCall(upstream, serviceName, methodName string, initialMetadata, message []byte,
	timeoutMilliseconds uint32,
) (uint32, shared.Status) {
	return h.grpcOpen(&GrpcCall{
		Upstream: upstream,
		Service:  serviceName,
		Method:   methodName,
		Message:  append([]byte{}, message...),
		Timeout:  time.Duration(timeoutMilliseconds) * time.Millisecond,
	}, initialMetadata)
}

func (h *Host) GrpcStream(upstream, serviceName, methodName string, initialMetadata []byte) (uint32, shared.Status) {
	return h.grpcOpen(&GrpcCall{
		Upstream: upstream,
		Service:  serviceName,
		Method:   methodName,
		Stream:   true,
	}, initialMetadata)
}

func (h *Host) GrpcSend(token uint32, message []byte, endOfStream bool) shared.Status {
	call, ok := h.grpcCalls[token]
	if !ok || !call.Stream {
		return shared.StatusNotFound
	}
	call.Sent = append(call.Sent, append([]byte{}, message...))
	if endOfStream {
		call.Closed = true
	}
	return shared.StatusOk
}

func (h *Host) GrpcCancel(token uint32) shared.Status {
	call, ok := h.grpcCalls[token]
	if !ok {
		return shared.StatusNotFound
	}
	call.Cancelled = true
	return shared.StatusOk
}

func (h *Host) GrpcClose(token uint32) shared.Status {
	call, ok := h.grpcCalls[token]
	if !ok {
		return shared.StatusNotFound
	}
	call.Closed = true
	return shared.StatusOk
}

func (h *Host) GetStatus() (uint32, []byte, shared.Status) {
	return h.grpcStatus.code, []byte(h.grpcStatus.message), shared.StatusOk
}

func (h *Host) SetEffectiveContext(contextID uint32) shared.Status {
	if !h.contexts[contextID] {
		return shared.StatusBadArgument
	}
	h.effective = contextID
	return shared.StatusOk
}

func (h *Host) CallForeignFunction(functionName string, arguments []byte) ([]byte, shared.Status) {
	fn, ok := h.foreign[functionName]
	if !ok {
		return nil, shared.StatusNotFound
	}
	return fn(arguments)
}

func (h *Host) Done() shared.Status {
	h.doneCalled[h.effective] = true
	return shared.StatusOk
}

func (h *Host) DefineMetric(metricType shared.MetricType, name string) (uint32, shared.Status) {
	return h.metrics.define(metricType, name)
}

func (h *Host) GetMetric(metricID uint32) (uint64, shared.Status) {
	return h.metrics.get(metricID)
}

func (h *Host) RecordMetric(metricID uint32, value uint64) shared.Status {
	return h.metrics.record(metricID, value)
}

func (h *Host) IncrementMetric(metricID uint32, offset int64) shared.Status {
	return h.metrics.increment(metricID, offset)
}
