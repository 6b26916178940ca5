package fake

import (
	"sort"
	"time"

	"google.golang.org/grpc/codes"

	"github.com/envoyproxy/proxy-wasm-go-sdk/abi"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// enter makes id the effective context until the returned func runs.
func (h *Host) enter(id uint32) func() {
	previous := h.effective
	h.effective = id
	return func() { h.effective = previous }
}

func (h *Host) newContext(parentID uint32) uint32 {
	h.nextContextID++
	id := h.nextContextID
	h.contexts[id] = true
	defer h.enter(id)()
	abi.ProxyOnContextCreate(id, parentID)
	return id
}

// RootContextID returns the ID of the root context, or 0 before StartVM.
func (h *Host) RootContextID() uint32 { return h.rootID }

// StartVM creates the root context on first use and delivers proxy_on_vm_start to it.
func (h *Host) StartVM() bool {
	if h.rootID == 0 {
		h.rootID = h.newContext(0)
	}
	defer h.enter(h.rootID)()
	return abi.ProxyOnVMStart(h.rootID, len(h.vmConfiguration))
}

func (h *Host) ConfigurePlugin() bool {
	defer h.enter(h.rootID)()
	return abi.ProxyOnConfigure(h.rootID, len(h.pluginConfiguration))
}

// StartPlugin runs StartVM followed by ConfigurePlugin.
func (h *Host) StartPlugin() bool {
	return h.StartVM() && h.ConfigurePlugin()
}

// Tick delivers proxy_on_tick to the root context.
func (h *Host) Tick() {
	defer h.enter(h.rootID)()
	abi.ProxyOnTick(h.rootID)
}

// DeliverQueueReady notifies the registering root contexts of every enqueue since the last
// call, in enqueue order.
func (h *Host) DeliverQueueReady() {
	for len(h.readyQueues) > 0 {
		queueID := h.readyQueues[0]
		h.readyQueues = h.readyQueues[1:]
		owner := h.queues[queueID].owner
		func() {
			defer h.enter(owner)()
			abi.ProxyOnQueueReady(owner, queueID)
		}()
	}
}

func (h *Host) NewHttpContext() uint32 {
	return h.newContext(h.rootID)
}

// NewStreamContext creates an L4 context and delivers proxy_on_new_connection to it.
func (h *Host) NewStreamContext() (uint32, shared.Action) {
	id := h.newContext(h.rootID)
	defer h.enter(id)()
	return id, abi.ProxyOnNewConnection(id)
}

func (h *Host) CallOnRequestHeaders(id uint32, headers [][2]string, endOfStream bool) shared.Action {
	h.headerMap(id, shared.MapTypeHttpRequestHeaders).Pairs = append([][2]string(nil), headers...)
	defer h.enter(id)()
	return abi.ProxyOnRequestHeaders(id, len(headers), endOfStream)
}

func (h *Host) CallOnRequestBody(id uint32, body []byte, endOfStream bool) shared.Action {
	h.setBuffer(id, shared.BufferTypeHttpRequestBody, append([]byte{}, body...))
	defer h.enter(id)()
	return abi.ProxyOnRequestBody(id, len(body), endOfStream)
}

func (h *Host) CallOnRequestTrailers(id uint32, trailers [][2]string) shared.Action {
	h.headerMap(id, shared.MapTypeHttpRequestTrailers).Pairs = append([][2]string(nil), trailers...)
	defer h.enter(id)()
	return abi.ProxyOnRequestTrailers(id, len(trailers))
}

func (h *Host) CallOnResponseHeaders(id uint32, headers [][2]string, endOfStream bool) shared.Action {
	h.headerMap(id, shared.MapTypeHttpResponseHeaders).Pairs = append([][2]string(nil), headers...)
	defer h.enter(id)()
	return abi.ProxyOnResponseHeaders(id, len(headers), endOfStream)
}

func (h *Host) CallOnResponseBody(id uint32, body []byte, endOfStream bool) shared.Action {
	h.setBuffer(id, shared.BufferTypeHttpResponseBody, append([]byte{}, body...))
	defer h.enter(id)()
	return abi.ProxyOnResponseBody(id, len(body), endOfStream)
}

func (h *Host) CallOnResponseTrailers(id uint32, trailers [][2]string) shared.Action {
	h.headerMap(id, shared.MapTypeHttpResponseTrailers).Pairs = append([][2]string(nil), trailers...)
	defer h.enter(id)()
	return abi.ProxyOnResponseTrailers(id, len(trailers))
}

func (h *Host) CallOnDownstreamData(id uint32, data []byte, endOfStream bool) shared.Action {
	h.setBuffer(id, shared.BufferTypeDownstreamData, append([]byte{}, data...))
	defer h.enter(id)()
	return abi.ProxyOnDownstreamData(id, len(data), endOfStream)
}

func (h *Host) CallOnUpstreamData(id uint32, data []byte, endOfStream bool) shared.Action {
	h.setBuffer(id, shared.BufferTypeUpstreamData, append([]byte{}, data...))
	defer h.enter(id)()
	return abi.ProxyOnUpstreamData(id, len(data), endOfStream)
}

func (h *Host) CallOnDownstreamClose(id uint32, peerType shared.PeerType) {
	defer h.enter(id)()
	abi.ProxyOnDownstreamConnectionClose(id, peerType)
}

func (h *Host) CallOnUpstreamClose(id uint32, peerType shared.PeerType) {
	defer h.enter(id)()
	abi.ProxyOnUpstreamConnectionClose(id, peerType)
}

func (h *Host) CallOnLog(id uint32) {
	defer h.enter(id)()
	abi.ProxyOnLog(id)
}

func (h *Host) CallOnDone(id uint32) bool {
	defer h.enter(id)()
	return abi.ProxyOnDone(id)
}

func (h *Host) CallOnDelete(id uint32) {
	defer h.enter(id)()
	abi.ProxyOnDelete(id)
	delete(h.contexts, id)
}

// CompleteContext runs the teardown sequence of a context: proxy_on_log, proxy_on_done and,
// if the context agreed to be done, proxy_on_delete. It reports whether the context was
// deleted.
func (h *Host) CompleteContext(id uint32) bool {
	h.CallOnLog(id)
	if !h.CallOnDone(id) {
		return false
	}
	h.CallOnDelete(id)
	return true
}

// completing exposes response data to the handler of a completion and hides it afterwards.
func (h *Host) completing(headers, trailers [][2]string, body []byte) func() {
	previous := h.effective
	h.completion.headers = NewHeaderMap(headers)
	h.completion.trailers = NewHeaderMap(trailers)
	h.completion.body = body
	return func() {
		h.completion.headers, h.completion.trailers, h.completion.body = nil, nil, nil
		h.effective = previous
	}
}

// CallOnHttpCallResponse completes the callout token. Zero headers reports a failed call.
func (h *Host) CallOnHttpCallResponse(token uint32, headers [][2]string, body []byte, trailers [][2]string) {
	delete(h.httpCalls, token)
	defer h.completing(headers, trailers, body)()
	abi.ProxyOnHttpCallResponse(h.rootID, token, len(headers), len(body), len(trailers))
}

func (h *Host) CallOnGrpcReceiveInitialMetadata(token uint32, metadata [][2]string) {
	defer h.completing(metadata, nil, nil)()
	abi.ProxyOnGrpcReceiveInitialMetadata(h.rootID, token, len(metadata))
}

// CallOnGrpcReceive delivers a message. It completes a unary call.
func (h *Host) CallOnGrpcReceive(token uint32, message []byte) {
	if call, ok := h.grpcCalls[token]; ok && !call.Stream {
		delete(h.grpcCalls, token)
	}
	defer h.completing(nil, nil, message)()
	abi.ProxyOnGrpcReceive(h.rootID, token, len(message))
}

func (h *Host) CallOnGrpcReceiveTrailingMetadata(token uint32, metadata [][2]string) {
	defer h.completing(nil, metadata, nil)()
	abi.ProxyOnGrpcReceiveTrailingMetadata(h.rootID, token, len(metadata))
}

// CallOnGrpcClose ends a call or stream with code. The message is returned by proxy_get_status.
func (h *Host) CallOnGrpcClose(token uint32, code codes.Code, message string) {
	delete(h.grpcCalls, token)
	h.grpcStatus.code, h.grpcStatus.message = uint32(code), message
	defer h.completing(nil, nil, nil)()
	abi.ProxyOnGrpcClose(h.rootID, token, uint32(code))
}

func (h *Host) CallOnForeignFunction(functionID uint32, arguments []byte) {
	h.callData = arguments
	defer func() { h.callData = nil }()
	defer h.enter(h.rootID)()
	abi.ProxyOnForeignFunction(h.rootID, functionID, len(arguments))
}

// Logs returns the messages logged at level, in order.
func (h *Host) Logs(level shared.LogLevel) []string {
	return h.logs[level]
}

func (h *Host) RequestHeaders(id uint32) [][2]string {
	return h.headerMap(id, shared.MapTypeHttpRequestHeaders).GetAll()
}

func (h *Host) RequestTrailers(id uint32) [][2]string {
	return h.headerMap(id, shared.MapTypeHttpRequestTrailers).GetAll()
}

func (h *Host) ResponseHeaders(id uint32) [][2]string {
	return h.headerMap(id, shared.MapTypeHttpResponseHeaders).GetAll()
}

func (h *Host) ResponseTrailers(id uint32) [][2]string {
	return h.headerMap(id, shared.MapTypeHttpResponseTrailers).GetAll()
}

func (h *Host) RequestBody(id uint32) []byte {
	return h.buffers[id][shared.BufferTypeHttpRequestBody]
}

func (h *Host) ResponseBody(id uint32) []byte {
	return h.buffers[id][shared.BufferTypeHttpResponseBody]
}

func (h *Host) DownstreamData(id uint32) []byte {
	return h.buffers[id][shared.BufferTypeDownstreamData]
}

func (h *Host) UpstreamData(id uint32) []byte {
	return h.buffers[id][shared.BufferTypeUpstreamData]
}

// HttpCallouts returns the callouts still awaiting a response, by token.
func (h *Host) HttpCallouts() []*HttpCall {
	calls := make([]*HttpCall, 0, len(h.httpCalls))
	for _, call := range h.httpCalls {
		calls = append(calls, call)
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].Token < calls[j].Token })
	return calls
}

// GrpcCalls returns the gRPC calls and streams not closed by the remote side yet, by token.
func (h *Host) GrpcCalls() []*GrpcCall {
	calls := make([]*GrpcCall, 0, len(h.grpcCalls))
	for _, call := range h.grpcCalls {
		calls = append(calls, call)
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].Token < calls[j].Token })
	return calls
}

func (h *Host) FindGrpcCall(token uint32) (*GrpcCall, bool) {
	call, ok := h.grpcCalls[token]
	return call, ok
}

func (h *Host) LocalResponse(id uint32) *LocalResponse {
	return h.responses[id]
}

func (h *Host) TickPeriod() time.Duration {
	return h.tickPeriods[h.rootID]
}

func (h *Host) SharedData(key string) ([]byte, uint32, bool) {
	entry, ok := h.sharedData[key]
	if !ok {
		return nil, 0, false
	}
	return entry.value, entry.cas, true
}

// QueueLen returns how many items wait in the queue.
func (h *Host) QueueLen(queueID uint32) int {
	if q, ok := h.queues[queueID]; ok {
		return len(q.items)
	}
	return 0
}

func (h *Host) Property(path ...string) ([]byte, bool) {
	value, ok := h.properties[string(wire.EncodePath(path))]
	return value, ok
}

func (h *Host) SetPropertyValue(path []string, value []byte) {
	h.properties[string(wire.EncodePath(path))] = value
}

// Continued returns the streams the context resumed, in call order.
func (h *Host) Continued(id uint32) []shared.StreamType {
	return h.continued[id]
}

// Closed returns the streams the context closed or reset, in call order.
func (h *Host) Closed(id uint32) []shared.StreamType {
	return h.closed[id]
}

// DoneCalled reports whether the context called proxy_done.
func (h *Host) DoneCalled(id uint32) bool {
	return h.doneCalled[id]
}
