// Package dispatcher routes every event the host delivers to the context it targets, and
// correlates out-call completions with the context that issued them.
package dispatcher

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// Dispatcher is the single owner of the live contexts and the token tables. It is not safe for
// concurrent use: the host drives it from one thread and never re-enters before a call returns.
type Dispatcher struct {
	host     shared.Host
	logger   *zap.Logger
	registry *Registry

	httpCallouts *manager[uint32]
	grpcCalls    *manager[uint32]
	grpcStreams  *manager[uint32]
	// Tokens cancelled by the extension, mapped to the context that issued them. A completion
	// that races with the cancellation is dropped instead of being reported as an unknown token.
	cancelled map[uint32]uint32

	// activeID is the context whose handler is running. Out-call tokens are recorded against it.
	activeID uint32
	inFlight map[uint32]struct{}

	warnedAmbiguous bool
}

func New(host shared.Host, factories Factories, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		host:         host,
		logger:       logger,
		registry:     NewRegistry(factories),
		httpCallouts: newManager[uint32](),
		grpcCalls:    newManager[uint32](),
		grpcStreams:  newManager[uint32](),
		cancelled:    make(map[uint32]uint32),
		inFlight:     make(map[uint32]struct{}),
	}
}

func (d *Dispatcher) Host() shared.Host { return d.host }

func (d *Dispatcher) Logger() *zap.Logger { return d.logger }

func (d *Dispatcher) Registry() *Registry { return d.registry }

// ActiveID returns the Active-Instance Cursor.
func (d *Dispatcher) ActiveID() uint32 { return d.activeID }

// SetFactories replaces the context factories used for contexts created from now on.
func (d *Dispatcher) SetFactories(factories Factories) {
	d.registry.SetFactories(factories)
	d.warnedAmbiguous = false
}

// enter marks id as running and moves the cursor to it. The returned func restores the cursor.
func (d *Dispatcher) enter(op string, id uint32) (func(), error) {
	if _, busy := d.inFlight[id]; busy {
		return nil, contextError(op, id, ErrReentrantDispatch)
	}
	previous := d.activeID
	d.inFlight[id] = struct{}{}
	d.activeID = id
	return func() {
		delete(d.inFlight, id)
		d.activeID = previous
	}, nil
}

func (d *Dispatcher) wrongKind(op string, id uint32, want Kind) error {
	if got := d.registry.Kind(id); got != 0 {
		return contextError(op, id, fmt.Errorf("%w: %s context cannot handle a %s event", ErrUnknownID, got, want))
	}
	return contextError(op, id, ErrUnknownID)
}

func (d *Dispatcher) OnContextCreate(id, parentID uint32) error {
	if parentID != 0 && d.registry.Factories().Ambiguous() && !d.warnedAmbiguous {
		d.warnedAmbiguous = true
		d.logger.Warn("ambiguous context factories: both stream and http factories are registered, creating http contexts",
			zap.Uint32("context_id", id), zap.Uint32("root_context_id", parentID))
	}
	if err := d.registry.DispatchCreate(id, parentID); err != nil {
		return contextError("on_context_create", id, err)
	}
	return nil
}

// OnDone asks the context whether it can be torn down.
func (d *Dispatcher) OnDone(id uint32) (bool, error) {
	instance, ok := d.registry.Lookup(id)
	if !ok {
		return true, contextError("on_done", id, ErrUnknownID)
	}
	release, err := d.enter("on_done", id)
	if err != nil {
		return true, err
	}
	defer release()
	return instance.Context().OnDone(), nil
}

func (d *Dispatcher) OnLog(id uint32) error {
	instance, ok := d.registry.Lookup(id)
	if !ok {
		return contextError("on_log", id, ErrUnknownID)
	}
	release, err := d.enter("on_log", id)
	if err != nil {
		return err
	}
	defer release()
	instance.Context().OnLog()
	return nil
}

// OnDelete removes the context and forgets the out-calls it still had pending.
func (d *Dispatcher) OnDelete(id uint32) error {
	if err := d.registry.Remove(id); err != nil {
		return contextError("on_delete", id, err)
	}
	for _, table := range []*manager[uint32]{d.httpCallouts, d.grpcCalls, d.grpcStreams} {
		for token, owner := range table.data {
			if owner == id {
				delete(table.data, token)
			}
		}
	}
	for token, owner := range d.cancelled {
		if owner == id {
			delete(d.cancelled, token)
		}
	}
	return nil
}

func (d *Dispatcher) rootContext(op string, id uint32) (shared.RootContext, func(), error) {
	root, ok := d.registry.Root(id)
	if !ok {
		return nil, nil, d.wrongKind(op, id, KindRoot)
	}
	release, err := d.enter(op, id)
	if err != nil {
		return nil, nil, err
	}
	return root, release, nil
}

func (d *Dispatcher) OnVMStart(id uint32, vmConfigurationSize int) (bool, error) {
	root, release, err := d.rootContext("on_vm_start", id)
	if err != nil {
		return true, err
	}
	defer release()
	return root.OnVMStart(vmConfigurationSize), nil
}

func (d *Dispatcher) OnConfigure(id uint32, pluginConfigurationSize int) (bool, error) {
	root, release, err := d.rootContext("on_configure", id)
	if err != nil {
		return true, err
	}
	defer release()
	return root.OnConfigure(pluginConfigurationSize), nil
}

func (d *Dispatcher) OnTick(id uint32) error {
	root, release, err := d.rootContext("on_tick", id)
	if err != nil {
		return err
	}
	defer release()
	root.OnTick()
	return nil
}

func (d *Dispatcher) OnQueueReady(id, queueID uint32) error {
	root, release, err := d.rootContext("on_queue_ready", id)
	if err != nil {
		return err
	}
	defer release()
	root.OnQueueReady(queueID)
	return nil
}

func (d *Dispatcher) streamContext(op string, id uint32) (shared.StreamContext, func(), error) {
	stream, ok := d.registry.Stream(id)
	if !ok {
		return nil, nil, d.wrongKind(op, id, KindStream)
	}
	release, err := d.enter(op, id)
	if err != nil {
		return nil, nil, err
	}
	return stream, release, nil
}

func (d *Dispatcher) OnNewConnection(id uint32) (shared.Action, error) {
	stream, release, err := d.streamContext("on_new_connection", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return stream.OnNewConnection(), nil
}

func (d *Dispatcher) OnDownstreamData(id uint32, dataSize int, endOfStream bool) (shared.Action, error) {
	stream, release, err := d.streamContext("on_downstream_data", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return stream.OnDownstreamData(dataSize, endOfStream), nil
}

func (d *Dispatcher) OnDownstreamClose(id uint32, peerType shared.PeerType) error {
	stream, release, err := d.streamContext("on_downstream_close", id)
	if err != nil {
		return err
	}
	defer release()
	stream.OnDownstreamClose(peerType)
	return nil
}

func (d *Dispatcher) OnUpstreamData(id uint32, dataSize int, endOfStream bool) (shared.Action, error) {
	stream, release, err := d.streamContext("on_upstream_data", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return stream.OnUpstreamData(dataSize, endOfStream), nil
}

func (d *Dispatcher) OnUpstreamClose(id uint32, peerType shared.PeerType) error {
	stream, release, err := d.streamContext("on_upstream_close", id)
	if err != nil {
		return err
	}
	defer release()
	stream.OnUpstreamClose(peerType)
	return nil
}

func (d *Dispatcher) httpContext(op string, id uint32) (shared.HttpContext, func(), error) {
	http, ok := d.registry.Http(id)
	if !ok {
		return nil, nil, d.wrongKind(op, id, KindHttp)
	}
	release, err := d.enter(op, id)
	if err != nil {
		return nil, nil, err
	}
	return http, release, nil
}

func (d *Dispatcher) OnHttpRequestHeaders(id uint32, numHeaders int, endOfStream bool) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_request_headers", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpRequestHeaders(numHeaders, endOfStream), nil
}

func (d *Dispatcher) OnHttpRequestBody(id uint32, bodySize int, endOfStream bool) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_request_body", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpRequestBody(bodySize, endOfStream), nil
}

func (d *Dispatcher) OnHttpRequestTrailers(id uint32, numTrailers int) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_request_trailers", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpRequestTrailers(numTrailers), nil
}

func (d *Dispatcher) OnHttpResponseHeaders(id uint32, numHeaders int, endOfStream bool) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_response_headers", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpResponseHeaders(numHeaders, endOfStream), nil
}

func (d *Dispatcher) OnHttpResponseBody(id uint32, bodySize int, endOfStream bool) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_response_body", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpResponseBody(bodySize, endOfStream), nil
}

func (d *Dispatcher) OnHttpResponseTrailers(id uint32, numTrailers int) (shared.Action, error) {
	http, release, err := d.httpContext("on_http_response_trailers", id)
	if err != nil {
		return shared.ActionContinue, err
	}
	defer release()
	return http.OnHttpResponseTrailers(numTrailers), nil
}

// OnForeignFunction is delivered to a context of any kind.
func (d *Dispatcher) OnForeignFunction(id, functionID uint32, argumentsSize int) error {
	const op = "on_foreign_function"
	instance, ok := d.registry.Lookup(id)
	if !ok {
		return contextError(op, id, ErrUnknownID)
	}
	release, err := d.enter(op, id)
	if err != nil {
		return err
	}
	defer release()
	if err := d.effective(op, id); err != nil {
		return err
	}
	instance.Context().OnForeignFunction(functionID, argumentsSize)
	return nil
}
