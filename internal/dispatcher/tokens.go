package dispatcher

import (
	"go.uber.org/zap"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

func (d *Dispatcher) register(op string, table *manager[uint32], token uint32) error {
	if d.activeID == 0 {
		return &Error{Op: op, Token: token, Err: ErrUnknownID}
	}
	if !table.record(token, d.activeID) {
		return tokenError(op, token, ErrDuplicateToken)
	}
	delete(d.cancelled, token)
	return nil
}

// Running fails with ErrUnknownID when no context handler is running, such as while a context
// factory runs. Out-calls check it before reaching the host so that no token is left without
// an owner.
func (d *Dispatcher) Running(op string) error {
	if d.activeID == 0 {
		return &Error{Op: op, Err: ErrUnknownID}
	}
	return nil
}

// RegisterHttpCallout records that the running context issued the HTTP callout token.
func (d *Dispatcher) RegisterHttpCallout(token uint32) error {
	return d.register("register_http_callout", d.httpCallouts, token)
}

// RegisterGrpcCall records that the running context issued the unary gRPC call token.
func (d *Dispatcher) RegisterGrpcCall(token uint32) error {
	return d.register("register_grpc_call", d.grpcCalls, token)
}

// RegisterGrpcStream records that the running context opened the gRPC stream token.
func (d *Dispatcher) RegisterGrpcStream(token uint32) error {
	return d.register("register_grpc_stream", d.grpcStreams, token)
}

// maxCancelledTokens bounds the cancelled set of a context that lives as long as the VM. A
// completion for an evicted token is reported as an unknown token.
const maxCancelledTokens = 1024

// CancelToken forgets a gRPC call or stream cancelled by the extension. A completion that the
// host already queued for it is dropped. The token is forgotten for good when its owner is
// deleted.
func (d *Dispatcher) CancelToken(token uint32) {
	owner, ok := d.grpcCalls.take(token)
	if !ok {
		owner, ok = d.grpcStreams.take(token)
	}
	if !ok {
		return
	}
	if len(d.cancelled) >= maxCancelledTokens {
		for evicted := range d.cancelled {
			delete(d.cancelled, evicted)
			break
		}
	}
	d.cancelled[token] = owner
}

// CancelledTokens returns the number of cancelled tokens whose late completion would be dropped.
func (d *Dispatcher) CancelledTokens() int { return len(d.cancelled) }

// Owner returns the context that issued token, searching every table.
func (d *Dispatcher) Owner(token uint32) (uint32, bool) {
	for _, table := range []*manager[uint32]{d.httpCallouts, d.grpcCalls, d.grpcStreams} {
		if id, ok := table.search(token); ok {
			return id, true
		}
	}
	return 0, false
}

// PendingTokens returns the number of out-calls awaiting completion.
func (d *Dispatcher) PendingTokens() int {
	return d.httpCallouts.len() + d.grpcCalls.len() + d.grpcStreams.len()
}

func (d *Dispatcher) missingToken(op string, token uint32) error {
	if _, ok := d.cancelled[token]; ok {
		delete(d.cancelled, token)
		d.logger.Debug("dropping completion of cancelled call", zap.String("event", op), zap.Uint32("token", token))
		return nil
	}
	return tokenError(op, token, ErrUnknownToken)
}

func (d *Dispatcher) effective(op string, id uint32) error {
	if err := d.host.SetEffectiveContext(id).Err(); err != nil {
		return &Error{Op: op, ContextID: id, Err: err}
	}
	return nil
}

// complete resolves the owner of a token, moves the cursor and the host's effective context to
// it, and runs fn against it.
func (d *Dispatcher) complete(op string, token, id uint32, fn func(shared.Context)) error {
	instance, ok := d.registry.Lookup(id)
	if !ok {
		return &Error{Op: op, ContextID: id, Token: token, Err: ErrUnknownID}
	}
	release, err := d.enter(op, id)
	if err != nil {
		return err
	}
	defer release()
	if err := d.effective(op, id); err != nil {
		return err
	}
	fn(instance.Context())
	return nil
}

func (d *Dispatcher) OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int) error {
	const op = "on_http_call_response"
	id, ok := d.httpCallouts.take(token)
	if !ok {
		return d.missingToken(op, token)
	}
	return d.complete(op, token, id, func(ctx shared.Context) {
		ctx.OnHttpCallResponse(token, numHeaders, bodySize, numTrailers)
	})
}

func (d *Dispatcher) OnGrpcReceiveInitialMetadata(token uint32, numElements int) error {
	const op = "on_grpc_receive_initial_metadata"
	id, ok := d.grpcStreams.search(token)
	if !ok {
		return d.missingToken(op, token)
	}
	return d.complete(op, token, id, func(ctx shared.Context) {
		ctx.OnGrpcStreamInitialMetadata(token, numElements)
	})
}

// OnGrpcReceive delivers a message. A unary call is completed by it, a stream stays open.
func (d *Dispatcher) OnGrpcReceive(token uint32, responseSize int) error {
	const op = "on_grpc_receive"
	if id, ok := d.grpcCalls.take(token); ok {
		return d.complete(op, token, id, func(ctx shared.Context) {
			ctx.OnGrpcCallResponse(token, 0, responseSize)
		})
	}
	if id, ok := d.grpcStreams.search(token); ok {
		return d.complete(op, token, id, func(ctx shared.Context) {
			ctx.OnGrpcStreamMessage(token, responseSize)
		})
	}
	return d.missingToken(op, token)
}

func (d *Dispatcher) OnGrpcReceiveTrailingMetadata(token uint32, numElements int) error {
	const op = "on_grpc_receive_trailing_metadata"
	id, ok := d.grpcStreams.search(token)
	if !ok {
		return d.missingToken(op, token)
	}
	return d.complete(op, token, id, func(ctx shared.Context) {
		ctx.OnGrpcStreamTrailingMetadata(token, numElements)
	})
}

// OnGrpcClose is the final event of both unary calls and streams.
func (d *Dispatcher) OnGrpcClose(token uint32, statusCode uint32) error {
	const op = "on_grpc_close"
	if id, ok := d.grpcCalls.take(token); ok {
		return d.complete(op, token, id, func(ctx shared.Context) {
			ctx.OnGrpcCallResponse(token, statusCode, 0)
		})
	}
	if id, ok := d.grpcStreams.take(token); ok {
		return d.complete(op, token, id, func(ctx shared.Context) {
			ctx.OnGrpcStreamClose(token, statusCode)
		})
	}
	return d.missingToken(op, token)
}
