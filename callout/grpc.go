package callout

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
	"github.com/envoyproxy/proxy-wasm-go-sdk/promise"
)

// GrpcClient tracks the unary gRPC calls issued by one context. Calls are rejected with a
// *status.Status error, so callers can use status.FromError on the reason.
type GrpcClient struct {
	pending map[uint32]*promise.Promise[[]byte]
}

// Call marshals request and issues a unary call to service/method on upstream. The promise is
// fulfilled with the serialized response.
func (c *GrpcClient) Call(upstream, service, method string, metadata [][2]string, request proto.Message,
	timeout time.Duration,
) *promise.Promise[[]byte] {
	message, err := proto.Marshal(request)
	if err != nil {
		return promise.Reject[[]byte](status.Errorf(codes.Internal, "callout: marshal %s request: %v", method, err))
	}
	token, err := hostcall.DispatchGrpcCall(upstream, service, method, metadata, message, timeout)
	if err != nil {
		return promise.Reject[[]byte](status.Errorf(codes.Unavailable, "callout: dispatch %s/%s: %v", service, method, err))
	}
	if c.pending == nil {
		c.pending = make(map[uint32]*promise.Promise[[]byte])
	}
	p := promise.New[[]byte]()
	c.pending[token] = p
	return p
}

// OnGrpcCallResponse resolves the promise of token. A non-zero statusCode rejects it with the
// status the host reports. It returns false for a token the client did not issue.
func (c *GrpcClient) OnGrpcCallResponse(token, statusCode uint32, responseSize int) bool {
	p, ok := c.pending[token]
	if !ok {
		return false
	}
	delete(c.pending, token)
	if statusCode != uint32(codes.OK) {
		s, err := hostcall.GetGrpcStatus()
		if err != nil || s.Code() != codes.Code(statusCode) {
			s = status.New(codes.Code(statusCode), "")
		}
		p.Reject(s.Err())
		return true
	}
	message, err := hostcall.GetGrpcReceiveBuffer(0, responseSize)
	if err != nil {
		p.Reject(status.Errorf(codes.Internal, "callout: read response of token %d: %v", token, err))
		return true
	}
	p.Fulfill(message)
	return true
}

// Cancel abandons the call and rejects its promise with codes.Canceled.
func (c *GrpcClient) Cancel(token uint32) error {
	p, ok := c.pending[token]
	if !ok {
		return fmt.Errorf("callout: unknown grpc token %d", token)
	}
	if err := hostcall.CancelGrpcCall(token); err != nil {
		return err
	}
	delete(c.pending, token)
	p.Reject(status.Error(codes.Canceled, "callout: call cancelled"))
	return nil
}

// Pending returns the number of calls awaiting a response.
func (c *GrpcClient) Pending() int { return len(c.pending) }

// Decode continues p by unmarshalling the response into out.
func Decode[M proto.Message](p *promise.Promise[[]byte], out M) *promise.Promise[M] {
	return promise.Chain(p, func(message []byte) *promise.Promise[M] {
		if err := proto.Unmarshal(message, out); err != nil {
			return promise.Reject[M](status.Errorf(codes.Internal, "callout: unmarshal response: %v", err))
		}
		return promise.Resolve(out)
	})
}
