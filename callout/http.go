// Package callout turns the token based out-call completions into promises. A context keeps a
// client, issues calls through it and forwards its completion handlers to the client.
package callout

import (
	"errors"
	"fmt"
	"time"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
	"github.com/envoyproxy/proxy-wasm-go-sdk/promise"
)

// ErrCalloutFailed rejects an HTTP callout the host answered without headers, which is how a
// failed or timed out callout is reported.
var ErrCalloutFailed = errors.New("callout: http call failed")

// HttpResponse describes a completed callout. Its headers, body and trailers are read with
// hostcall.GetHttpCallResponse* from the continuation, which runs inside OnHttpCallResponse.
type HttpResponse struct {
	Token       uint32
	NumHeaders  int
	BodySize    int
	NumTrailers int
}

// HttpClient tracks the HTTP callouts issued by one context.
type HttpClient struct {
	pending map[uint32]*promise.Promise[HttpResponse]
}

// Dispatch issues a callout and returns a promise for its response. A call the host refuses
// returns an already rejected promise.
func (c *HttpClient) Dispatch(upstream string, headers [][2]string, body []byte, trailers [][2]string,
	timeout time.Duration,
) *promise.Promise[HttpResponse] {
	token, err := hostcall.DispatchHttpCall(upstream, headers, body, trailers, timeout)
	if err != nil {
		return promise.Reject[HttpResponse](fmt.Errorf("callout: dispatch to %q: %w", upstream, err))
	}
	if c.pending == nil {
		c.pending = make(map[uint32]*promise.Promise[HttpResponse])
	}
	p := promise.New[HttpResponse]()
	c.pending[token] = p
	return p
}

// OnHttpCallResponse resolves the promise of token. It reports false for a token the client
// did not issue, so a context can route completions between several clients.
func (c *HttpClient) OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int) bool {
	p, ok := c.pending[token]
	if !ok {
		return false
	}
	delete(c.pending, token)
	if numHeaders == 0 {
		p.Reject(fmt.Errorf("%w: token %d", ErrCalloutFailed, token))
		return true
	}
	p.Fulfill(HttpResponse{Token: token, NumHeaders: numHeaders, BodySize: bodySize, NumTrailers: numTrailers})
	return true
}

// Pending returns the number of callouts awaiting a response.
func (c *HttpClient) Pending() int { return len(c.pending) }

// Body reads the body of the response being handled.
func (r HttpResponse) Body() ([]byte, error) {
	return hostcall.GetHttpCallResponseBody(0, r.BodySize)
}

// Headers reads the headers of the response being handled.
func (r HttpResponse) Headers() ([][2]string, error) {
	return hostcall.GetHttpCallResponseHeaders()
}
