package hostcall_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared/fake"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared/mocks"
)

func mockHost(t *testing.T) *mocks.MockHost {
	t.Helper()
	host := mocks.NewMockHost(gomock.NewController(t))
	t.Cleanup(dispatcher.Install(host))
	return host
}

func fakeHost(t *testing.T, opts ...fake.Option) *fake.Host {
	t.Helper()
	host, reset := fake.NewHost(opts...)
	t.Cleanup(reset)
	return host
}

func TestAbsenceIsNotAnError(t *testing.T) {
	host := mockHost(t)
	host.EXPECT().GetHeaderMapValue(shared.MapTypeHttpRequestHeaders, "x-missing").Return(nil, shared.StatusNotFound)
	host.EXPECT().GetProperty([]byte("source\x00address")).Return(nil, shared.StatusNotFound)
	host.EXPECT().GetBufferBytes(shared.BufferTypeHttpRequestBody, 0, 10).Return(nil, shared.StatusEmpty)
	host.EXPECT().DequeueSharedQueue(uint32(3)).Return(nil, shared.StatusEmpty)
	host.EXPECT().ResolveSharedQueue("vm", "q").Return(uint32(0), shared.StatusNotFound)
	host.EXPECT().GetSharedData("k").Return(nil, uint32(0), shared.StatusNotFound)

	value, ok, err := hostcall.GetHttpRequestHeader("x-missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	property, ok, err := hostcall.GetProperty("source", "address")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, property)

	body, err := hostcall.GetHttpRequestBody(0, 10)
	require.NoError(t, err)
	assert.Nil(t, body)

	item, err := hostcall.DequeueSharedQueue(3)
	require.NoError(t, err)
	assert.Nil(t, item)

	_, ok, err = hostcall.ResolveSharedQueue("vm", "q")
	require.NoError(t, err)
	assert.False(t, ok)

	data, cas, err := hostcall.GetSharedData("k")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Zero(t, cas)
}

func TestFailuresAreReturned(t *testing.T) {
	host := mockHost(t)
	host.EXPECT().GetHeaderMapValue(shared.MapTypeHttpRequestHeaders, "a").Return(nil, shared.StatusBadArgument)
	host.EXPECT().DequeueSharedQueue(uint32(9)).Return(nil, shared.StatusNotFound)
	host.EXPECT().GetHeaderMapPairs(shared.MapTypeHttpResponseHeaders).Return([]byte{1, 0}, shared.StatusOk)

	_, _, err := hostcall.GetHttpRequestHeader("a")
	assert.ErrorIs(t, err, shared.StatusBadArgument)

	_, err = hostcall.DequeueSharedQueue(9)
	assert.ErrorIs(t, err, shared.StatusNotFound)

	_, err = hostcall.GetHttpResponseHeaders()
	assert.Error(t, err)
}

func TestGrpcStatus(t *testing.T) {
	host := mockHost(t)
	host.EXPECT().GetStatus().Return(uint32(codes.Unavailable), []byte("no healthy upstream"), shared.StatusOk).Times(2)

	s, err := hostcall.GetGrpcStatus()
	require.NoError(t, err)
	assert.Equal(t, codes.Unavailable, s.Code())
	assert.Equal(t, "no healthy upstream", s.Message())

	p, err := hostcall.GetGrpcStatusProto()
	require.NoError(t, err)
	assert.Equal(t, int32(codes.Unavailable), p.GetCode())
}

func TestCancelFailureKeepsToken(t *testing.T) {
	host := mockHost(t)
	host.EXPECT().GrpcCancel(uint32(5)).Return(shared.StatusNotFound)

	assert.ErrorIs(t, hostcall.CancelGrpcCall(5), shared.StatusNotFound)
}

func TestSharedDataCas(t *testing.T) {
	fakeHost(t)

	require.NoError(t, hostcall.SetSharedData("counter", []byte("1"), 0))
	value, cas, err := hostcall.GetSharedData("counter")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)
	assert.Equal(t, uint32(1), cas)

	require.NoError(t, hostcall.SetSharedData("counter", []byte("2"), cas))
	err = hostcall.SetSharedData("counter", []byte("3"), cas)
	assert.True(t, errors.Is(err, shared.StatusCasMismatch))

	value, _, err = hostcall.GetSharedData("counter")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value)
}

func TestSharedQueue(t *testing.T) {
	fakeHost(t, fake.WithVMID("vm"))

	queueID, err := hostcall.RegisterSharedQueue("events")
	require.NoError(t, err)
	resolved, ok, err := hostcall.ResolveSharedQueue("vm", "events")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, queueID, resolved)

	require.NoError(t, hostcall.EnqueueSharedQueue(queueID, []byte("a")))
	require.NoError(t, hostcall.EnqueueSharedQueue(queueID, []byte("b")))

	for _, want := range []string{"a", "b"} {
		item, err := hostcall.DequeueSharedQueue(queueID)
		require.NoError(t, err)
		assert.Equal(t, want, string(item))
	}
	item, err := hostcall.DequeueSharedQueue(queueID)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestTimeAndTick(t *testing.T) {
	now := time.Unix(1700000000, 5)
	host := fakeHost(t, fake.WithClock(func() time.Time { return now }))

	got, err := hostcall.GetCurrentTime()
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	tests := []struct {
		period time.Duration
		want   time.Duration
	}{
		{period: 1500 * time.Millisecond, want: 1500 * time.Millisecond},
		{period: 500 * time.Microsecond, want: time.Millisecond},
		{period: 50 * 24 * time.Hour, want: math.MaxUint32 * time.Millisecond},
		{period: 0, want: 0},
		{period: -time.Second, want: 0},
	}
	for _, tt := range tests {
		require.NoError(t, hostcall.SetTickPeriod(tt.period))
		assert.Equal(t, tt.want, host.TickPeriod(), "period %s", tt.period)
	}
}

func TestOutCallRequiresRunningContext(t *testing.T) {
	// The mock fails the test if any call reaches the host.
	mockHost(t)

	_, err := hostcall.DispatchHttpCall("cluster", [][2]string{{":path", "/"}}, nil, nil, time.Second)
	assert.ErrorIs(t, err, dispatcher.ErrUnknownID)
	_, err = hostcall.DispatchGrpcCall("cluster", "svc", "Method", nil, nil, time.Second)
	assert.ErrorIs(t, err, dispatcher.ErrUnknownID)
	_, err = hostcall.OpenGrpcStream("cluster", "svc", "Method", nil)
	assert.ErrorIs(t, err, dispatcher.ErrUnknownID)
}

func TestOutCallFromFactoryIsRefused(t *testing.T) {
	var dispatchErr error
	t.Cleanup(dispatcher.ReplaceFactories(dispatcher.Factories{
		Http: func(uint32, uint32) shared.HttpContext {
			_, dispatchErr = hostcall.DispatchHttpCall("cluster", [][2]string{{":path", "/"}}, nil, nil, time.Second)
			return &shared.EmptyHttpContext{}
		},
	}))
	host := fakeHost(t)
	require.True(t, host.StartPlugin())

	host.NewHttpContext()
	assert.ErrorIs(t, dispatchErr, dispatcher.ErrUnknownID)
	assert.Empty(t, host.HttpCallouts())
}

type calloutHttp struct {
	shared.EmptyHttpContext
	token  uint32
	status string
	body   string
}

func (c *calloutHttp) OnHttpRequestHeaders(numHeaders int, endOfStream bool) shared.Action {
	token, err := hostcall.DispatchHttpCall("auth", [][2]string{{":method", "GET"}, {":path", "/check"}},
		nil, nil, 2*time.Second)
	if err != nil {
		return shared.ActionContinue
	}
	c.token = token
	return shared.ActionPause
}

func (c *calloutHttp) OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int) {
	c.status, _, _ = hostcall.GetHttpCallResponseHeader(":status")
	body, _ := hostcall.GetHttpCallResponseBody(0, bodySize)
	c.body = string(body)
	_ = hostcall.SetHttpRequestHeader("x-auth", c.status)
	_ = hostcall.ResumeHttpRequest()
}

func TestHttpCalloutRoundTrip(t *testing.T) {
	t.Cleanup(dispatcher.ReplaceFactories(dispatcher.Factories{
		Http: func(contextID, rootContextID uint32) shared.HttpContext { return &calloutHttp{} },
	}))
	host := fakeHost(t)
	require.True(t, host.StartPlugin())

	id := host.NewHttpContext()
	require.Equal(t, shared.ActionPause, host.CallOnRequestHeaders(id, [][2]string{{":path", "/"}}, true))

	callouts := host.HttpCallouts()
	require.Len(t, callouts, 1)
	assert.Equal(t, "auth", callouts[0].Upstream)
	assert.Equal(t, id, callouts[0].ContextID)
	assert.Equal(t, 2*time.Second, callouts[0].Timeout)
	owner, ok := dispatcher.Default().Owner(callouts[0].Token)
	require.True(t, ok)
	assert.Equal(t, id, owner)

	host.CallOnHttpCallResponse(callouts[0].Token, [][2]string{{":status", "200"}}, []byte("ok"), nil)

	assert.Equal(t, [][2]string{{":path", "/"}, {"x-auth", "200"}}, host.RequestHeaders(id))
	assert.Equal(t, []shared.StreamType{shared.StreamTypeHttpRequest}, host.Continued(id))
	assert.Zero(t, dispatcher.Default().PendingTokens())
	assert.Empty(t, host.Logs(shared.LogLevelError))
}

func TestLocalResponses(t *testing.T) {
	host := fakeHost(t)

	require.NoError(t, hostcall.SendHttpResponse(403, [][2]string{{"content-type", "text/plain"}}, []byte("denied")))
	response := host.LocalResponse(0)
	require.NotNil(t, response)
	assert.Equal(t, uint32(403), response.StatusCode)
	assert.Equal(t, int32(-1), response.GrpcStatus)
	assert.Equal(t, [][2]string{{"content-type", "text/plain"}}, response.Headers)

	require.NoError(t, hostcall.SendGrpcResponse(codes.PermissionDenied, "nope"))
	response = host.LocalResponse(0)
	assert.Equal(t, int32(codes.PermissionDenied), response.GrpcStatus)
	assert.Equal(t, []byte("nope"), response.Body)
}
