package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared/mocks"
)

// effectiveHost records SetEffectiveContext calls.
type effectiveHost struct {
	shared.UnimplementedHost
	effective uint32
	calls     []uint32
}

func (h *effectiveHost) SetEffectiveContext(contextID uint32) shared.Status {
	h.effective = contextID
	h.calls = append(h.calls, contextID)
	return shared.StatusOk
}

type testRoot struct {
	shared.EmptyRootContext
	d           *Dispatcher
	contextType *shared.ContextType
	decline     bool
	action      shared.Action
	configured  bool
	ticks       int
}

func (r *testRoot) OnConfigure(int) bool {
	r.configured = true
	return true
}

func (r *testRoot) OnTick() { r.ticks++ }

func (r *testRoot) NewHttpContext(contextID uint32) shared.HttpContext {
	if r.decline {
		return nil
	}
	return &testHttp{id: contextID, d: r.d, action: r.action}
}

func (r *testRoot) NewStreamContext(contextID uint32) shared.StreamContext {
	if r.decline {
		return nil
	}
	return &testStream{id: contextID}
}

func (r *testRoot) ContextType() (shared.ContextType, bool) {
	if r.contextType == nil {
		return 0, false
	}
	return *r.contextType, true
}

type testHttp struct {
	shared.EmptyHttpContext
	id      uint32
	d       *Dispatcher
	action  shared.Action
	cursor  []uint32
	onHdrs  func()
	onCall  func(token uint32)
	calls   [][4]int
	grpc    []string
	foreign []uint32
}

func (h *testHttp) OnHttpRequestHeaders(numHeaders int, endOfStream bool) shared.Action {
	h.cursor = append(h.cursor, h.d.ActiveID())
	if h.onHdrs != nil {
		h.onHdrs()
	}
	return h.action
}

func (h *testHttp) OnHttpCallResponse(token uint32, numHeaders, bodySize, numTrailers int) {
	h.cursor = append(h.cursor, h.d.ActiveID())
	h.calls = append(h.calls, [4]int{int(token), numHeaders, bodySize, numTrailers})
	if h.onCall != nil {
		h.onCall(token)
	}
}

func (h *testHttp) OnGrpcCallResponse(token uint32, statusCode uint32, responseSize int) {
	h.grpc = append(h.grpc, "call")
}

func (h *testHttp) OnGrpcStreamInitialMetadata(token uint32, numElements int) {
	h.grpc = append(h.grpc, "initial")
}

func (h *testHttp) OnGrpcStreamMessage(token uint32, messageSize int) {
	h.grpc = append(h.grpc, "message")
}

func (h *testHttp) OnGrpcStreamTrailingMetadata(token uint32, numElements int) {
	h.grpc = append(h.grpc, "trailing")
}

func (h *testHttp) OnGrpcStreamClose(token uint32, statusCode uint32) {
	h.grpc = append(h.grpc, "close")
}

func (h *testHttp) OnForeignFunction(functionID uint32, argumentsSize int) {
	h.foreign = append(h.foreign, functionID)
}

type testStream struct {
	shared.EmptyStreamContext
	id uint32
}

func (s *testStream) OnNewConnection() shared.Action { return shared.ActionPause }

func newTestDispatcher(t *testing.T, root *testRoot) (*Dispatcher, *effectiveHost) {
	t.Helper()
	host := &effectiveHost{}
	d := New(host, Factories{Root: func(uint32) shared.RootContext { return root }}, nil)
	root.d = d
	return d, host
}

func httpType() *shared.ContextType {
	t := shared.ContextTypeHttp
	return &t
}

func TestCreateDuplicateID(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})

	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	err := d.OnContextCreate(1, 0)
	assert.ErrorIs(t, err, ErrDuplicateID)
	err = d.OnContextCreate(2, 1)
	assert.ErrorIs(t, err, ErrDuplicateID)
	err = d.Registry().CreateStream(2, 1)
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, 2, d.Registry().Len())
	assert.Equal(t, KindRoot, d.Registry().Kind(1))
	assert.Equal(t, KindHttp, d.Registry().Kind(2))
}

func TestVariantExclusivity(t *testing.T) {
	r := NewRegistry(Factories{})
	require.NoError(t, r.CreateRoot(1))
	require.NoError(t, r.CreateRoot(10))
	r.factories.Http = func(uint32, uint32) shared.HttpContext { return &shared.EmptyHttpContext{} }
	r.factories.Stream = func(uint32, uint32) shared.StreamContext { return &shared.EmptyStreamContext{} }
	require.NoError(t, r.CreateHttp(2, 1))
	require.NoError(t, r.CreateStream(3, 10))

	assert.ErrorIs(t, r.CreateStream(2, 1), ErrDuplicateID)
	assert.ErrorIs(t, r.CreateHttp(3, 1), ErrDuplicateID)
	assert.ErrorIs(t, r.CreateRoot(3), ErrDuplicateID)

	for id, kind := range map[uint32]Kind{1: KindRoot, 10: KindRoot, 2: KindHttp, 3: KindStream} {
		instance, ok := r.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, kind, instance.Kind)
		assert.NotNil(t, instance.Context())
	}

	require.NoError(t, r.Remove(3))
	_, ok := r.Lookup(3)
	assert.False(t, ok)
	assert.Equal(t, 3, r.Len())
}

func TestParentResolution(t *testing.T) {
	r := NewRegistry(Factories{})
	require.NoError(t, r.CreateRoot(1))

	assert.ErrorIs(t, r.CreateHttp(2, 9), ErrUnknownParent)
	assert.ErrorIs(t, r.CreateStream(2, 9), ErrUnknownParent)
	assert.ErrorIs(t, r.DispatchCreate(2, 9), ErrUnknownParent)

	r.factories.Http = func(uint32, uint32) shared.HttpContext { return &shared.EmptyHttpContext{} }
	require.NoError(t, r.CreateHttp(2, 1))
	// An http context is not a valid parent.
	assert.ErrorIs(t, r.CreateHttp(3, 2), ErrUnknownParent)
}

func TestFactoryDeclined(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType(), decline: true})
	require.NoError(t, d.OnContextCreate(1, 0))

	assert.ErrorIs(t, d.OnContextCreate(2, 1), ErrFactoryDeclined)
	assert.ErrorIs(t, d.Registry().CreateStream(3, 1), ErrFactoryDeclined)
	assert.Equal(t, 1, d.Registry().Len())

	r := NewRegistry(Factories{Root: func(uint32) shared.RootContext { return nil }})
	assert.ErrorIs(t, r.CreateRoot(1), ErrFactoryDeclined)
}

func TestDispatchCreatePrecedence(t *testing.T) {
	streamType := shared.ContextTypeStream
	bogusType := shared.ContextType(7)
	newHttp := func(uint32, uint32) shared.HttpContext { return &shared.EmptyHttpContext{} }
	newStream := func(uint32, uint32) shared.StreamContext { return &shared.EmptyStreamContext{} }

	for _, tc := range []struct {
		name        string
		factories   Factories
		contextType *shared.ContextType
		want        Kind
		err         error
	}{
		{name: "http factory", factories: Factories{Http: newHttp}, want: KindHttp},
		{name: "stream factory", factories: Factories{Stream: newStream}, want: KindStream},
		{name: "both factories", factories: Factories{Http: newHttp, Stream: newStream}, contextType: &streamType, want: KindHttp},
		{name: "root declares http", contextType: httpType(), want: KindHttp},
		{name: "root declares stream", contextType: &streamType, want: KindStream},
		{name: "root declares nothing", err: ErrAmbiguousContextType},
		{name: "root declares unknown type", contextType: &bogusType, err: ErrAmbiguousContextType},
	} {
		t.Run(tc.name, func(t *testing.T) {
			root := &testRoot{contextType: tc.contextType}
			factories := tc.factories
			factories.Root = func(uint32) shared.RootContext { return root }
			d := New(&effectiveHost{}, factories, nil)
			root.d = d

			require.NoError(t, d.OnContextCreate(1, 0))
			err := d.OnContextCreate(2, 1)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Equal(t, Kind(0), d.Registry().Kind(2))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Registry().Kind(2))
		})
	}
}

func TestAmbiguousFactoriesDiagnostic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := New(&effectiveHost{}, Factories{
		Http:   func(uint32, uint32) shared.HttpContext { return &shared.EmptyHttpContext{} },
		Stream: func(uint32, uint32) shared.StreamContext { return &shared.EmptyStreamContext{} },
	}, zap.New(core))

	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))
	require.NoError(t, d.OnContextCreate(3, 1))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "ambiguous context factories")

	d.SetFactories(d.Registry().Factories())
	require.NoError(t, d.OnContextCreate(4, 1))
	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestScenarioRootThenHttp(t *testing.T) {
	root := &testRoot{contextType: httpType(), action: shared.ActionPause}
	d, _ := newTestDispatcher(t, root)

	require.NoError(t, d.OnContextCreate(1, 0))
	ok, err := d.OnVMStart(1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = d.OnConfigure(1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, root.configured)

	require.NoError(t, d.Registry().CreateHttp(2, 1))
	action, err := d.OnHttpRequestHeaders(2, 3, false)
	require.NoError(t, err)
	assert.Equal(t, shared.ActionPause, action)

	http, _ := d.Registry().Http(2)
	assert.Equal(t, []uint32{2}, http.(*testHttp).cursor)
}

func TestScenarioHttpCallout(t *testing.T) {
	root := &testRoot{contextType: httpType()}
	d, host := newTestDispatcher(t, root)
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))
	require.NoError(t, d.OnContextCreate(3, 1))

	const token = 42
	http, _ := d.Registry().Http(2)
	http.(*testHttp).onHdrs = func() {
		require.NoError(t, d.RegisterHttpCallout(token))
	}

	_, err := d.OnHttpRequestHeaders(2, 3, false)
	require.NoError(t, err)
	owner, ok := d.Owner(token)
	require.True(t, ok)
	assert.Equal(t, uint32(2), owner)

	// Another context runs in between; the completion must still target 2.
	_, err = d.OnHttpRequestHeaders(3, 1, true)
	require.NoError(t, err)

	require.NoError(t, d.OnHttpCallResponse(token, 2, 128, 0))
	assert.Equal(t, [][4]int{{token, 2, 128, 0}}, http.(*testHttp).calls)
	assert.Equal(t, []uint32{2}, host.calls)
	assert.Equal(t, uint32(2), host.effective)
	assert.Equal(t, []uint32{2, 2}, http.(*testHttp).cursor)
	assert.Zero(t, d.PendingTokens())

	err = d.OnHttpCallResponse(token, 2, 128, 0)
	assert.ErrorIs(t, err, ErrUnknownToken)
	var dispatchErr *Error
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, uint32(token), dispatchErr.Token)
}

func TestScenarioStreamDeletedTwice(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.Registry().CreateStream(5, 1))

	action, err := d.OnNewConnection(5)
	require.NoError(t, err)
	assert.Equal(t, shared.ActionPause, action)

	require.NoError(t, d.OnDelete(5))
	assert.ErrorIs(t, d.OnDelete(5), ErrUnknownID)
}

func TestGrpcTokenLifecycle(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))
	http, _ := d.Registry().Http(2)
	h := http.(*testHttp)

	release, err := d.enter("test", 2)
	require.NoError(t, err)
	require.NoError(t, d.RegisterGrpcCall(10))
	require.NoError(t, d.RegisterGrpcCall(11))
	require.NoError(t, d.RegisterGrpcStream(20))
	assert.ErrorIs(t, d.RegisterGrpcStream(20), ErrDuplicateToken)
	release()

	// Unary: the first completion consumes the token.
	require.NoError(t, d.OnGrpcReceive(10, 5))
	assert.ErrorIs(t, d.OnGrpcReceive(10, 5), ErrUnknownToken)
	assert.ErrorIs(t, d.OnGrpcClose(10, 0), ErrUnknownToken)
	require.NoError(t, d.OnGrpcClose(11, 14))
	assert.ErrorIs(t, d.OnGrpcClose(11, 14), ErrUnknownToken)

	// Stream: only close consumes the token.
	require.NoError(t, d.OnGrpcReceiveInitialMetadata(20, 1))
	require.NoError(t, d.OnGrpcReceive(20, 3))
	require.NoError(t, d.OnGrpcReceive(20, 3))
	require.NoError(t, d.OnGrpcReceiveTrailingMetadata(20, 1))
	require.NoError(t, d.OnGrpcClose(20, 0))
	assert.ErrorIs(t, d.OnGrpcReceive(20, 3), ErrUnknownToken)
	assert.ErrorIs(t, d.OnGrpcReceiveInitialMetadata(20, 1), ErrUnknownToken)
	assert.ErrorIs(t, d.OnGrpcReceiveTrailingMetadata(20, 1), ErrUnknownToken)

	assert.Equal(t, []string{"call", "call", "initial", "message", "message", "trailing", "close"}, h.grpc)
}

func TestCancelledTokenIsDropped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := &testRoot{contextType: httpType()}
	d := New(&effectiveHost{}, Factories{Root: func(uint32) shared.RootContext { return root }}, zap.New(core))
	root.d = d
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	release, err := d.enter("test", 2)
	require.NoError(t, err)
	require.NoError(t, d.RegisterGrpcStream(7))
	release()

	d.CancelToken(7)
	require.NoError(t, d.OnGrpcClose(7, 1))
	assert.Equal(t, 1, logs.FilterMessage("dropping completion of cancelled call").Len())

	// The cancellation is remembered once.
	assert.ErrorIs(t, d.OnGrpcClose(7, 1), ErrUnknownToken)
	http, _ := d.Registry().Http(2)
	assert.Empty(t, http.(*testHttp).grpc)
}

func TestDeleteForgetsCancelledTokens(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))

	for i := uint32(0); i < 1000; i++ {
		id, token := 2+i, 100+i
		require.NoError(t, d.OnContextCreate(id, 1))
		release, err := d.enter("test", id)
		require.NoError(t, err)
		require.NoError(t, d.RegisterGrpcStream(token))
		release()
		d.CancelToken(token)
		require.NoError(t, d.OnDelete(id))
	}

	assert.Equal(t, 1, d.Registry().Len())
	assert.Zero(t, d.PendingTokens())
	assert.Zero(t, d.CancelledTokens())
}

func TestCancelledTokensAreBounded(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{})
	require.NoError(t, d.OnContextCreate(1, 0))

	release, err := d.enter("test", 1)
	require.NoError(t, err)
	for token := uint32(1); token <= maxCancelledTokens+10; token++ {
		require.NoError(t, d.RegisterGrpcCall(token))
		d.CancelToken(token)
	}
	release()

	assert.Equal(t, maxCancelledTokens, d.CancelledTokens())
	assert.Zero(t, d.PendingTokens())
	require.NoError(t, d.OnDelete(1))
	assert.Zero(t, d.CancelledTokens())
}

func TestRegisterWithoutActiveContext(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{})
	assert.ErrorIs(t, d.RegisterHttpCallout(1), ErrUnknownID)
}

func TestCursorRestoredAfterNestedDispatch(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))
	require.NoError(t, d.OnContextCreate(3, 1))

	http, _ := d.Registry().Http(2)
	http.(*testHttp).onHdrs = func() {
		_, err := d.OnHttpRequestHeaders(3, 0, true)
		require.NoError(t, err)
		// Tokens issued after the nested call still belong to 2.
		require.NoError(t, d.RegisterHttpCallout(99))
	}
	_, err := d.OnHttpRequestHeaders(2, 0, true)
	require.NoError(t, err)

	owner, ok := d.Owner(99)
	require.True(t, ok)
	assert.Equal(t, uint32(2), owner)
	assert.Zero(t, d.ActiveID())
}

func TestReentrantDispatch(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	var nested error
	http, _ := d.Registry().Http(2)
	http.(*testHttp).onHdrs = func() {
		_, nested = d.OnHttpRequestHeaders(2, 0, true)
	}
	_, err := d.OnHttpRequestHeaders(2, 0, true)
	require.NoError(t, err)
	assert.ErrorIs(t, nested, ErrReentrantDispatch)

	// The guard is released once the handler returns.
	http.(*testHttp).onHdrs = nil
	_, err = d.OnHttpRequestHeaders(2, 0, true)
	assert.NoError(t, err)
}

func TestWrongKind(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	assert.ErrorIs(t, d.OnTick(2), ErrUnknownID)
	_, err := d.OnNewConnection(2)
	assert.ErrorIs(t, err, ErrUnknownID)
	assert.Contains(t, err.Error(), "http context cannot handle a stream event")
	action, err := d.OnHttpRequestBody(1, 10, false)
	assert.ErrorIs(t, err, ErrUnknownID)
	assert.Equal(t, shared.ActionContinue, action)
	ok, err := d.OnConfigure(9, 0)
	assert.ErrorIs(t, err, ErrUnknownID)
	assert.True(t, ok)

	// Any kind accepts done, log and foreign functions.
	done, err := d.OnDone(2)
	require.NoError(t, err)
	assert.True(t, done)
	require.NoError(t, d.OnLog(1))
	require.NoError(t, d.OnForeignFunction(2, 5, 0))
	http, _ := d.Registry().Http(2)
	assert.Equal(t, []uint32{5}, http.(*testHttp).foreign)
}

func TestRootEvents(t *testing.T) {
	root := &testRoot{}
	d, _ := newTestDispatcher(t, root)
	require.NoError(t, d.OnContextCreate(1, 0))

	require.NoError(t, d.OnTick(1))
	require.NoError(t, d.OnTick(1))
	require.NoError(t, d.OnQueueReady(1, 3))
	assert.Equal(t, 2, root.ticks)
}

func TestDeletePurgesPendingTokens(t *testing.T) {
	d, _ := newTestDispatcher(t, &testRoot{contextType: httpType()})
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	release, err := d.enter("test", 2)
	require.NoError(t, err)
	require.NoError(t, d.RegisterHttpCallout(1))
	require.NoError(t, d.RegisterGrpcStream(2))
	release()
	require.Equal(t, 2, d.PendingTokens())

	require.NoError(t, d.OnDelete(2))
	assert.Zero(t, d.PendingTokens())
	assert.ErrorIs(t, d.OnHttpCallResponse(1, 0, 0, 0), ErrUnknownToken)
}

func TestEffectiveContextFailureSkipsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)
	root := &testRoot{contextType: httpType()}
	d := New(host, Factories{Root: func(uint32) shared.RootContext { return root }}, nil)
	root.d = d
	require.NoError(t, d.OnContextCreate(1, 0))
	require.NoError(t, d.OnContextCreate(2, 1))

	release, err := d.enter("test", 2)
	require.NoError(t, err)
	require.NoError(t, d.RegisterHttpCallout(8))
	release()

	host.EXPECT().SetEffectiveContext(uint32(2)).Return(shared.StatusBadArgument)
	err = d.OnHttpCallResponse(8, 1, 0, 0)
	assert.ErrorIs(t, err, shared.StatusBadArgument)

	http, _ := d.Registry().Http(2)
	assert.Empty(t, http.(*testHttp).calls)
}
