package properties

import (
	"encoding/binary"
	"testing"
	"time"

	corev3 "github.com/envoyproxy/go-control-plane/envoy/config/core/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared/fake"
)

func int64Bytes(v int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(v))
}

func TestScalars(t *testing.T) {
	_, reset := fake.NewHost(
		fake.WithProperty([]string{"source", "address"}, []byte("10.0.0.2:5000")),
		fake.WithProperty([]string{"response", "code"}, int64Bytes(503)),
		fake.WithProperty([]string{"request", "duration"}, int64Bytes(int64(2*time.Millisecond))),
		fake.WithProperty([]string{"connection", "mtls"}, []byte{1}),
		fake.WithProperty([]string{"plugin_name"}, []byte{1, 2, 3}),
		fake.WithProperty([]string{"request", "headers"}, wire.EncodeStringPairs([][2]string{{":path", "/"}})),
	)
	t.Cleanup(reset)

	addr, ok, err := SourceAddress()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2:5000", addr)

	_, ok, err = DestinationAddress()
	require.NoError(t, err)
	assert.False(t, ok)

	code, ok, err := ResponseCode()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(503), code)

	duration, _, err := GetDuration("request", "duration")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Millisecond, duration)

	mtls, ok, err := GetBool("connection", "mtls")
	require.NoError(t, err)
	assert.True(t, ok && mtls)

	_, _, err = GetInt64("plugin_name")
	assert.ErrorContains(t, err, "want 8 bytes, got 3")

	headers, ok, err := GetStringMap("request", "headers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [][2]string{{":path", "/"}}, headers)
}

func TestMessages(t *testing.T) {
	node := &corev3.Node{Id: "sidecar~10.0.0.2", Cluster: "web"}
	nodeBytes, err := proto.Marshal(node)
	require.NoError(t, err)

	fields, err := structpb.NewStruct(map[string]any{"tier": "gold"})
	require.NoError(t, err)
	metadata := &corev3.Metadata{FilterMetadata: map[string]*structpb.Struct{"envoy.lb": fields}}
	metadataBytes, err := proto.Marshal(metadata)
	require.NoError(t, err)

	host, reset := fake.NewHost(
		fake.WithProperty([]string{"xds", "node"}, nodeBytes),
		fake.WithProperty([]string{"metadata"}, metadataBytes),
	)
	t.Cleanup(reset)

	got, err := GetNode()
	require.NoError(t, err)
	assert.True(t, proto.Equal(node, got), "got %v", got)

	gotMetadata, err := GetMetadata("metadata")
	require.NoError(t, err)
	assert.Equal(t, "gold", gotMetadata.GetFilterMetadata()["envoy.lb"].GetFields()["tier"].GetStringValue())

	missing, err := GetMetadata("xds", "listener_metadata")
	require.NoError(t, err)
	assert.Nil(t, missing)

	host.SetPropertyValue([]string{"xds", "node"}, []byte{0xff})
	_, err = GetNode()
	assert.Error(t, err)
}

func TestFilterState(t *testing.T) {
	var gotKey, gotValue string
	var gotSpan LifeSpan
	_, reset := fake.NewHost(fake.WithForeignFunction(SetEnvoyFilterStateFunction, func(args []byte) ([]byte, shared.Status) {
		var err error
		gotKey, gotValue, gotSpan, err = DecodeFilterStateArguments(args)
		if err != nil {
			return nil, shared.StatusParseFailure
		}
		return nil, shared.StatusOk
	}))
	t.Cleanup(reset)

	require.NoError(t, SetEnvoyFilterState("envoy.tcp_proxy.cluster", "egress-router1", LifeSpanDownstreamConnection))
	assert.Equal(t, "envoy.tcp_proxy.cluster", gotKey)
	assert.Equal(t, "egress-router1", gotValue)
	assert.Equal(t, LifeSpanDownstreamConnection, gotSpan)
}

func TestFilterStateUnsupported(t *testing.T) {
	_, reset := fake.NewHost()
	t.Cleanup(reset)

	err := SetEnvoyFilterState("k", "v", LifeSpanFilterChain)
	assert.ErrorIs(t, err, shared.StatusNotFound)
}

func TestFilterStateArguments(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		span  LifeSpan
		want  []byte
	}{
		{name: "default span is omitted", key: "k", value: "v", want: []byte{0x0a, 1, 'k', 0x12, 1, 'v'}},
		{name: "span", key: "k", span: LifeSpanDownstreamRequest, want: []byte{0x0a, 1, 'k', 0x18, 1}},
		{name: "empty", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeFilterStateArguments(tt.key, tt.value, tt.span)
			assert.Equal(t, tt.want, got)

			key, value, span, err := DecodeFilterStateArguments(got)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.span, span)
		})
	}

	_, _, _, err := DecodeFilterStateArguments([]byte{0x0a, 5, 'k'})
	assert.Error(t, err)
}
