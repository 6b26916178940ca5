package fake

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

func TestHeaderMap(t *testing.T) {
	m := NewHeaderMap([][2]string{{"Accept", "a"}, {"x-b", "1"}, {"accept", "b"}})

	assert.Equal(t, []string{"a", "b"}, m.Get("ACCEPT"))
	v, ok := m.GetOne("accept")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	m.Set("accept", "c")
	assert.Equal(t, [][2]string{{"Accept", "c"}, {"x-b", "1"}}, m.GetAll())

	m.Add("X-C", "2")
	m.Remove("x-b")
	assert.Equal(t, [][2]string{{"Accept", "c"}, {"x-c", "2"}}, m.GetAll())

	_, ok = m.GetOne("x-b")
	assert.False(t, ok)
}

func TestSplice(t *testing.T) {
	for _, tc := range []struct {
		name        string
		start, size int
		value       string
		want        string
	}{
		{name: "replace all", start: 0, size: 1 << 20, value: "new", want: "new"},
		{name: "prepend", start: 0, size: 0, value: ">", want: ">hello"},
		{name: "append", start: 5, size: 0, value: "!", want: "hello!"},
		{name: "middle", start: 1, size: 3, value: "EL", want: "hELo"},
		{name: "past end", start: 9, size: 2, value: "?", want: "hello?"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(splice([]byte("hello"), tc.start, tc.size, []byte(tc.value))))
		})
	}
}

func TestBuffersFollowEffectiveContext(t *testing.T) {
	h, reset := NewHost(WithPluginConfiguration([]byte(`{"a":1}`)))
	defer reset()
	h.contexts[7], h.contexts[8] = true, true
	h.setBuffer(7, shared.BufferTypeHttpRequestBody, []byte("seven"))
	h.setBuffer(8, shared.BufferTypeHttpRequestBody, []byte("eight"))

	require.Equal(t, shared.StatusOk, h.SetEffectiveContext(8))
	data, st := h.GetBufferBytes(shared.BufferTypeHttpRequestBody, 1, 3)
	require.Equal(t, shared.StatusOk, st)
	assert.Equal(t, "igh", string(data))

	require.Equal(t, shared.StatusOk, h.SetEffectiveContext(7))
	require.Equal(t, shared.StatusOk, h.SetBufferBytes(shared.BufferTypeHttpRequestBody, 0, 5, []byte("7")))
	assert.Equal(t, "7", string(h.RequestBody(7)))
	assert.Equal(t, "eight", string(h.RequestBody(8)))

	config, st := h.GetBufferBytes(shared.BufferTypePluginConfiguration, 0, 100)
	require.Equal(t, shared.StatusOk, st)
	assert.Equal(t, `{"a":1}`, string(config))

	_, st = h.GetBufferBytes(shared.BufferTypeVMConfiguration, 0, 100)
	assert.Equal(t, shared.StatusNotFound, st)
	assert.Equal(t, shared.StatusBadArgument, h.SetEffectiveContext(99))
	assert.Equal(t, shared.StatusBadArgument, h.SetBufferBytes(shared.BufferTypePluginConfiguration, 0, 0, nil))
}

func TestMetrics(t *testing.T) {
	h, reset := NewHost()
	defer reset()

	requests, st := h.DefineMetric(shared.MetricTypeCounter, "requests")
	require.Equal(t, shared.StatusOk, st)
	again, _ := h.DefineMetric(shared.MetricTypeCounter, "requests")
	assert.Equal(t, requests, again)
	_, st = h.DefineMetric(shared.MetricTypeGauge, "requests")
	assert.Equal(t, shared.StatusBadArgument, st)

	active, _ := h.DefineMetric(shared.MetricTypeGauge, "active")
	latency, _ := h.DefineMetric(shared.MetricTypeHistogram, "latency")

	assert.Equal(t, shared.StatusOk, h.IncrementMetric(requests, 2))
	assert.Equal(t, shared.StatusBadArgument, h.IncrementMetric(requests, -1))
	assert.Equal(t, shared.StatusOk, h.IncrementMetric(active, -3))
	assert.Equal(t, shared.StatusOk, h.RecordMetric(latency, 10))
	assert.Equal(t, shared.StatusOk, h.RecordMetric(latency, 30))
	assert.Equal(t, shared.StatusBadArgument, h.IncrementMetric(latency, 1))
	assert.Equal(t, shared.StatusNotFound, h.RecordMetric(99, 1))

	value, ok := h.MetricValue("active")
	require.True(t, ok)
	assert.Equal(t, int64(-3), value)

	families := h.Metrics()
	require.Len(t, families, 3)
	assert.Equal(t, "active", families[0].GetName())
	assert.Equal(t, dto.MetricType_GAUGE, families[0].GetType())
	assert.Equal(t, float64(-3), families[0].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, "latency", families[1].GetName())
	assert.Equal(t, uint64(2), families[1].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(40), families[1].GetMetric()[0].GetHistogram().GetSampleSum())
	assert.Equal(t, "requests", families[2].GetName())
	assert.Equal(t, float64(2), families[2].GetMetric()[0].GetCounter().GetValue())
}

func TestGrpcBookkeeping(t *testing.T) {
	h, reset := NewHost()
	defer reset()

	token, st := h.GrpcStream("cluster", "svc", "Watch", nil)
	require.Equal(t, shared.StatusOk, st)
	assert.Equal(t, shared.StatusOk, h.GrpcSend(token, []byte("m1"), false))
	assert.Equal(t, shared.StatusOk, h.GrpcCancel(token))

	call, ok := h.FindGrpcCall(token)
	require.True(t, ok)
	assert.True(t, call.Stream)
	assert.True(t, call.Cancelled)
	assert.Equal(t, [][]byte{[]byte("m1")}, call.Sent)

	unary, _ := h.GrpcCall("cluster", "svc", "Get", nil, []byte("req"), 100)
	assert.Equal(t, shared.StatusNotFound, h.GrpcSend(unary, nil, true))
	_, st = h.GrpcCall("", "svc", "Get", nil, nil, 0)
	assert.Equal(t, shared.StatusBadArgument, st)
}
