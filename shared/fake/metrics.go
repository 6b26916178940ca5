package fake

import (
	"sort"

	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

type metric struct {
	metricType shared.MetricType
	name       string
	value      int64
	samples    []uint64
}

type metricStore struct {
	byID   map[uint32]*metric
	byName map[string]uint32
}

func newMetricStore() *metricStore {
	return &metricStore{byID: make(map[uint32]*metric), byName: make(map[string]uint32)}
}

// define returns the existing ID when name was already defined with the same type.
func (s *metricStore) define(metricType shared.MetricType, name string) (uint32, shared.Status) {
	if metricType > shared.MetricTypeHistogram || name == "" {
		return 0, shared.StatusBadArgument
	}
	if id, ok := s.byName[name]; ok {
		if s.byID[id].metricType != metricType {
			return 0, shared.StatusBadArgument
		}
		return id, shared.StatusOk
	}
	id := uint32(len(s.byID) + 1)
	s.byID[id] = &metric{metricType: metricType, name: name}
	s.byName[name] = id
	return id, shared.StatusOk
}

func (s *metricStore) get(id uint32) (uint64, shared.Status) {
	m, ok := s.byID[id]
	if !ok {
		return 0, shared.StatusNotFound
	}
	return uint64(m.value), shared.StatusOk
}

func (s *metricStore) record(id uint32, value uint64) shared.Status {
	m, ok := s.byID[id]
	if !ok {
		return shared.StatusNotFound
	}
	if m.metricType == shared.MetricTypeHistogram {
		m.samples = append(m.samples, value)
	}
	m.value = int64(value)
	return shared.StatusOk
}

func (s *metricStore) increment(id uint32, offset int64) shared.Status {
	m, ok := s.byID[id]
	if !ok {
		return shared.StatusNotFound
	}
	switch m.metricType {
	case shared.MetricTypeCounter:
		if offset < 0 {
			return shared.StatusBadArgument
		}
	case shared.MetricTypeHistogram:
		return shared.StatusBadArgument
	}
	m.value += offset
	return shared.StatusOk
}

func (m *metric) family() *dto.MetricFamily {
	family := &dto.MetricFamily{Name: proto.String(m.name)}
	sample := &dto.Metric{}
	switch m.metricType {
	case shared.MetricTypeCounter:
		family.Type = dto.MetricType_COUNTER.Enum()
		sample.Counter = &dto.Counter{Value: proto.Float64(float64(m.value))}
	case shared.MetricTypeGauge:
		family.Type = dto.MetricType_GAUGE.Enum()
		sample.Gauge = &dto.Gauge{Value: proto.Float64(float64(m.value))}
	case shared.MetricTypeHistogram:
		family.Type = dto.MetricType_HISTOGRAM.Enum()
		var sum float64
		for _, v := range m.samples {
			sum += float64(v)
		}
		sample.Histogram = &dto.Histogram{
			SampleCount: proto.Uint64(uint64(len(m.samples))),
			SampleSum:   proto.Float64(sum),
		}
	}
	family.Metric = []*dto.Metric{sample}
	return family
}

// Metrics snapshots every defined metric, sorted by name.
func (h *Host) Metrics() []*dto.MetricFamily {
	families := make([]*dto.MetricFamily, 0, len(h.metrics.byID))
	for _, m := range h.metrics.byID {
		families = append(families, m.family())
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	return families
}

// MetricValue returns the current value of the metric called name.
func (h *Host) MetricValue(name string) (int64, bool) {
	id, ok := h.metrics.byName[name]
	if !ok {
		return 0, false
	}
	return h.metrics.byID[id].value, true
}

// HistogramSamples returns every value recorded into the histogram called name.
func (h *Host) HistogramSamples(name string) []uint64 {
	id, ok := h.metrics.byName[name]
	if !ok {
		return nil
	}
	return h.metrics.byID[id].samples
}
