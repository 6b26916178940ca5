// Package stats wraps host defined metrics. Metrics are usually defined once from
// RootContext.OnVMStart or OnConfigure and shared by the contexts the root creates.
package stats

import (
	"fmt"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

func define(metricType shared.MetricType, name string) (uint32, error) {
	id, err := hostcall.DefineMetric(metricType, name)
	if err != nil {
		return 0, fmt.Errorf("stats: define %s %q: %w", metricTypeName(metricType), name, err)
	}
	return id, nil
}

func metricTypeName(metricType shared.MetricType) string {
	switch metricType {
	case shared.MetricTypeCounter:
		return "counter"
	case shared.MetricTypeGauge:
		return "gauge"
	}
	return "histogram"
}

// Counter only goes up.
type Counter struct {
	id uint32
}

func NewCounter(name string) (Counter, error) {
	id, err := define(shared.MetricTypeCounter, name)
	return Counter{id: id}, err
}

func (c Counter) ID() uint32 { return c.id }

func (c Counter) Get() (uint64, error) { return hostcall.GetMetric(c.id) }

func (c Counter) Increment(offset uint64) error {
	return hostcall.IncrementMetric(c.id, int64(offset))
}

type Gauge struct {
	id uint32
}

func NewGauge(name string) (Gauge, error) {
	id, err := define(shared.MetricTypeGauge, name)
	return Gauge{id: id}, err
}

func (g Gauge) ID() uint32 { return g.id }

func (g Gauge) Get() (uint64, error) { return hostcall.GetMetric(g.id) }

func (g Gauge) Record(value uint64) error { return hostcall.RecordMetric(g.id, value) }

// Add moves the gauge by offset, which may be negative.
func (g Gauge) Add(offset int64) error { return hostcall.IncrementMetric(g.id, offset) }

type Histogram struct {
	id uint32
}

func NewHistogram(name string) (Histogram, error) {
	id, err := define(shared.MetricTypeHistogram, name)
	return Histogram{id: id}, err
}

func (h Histogram) ID() uint32 { return h.id }

func (h Histogram) Get() (uint64, error) { return hostcall.GetMetric(h.id) }

// Record adds one sample.
func (h Histogram) Record(value uint64) error { return hostcall.RecordMetric(h.id, value) }
