// Package hostcall is the gateway extensions use to call back into the host. Every call goes
// through the host of the process-wide dispatcher and targets the context the host is currently
// dispatching into, or the one selected for an out-call completion.
//
// Host failures are returned as shared.Status errors. Calls documented as lookups report a
// missing entry through their results instead of an error.
package hostcall

import (
	"math"
	"time"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// Pair is a header or metadata entry whose value may hold arbitrary bytes.
type Pair = wire.Pair

func host() shared.Host {
	return dispatcher.Default().Host()
}

func Log(level shared.LogLevel, message string) error {
	return host().Log(level, message).Err()
}

func GetLogLevel() (shared.LogLevel, error) {
	level, status := host().GetLogLevel()
	return level, status.Err()
}

func GetCurrentTime() (time.Time, error) {
	nanos, status := host().GetCurrentTimeNanoseconds()
	if status != shared.StatusOk {
		return time.Time{}, status
	}
	return time.Unix(0, int64(nanos)), nil
}

// SetTickPeriod starts, changes or, with a zero period, stops the tick of the current root
// context.
func SetTickPeriod(period time.Duration) error {
	return host().SetTickPeriodMilliseconds(durationMillis(period)).Err()
}

// GetBuffer reads up to maxSize bytes from start. A buffer that does not exist in the current
// context is reported as nil.
func GetBuffer(bufferType shared.BufferType, start, maxSize int) ([]byte, error) {
	data, status := host().GetBufferBytes(bufferType, start, maxSize)
	switch status {
	case shared.StatusOk:
		return data, nil
	case shared.StatusNotFound, shared.StatusEmpty:
		return nil, nil
	}
	return nil, status
}

// SetBuffer replaces size bytes at start with value.
func SetBuffer(bufferType shared.BufferType, start, size int, value []byte) error {
	return host().SetBufferBytes(bufferType, start, size, value).Err()
}

func GetMap(mapType shared.MapType) ([][2]string, error) {
	data, status := host().GetHeaderMapPairs(mapType)
	if status != shared.StatusOk {
		return nil, status
	}
	return wire.DecodeStringPairs(data)
}

func GetMapBytes(mapType shared.MapType) ([]Pair, error) {
	data, status := host().GetHeaderMapPairs(mapType)
	if status != shared.StatusOk {
		return nil, status
	}
	return wire.DecodePairs(data)
}

func SetMap(mapType shared.MapType, pairs [][2]string) error {
	return host().SetHeaderMapPairs(mapType, wire.EncodeStringPairs(pairs)).Err()
}

func SetMapBytes(mapType shared.MapType, pairs []Pair) error {
	return host().SetHeaderMapPairs(mapType, wire.EncodePairs(pairs)).Err()
}

// GetMapValue returns the value of key. The second result is false when the key is absent.
func GetMapValue(mapType shared.MapType, key string) (string, bool, error) {
	value, ok, err := GetMapValueBytes(mapType, key)
	return string(value), ok, err
}

func GetMapValueBytes(mapType shared.MapType, key string) ([]byte, bool, error) {
	value, status := host().GetHeaderMapValue(mapType, key)
	switch status {
	case shared.StatusOk:
		return value, true, nil
	case shared.StatusNotFound:
		return nil, false, nil
	}
	return nil, false, status
}

// SetMapValue replaces every value of key with value.
func SetMapValue(mapType shared.MapType, key, value string) error {
	return host().ReplaceHeaderMapValue(mapType, key, []byte(value)).Err()
}

func SetMapValueBytes(mapType shared.MapType, key string, value []byte) error {
	return host().ReplaceHeaderMapValue(mapType, key, value).Err()
}

func AddMapValue(mapType shared.MapType, key, value string) error {
	return host().AddHeaderMapValue(mapType, key, []byte(value)).Err()
}

func AddMapValueBytes(mapType shared.MapType, key string, value []byte) error {
	return host().AddHeaderMapValue(mapType, key, value).Err()
}

func RemoveMapValue(mapType shared.MapType, key string) error {
	return host().RemoveHeaderMapValue(mapType, key).Err()
}

// GetProperty looks up a property such as ("source", "address"). The second result is false
// when the property is not available in the current context.
func GetProperty(path ...string) ([]byte, bool, error) {
	value, status := host().GetProperty(wire.EncodePath(path))
	switch status {
	case shared.StatusOk:
		return value, true, nil
	case shared.StatusNotFound:
		return nil, false, nil
	}
	return nil, false, status
}

func SetProperty(path []string, value []byte) error {
	return host().SetProperty(wire.EncodePath(path), value).Err()
}

// GetSharedData returns the value stored under key and its version for SetSharedData. A
// missing key returns a nil value and version 0.
func GetSharedData(key string) ([]byte, uint32, error) {
	value, cas, status := host().GetSharedData(key)
	switch status {
	case shared.StatusOk:
		return value, cas, nil
	case shared.StatusNotFound:
		return nil, 0, nil
	}
	return nil, 0, status
}

// SetSharedData stores value under key. With a non-zero cas the write only succeeds if the
// stored version still matches, otherwise shared.StatusCasMismatch is returned.
func SetSharedData(key string, value []byte, cas uint32) error {
	return host().SetSharedData(key, value, cas).Err()
}

func RegisterSharedQueue(name string) (uint32, error) {
	queueID, status := host().RegisterSharedQueue(name)
	return queueID, status.Err()
}

// ResolveSharedQueue finds a queue registered by another VM. The second result is false when
// no such queue exists.
func ResolveSharedQueue(vmID, name string) (uint32, bool, error) {
	queueID, status := host().ResolveSharedQueue(vmID, name)
	switch status {
	case shared.StatusOk:
		return queueID, true, nil
	case shared.StatusNotFound:
		return 0, false, nil
	}
	return 0, false, status
}

// DequeueSharedQueue pops the oldest item. An empty queue returns nil.
func DequeueSharedQueue(queueID uint32) ([]byte, error) {
	value, status := host().DequeueSharedQueue(queueID)
	switch status {
	case shared.StatusOk:
		return value, nil
	case shared.StatusEmpty:
		return nil, nil
	}
	return nil, status
}

func EnqueueSharedQueue(queueID uint32, value []byte) error {
	return host().EnqueueSharedQueue(queueID, value).Err()
}

func CallForeignFunction(name string, arguments []byte) ([]byte, error) {
	result, status := host().CallForeignFunction(name, arguments)
	if status != shared.StatusOk {
		return nil, status
	}
	return result, nil
}

// Done finishes the teardown of a context that returned false from OnDone.
func Done() error {
	return host().Done().Err()
}

func DefineMetric(metricType shared.MetricType, name string) (uint32, error) {
	metricID, status := host().DefineMetric(metricType, name)
	return metricID, status.Err()
}

func GetMetric(metricID uint32) (uint64, error) {
	value, status := host().GetMetric(metricID)
	return value, status.Err()
}

func RecordMetric(metricID uint32, value uint64) error {
	return host().RecordMetric(metricID, value).Err()
}

func IncrementMetric(metricID uint32, offset int64) error {
	return host().IncrementMetric(metricID, offset).Err()
}

// durationMillis converts d for the host. A positive d never becomes 0, which the host reads as
// "no timer", and durations beyond the uint32 range saturate.
func durationMillis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	switch {
	case ms == 0:
		return 1
	case ms > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(ms)
}
