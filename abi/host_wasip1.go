//go:build wasip1

package abi

import (
	"unsafe"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

func init() {
	dispatcher.SetPlatformHost(wasmHost{})
}

// wasmHost implements shared.Host with the proxy_* imports.
type wasmHost struct{}

var _ shared.Host = wasmHost{}

func status(s uint32) shared.Status { return shared.Status(s) }

// returned collects a buffer the host allocated through proxy_on_memory_allocate.
func returned(call func(data, size unsafe.Pointer) uint32) ([]byte, shared.Status) {
	var ptr, size uint32
	st := status(call(unsafe.Pointer(&ptr), unsafe.Pointer(&size)))
	if st != shared.StatusOk {
		return nil, st
	}
	return takeBytes(ptr, size), st
}

func (wasmHost) Log(level shared.LogLevel, message string) shared.Status {
	return status(proxyLog(uint32(level), stringPtr(message), uint32(len(message))))
}

func (wasmHost) GetLogLevel() (shared.LogLevel, shared.Status) {
	var level uint32
	st := status(proxyGetLogLevel(unsafe.Pointer(&level)))
	return shared.LogLevel(level), st
}

func (wasmHost) GetCurrentTimeNanoseconds() (uint64, shared.Status) {
	var nanos uint64
	st := status(proxyGetCurrentTimeNanoseconds(unsafe.Pointer(&nanos)))
	return nanos, st
}

func (wasmHost) SetTickPeriodMilliseconds(period uint32) shared.Status {
	return status(proxySetTickPeriodMilliseconds(period))
}

func (wasmHost) GetBufferBytes(bufferType shared.BufferType, start, maxSize int) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetBufferBytes(uint32(bufferType), uint32(start), uint32(maxSize), data, size)
	})
}

func (wasmHost) SetBufferBytes(bufferType shared.BufferType, start, size int, value []byte) shared.Status {
	return status(proxySetBufferBytes(uint32(bufferType), uint32(start), uint32(size), bytesPtr(value), uint32(len(value))))
}

func (wasmHost) GetHeaderMapPairs(mapType shared.MapType) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetHeaderMapPairs(uint32(mapType), data, size)
	})
}

func (wasmHost) SetHeaderMapPairs(mapType shared.MapType, pairs []byte) shared.Status {
	return status(proxySetHeaderMapPairs(uint32(mapType), bytesPtr(pairs), uint32(len(pairs))))
}

func (wasmHost) GetHeaderMapValue(mapType shared.MapType, key string) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetHeaderMapValue(uint32(mapType), stringPtr(key), uint32(len(key)), data, size)
	})
}

func (wasmHost) ReplaceHeaderMapValue(mapType shared.MapType, key string, value []byte) shared.Status {
	return status(proxyReplaceHeaderMapValue(uint32(mapType), stringPtr(key), uint32(len(key)),
		bytesPtr(value), uint32(len(value))))
}

func (wasmHost) AddHeaderMapValue(mapType shared.MapType, key string, value []byte) shared.Status {
	return status(proxyAddHeaderMapValue(uint32(mapType), stringPtr(key), uint32(len(key)),
		bytesPtr(value), uint32(len(value))))
}

func (wasmHost) RemoveHeaderMapValue(mapType shared.MapType, key string) shared.Status {
	return status(proxyRemoveHeaderMapValue(uint32(mapType), stringPtr(key), uint32(len(key))))
}

func (wasmHost) GetProperty(path []byte) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetProperty(bytesPtr(path), uint32(len(path)), data, size)
	})
}

func (wasmHost) SetProperty(path []byte, value []byte) shared.Status {
	return status(proxySetProperty(bytesPtr(path), uint32(len(path)), bytesPtr(value), uint32(len(value))))
}

func (wasmHost) GetSharedData(key string) ([]byte, uint32, shared.Status) {
	var cas uint32
	value, st := returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetSharedData(stringPtr(key), uint32(len(key)), data, size, unsafe.Pointer(&cas))
	})
	return value, cas, st
}

func (wasmHost) SetSharedData(key string, value []byte, cas uint32) shared.Status {
	return status(proxySetSharedData(stringPtr(key), uint32(len(key)), bytesPtr(value), uint32(len(value)), cas))
}

func (wasmHost) RegisterSharedQueue(name string) (uint32, shared.Status) {
	var queueID uint32
	st := status(proxyRegisterSharedQueue(stringPtr(name), uint32(len(name)), unsafe.Pointer(&queueID)))
	return queueID, st
}

func (wasmHost) ResolveSharedQueue(vmID, name string) (uint32, shared.Status) {
	var queueID uint32
	st := status(proxyResolveSharedQueue(stringPtr(vmID), uint32(len(vmID)), stringPtr(name), uint32(len(name)),
		unsafe.Pointer(&queueID)))
	return queueID, st
}

func (wasmHost) DequeueSharedQueue(queueID uint32) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyDequeueSharedQueue(queueID, data, size)
	})
}

func (wasmHost) EnqueueSharedQueue(queueID uint32, value []byte) shared.Status {
	return status(proxyEnqueueSharedQueue(queueID, bytesPtr(value), uint32(len(value))))
}

func (wasmHost) ContinueStream(streamType shared.StreamType) shared.Status {
	return status(proxyContinueStream(uint32(streamType)))
}

func (wasmHost) CloseStream(streamType shared.StreamType) shared.Status {
	return status(proxyCloseStream(uint32(streamType)))
}

func (wasmHost) SendLocalResponse(statusCode uint32, details, body, headers []byte, grpcStatus int32) shared.Status {
	return status(proxySendLocalResponse(statusCode, bytesPtr(details), uint32(len(details)),
		bytesPtr(body), uint32(len(body)), bytesPtr(headers), uint32(len(headers)), grpcStatus))
}

func (wasmHost) HttpCall(upstream string, headers, body, trailers []byte,
	timeoutMilliseconds uint32,
) (uint32, shared.Status) {
	var token uint32
	st := status(proxyHttpCall(stringPtr(upstream), uint32(len(upstream)),
		bytesPtr(headers), uint32(len(headers)), bytesPtr(body), uint32(len(body)),
		bytesPtr(trailers), uint32(len(trailers)), timeoutMilliseconds, unsafe.Pointer(&token)))
	return token, st
}

func (wasmHost) GrpcCall(upstream, serviceName, methodName string, initialMetadata, message []byte,
	timeoutMilliseconds uint32,
) (uint32, shared.Status) {
	var token uint32
	st := status(proxyGrpcCall(stringPtr(upstream), uint32(len(upstream)),
		stringPtr(serviceName), uint32(len(serviceName)), stringPtr(methodName), uint32(len(methodName)),
		bytesPtr(initialMetadata), uint32(len(initialMetadata)), bytesPtr(message), uint32(len(message)),
		timeoutMilliseconds, unsafe.Pointer(&token)))
	return token, st
}

func (wasmHost) GrpcStream(upstream, serviceName, methodName string, initialMetadata []byte) (uint32, shared.Status) {
	var token uint32
	st := status(proxyGrpcStream(stringPtr(upstream), uint32(len(upstream)),
		stringPtr(serviceName), uint32(len(serviceName)), stringPtr(methodName), uint32(len(methodName)),
		bytesPtr(initialMetadata), uint32(len(initialMetadata)), unsafe.Pointer(&token)))
	return token, st
}

func (wasmHost) GrpcSend(token uint32, message []byte, endOfStream bool) shared.Status {
	return status(proxyGrpcSend(token, bytesPtr(message), uint32(len(message)), boolToUint32(endOfStream)))
}

func (wasmHost) GrpcCancel(token uint32) shared.Status {
	return status(proxyGrpcCancel(token))
}

func (wasmHost) GrpcClose(token uint32) shared.Status {
	return status(proxyGrpcClose(token))
}

func (wasmHost) GetStatus() (uint32, []byte, shared.Status) {
	var code uint32
	message, st := returned(func(data, size unsafe.Pointer) uint32 {
		return proxyGetStatus(unsafe.Pointer(&code), data, size)
	})
	return code, message, st
}

func (wasmHost) SetEffectiveContext(contextID uint32) shared.Status {
	return status(proxySetEffectiveContext(contextID))
}

func (wasmHost) CallForeignFunction(functionName string, arguments []byte) ([]byte, shared.Status) {
	return returned(func(data, size unsafe.Pointer) uint32 {
		return proxyCallForeignFunction(stringPtr(functionName), uint32(len(functionName)),
			bytesPtr(arguments), uint32(len(arguments)), data, size)
	})
}

func (wasmHost) Done() shared.Status {
	return status(proxyDone())
}

func (wasmHost) DefineMetric(metricType shared.MetricType, name string) (uint32, shared.Status) {
	var metricID uint32
	st := status(proxyDefineMetric(uint32(metricType), stringPtr(name), uint32(len(name)), unsafe.Pointer(&metricID)))
	return metricID, st
}

func (wasmHost) GetMetric(metricID uint32) (uint64, shared.Status) {
	var value uint64
	st := status(proxyGetMetric(metricID, unsafe.Pointer(&value)))
	return value, st
}

func (wasmHost) RecordMetric(metricID uint32, value uint64) shared.Status {
	return status(proxyRecordMetric(metricID, value))
}

func (wasmHost) IncrementMetric(metricID uint32, offset int64) shared.Status {
	return status(proxyIncrementMetric(metricID, offset))
}
