package hostcall

import "github.com/envoyproxy/proxy-wasm-go-sdk/shared"

func GetDownstreamData(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeDownstreamData, start, maxSize)
}

func SetDownstreamData(start, size int, value []byte) error {
	return SetBuffer(shared.BufferTypeDownstreamData, start, size, value)
}

func GetUpstreamData(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeUpstreamData, start, maxSize)
}

func SetUpstreamData(start, size int, value []byte) error {
	return SetBuffer(shared.BufferTypeUpstreamData, start, size, value)
}

func ResumeDownstream() error {
	return host().ContinueStream(shared.StreamTypeDownstream).Err()
}

func ResumeUpstream() error {
	return host().ContinueStream(shared.StreamTypeUpstream).Err()
}

func CloseDownstream() error {
	return host().CloseStream(shared.StreamTypeDownstream).Err()
}

func CloseUpstream() error {
	return host().CloseStream(shared.StreamTypeUpstream).Err()
}

// GetCallData returns the arguments of the foreign function call being handled.
func GetCallData() ([]byte, error) {
	return GetBuffer(shared.BufferTypeCallData, 0, maxBufferSize)
}
