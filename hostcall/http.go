package hostcall

import (
	"google.golang.org/grpc/codes"

	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

func GetHttpRequestHeaders() ([][2]string, error) { return GetMap(shared.MapTypeHttpRequestHeaders) }

func SetHttpRequestHeaders(headers [][2]string) error {
	return SetMap(shared.MapTypeHttpRequestHeaders, headers)
}

func GetHttpRequestHeader(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpRequestHeaders, key)
}

func SetHttpRequestHeader(key, value string) error {
	return SetMapValue(shared.MapTypeHttpRequestHeaders, key, value)
}

func AddHttpRequestHeader(key, value string) error {
	return AddMapValue(shared.MapTypeHttpRequestHeaders, key, value)
}

func RemoveHttpRequestHeader(key string) error {
	return RemoveMapValue(shared.MapTypeHttpRequestHeaders, key)
}

func GetHttpRequestTrailers() ([][2]string, error) {
	return GetMap(shared.MapTypeHttpRequestTrailers)
}

func SetHttpRequestTrailers(trailers [][2]string) error {
	return SetMap(shared.MapTypeHttpRequestTrailers, trailers)
}

func GetHttpRequestTrailer(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpRequestTrailers, key)
}

func SetHttpRequestTrailer(key, value string) error {
	return SetMapValue(shared.MapTypeHttpRequestTrailers, key, value)
}

func AddHttpRequestTrailer(key, value string) error {
	return AddMapValue(shared.MapTypeHttpRequestTrailers, key, value)
}

func RemoveHttpRequestTrailer(key string) error {
	return RemoveMapValue(shared.MapTypeHttpRequestTrailers, key)
}

func GetHttpResponseHeaders() ([][2]string, error) {
	return GetMap(shared.MapTypeHttpResponseHeaders)
}

func SetHttpResponseHeaders(headers [][2]string) error {
	return SetMap(shared.MapTypeHttpResponseHeaders, headers)
}

func GetHttpResponseHeader(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpResponseHeaders, key)
}

func SetHttpResponseHeader(key, value string) error {
	return SetMapValue(shared.MapTypeHttpResponseHeaders, key, value)
}

func AddHttpResponseHeader(key, value string) error {
	return AddMapValue(shared.MapTypeHttpResponseHeaders, key, value)
}

func RemoveHttpResponseHeader(key string) error {
	return RemoveMapValue(shared.MapTypeHttpResponseHeaders, key)
}

func GetHttpResponseTrailers() ([][2]string, error) {
	return GetMap(shared.MapTypeHttpResponseTrailers)
}

func SetHttpResponseTrailers(trailers [][2]string) error {
	return SetMap(shared.MapTypeHttpResponseTrailers, trailers)
}

func GetHttpResponseTrailer(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpResponseTrailers, key)
}

func SetHttpResponseTrailer(key, value string) error {
	return SetMapValue(shared.MapTypeHttpResponseTrailers, key, value)
}

func AddHttpResponseTrailer(key, value string) error {
	return AddMapValue(shared.MapTypeHttpResponseTrailers, key, value)
}

func RemoveHttpResponseTrailer(key string) error {
	return RemoveMapValue(shared.MapTypeHttpResponseTrailers, key)
}

func GetHttpRequestBody(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeHttpRequestBody, start, maxSize)
}

func SetHttpRequestBody(start, size int, value []byte) error {
	return SetBuffer(shared.BufferTypeHttpRequestBody, start, size, value)
}

func GetHttpResponseBody(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeHttpResponseBody, start, maxSize)
}

func SetHttpResponseBody(start, size int, value []byte) error {
	return SetBuffer(shared.BufferTypeHttpResponseBody, start, size, value)
}

// The callout response maps and body are only readable from OnHttpCallResponse.

func GetHttpCallResponseHeaders() ([][2]string, error) {
	return GetMap(shared.MapTypeHttpCallResponseHeaders)
}

func GetHttpCallResponseHeader(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpCallResponseHeaders, key)
}

func GetHttpCallResponseTrailers() ([][2]string, error) {
	return GetMap(shared.MapTypeHttpCallResponseTrailers)
}

func GetHttpCallResponseTrailer(key string) (string, bool, error) {
	return GetMapValue(shared.MapTypeHttpCallResponseTrailers, key)
}

func GetHttpCallResponseBody(start, maxSize int) ([]byte, error) {
	return GetBuffer(shared.BufferTypeHttpCallResponseBody, start, maxSize)
}

func GetVMConfiguration() ([]byte, error) {
	return GetBuffer(shared.BufferTypeVMConfiguration, 0, maxBufferSize)
}

func GetPluginConfiguration() ([]byte, error) {
	return GetBuffer(shared.BufferTypePluginConfiguration, 0, maxBufferSize)
}

func ResumeHttpRequest() error {
	return host().ContinueStream(shared.StreamTypeHttpRequest).Err()
}

func ResumeHttpResponse() error {
	return host().ContinueStream(shared.StreamTypeHttpResponse).Err()
}

func ResetHttpRequest() error {
	return host().CloseStream(shared.StreamTypeHttpRequest).Err()
}

func ResetHttpResponse() error {
	return host().CloseStream(shared.StreamTypeHttpResponse).Err()
}

// SendHttpResponse answers the current request locally. The request is not forwarded upstream.
func SendHttpResponse(statusCode uint32, headers [][2]string, body []byte) error {
	return host().SendLocalResponse(statusCode, nil, body, wire.EncodeStringPairs(headers), -1).Err()
}

// SendGrpcResponse answers the current gRPC request locally with code and message.
func SendGrpcResponse(code codes.Code, message string) error {
	return host().SendLocalResponse(200, nil, []byte(message), nil, int32(code)).Err()
}

// maxBufferSize asks the host for the whole buffer.
const maxBufferSize = 1<<31 - 1
