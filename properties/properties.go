// Package properties reads and writes the attributes Envoy exposes to extensions, such as
// ("source", "address") or ("xds", "node").
//
// Envoy serializes strings as raw bytes, integers and durations as 8 byte little endian values,
// and messages in their protobuf binary form.
package properties

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	corev3 "github.com/envoyproxy/go-control-plane/envoy/config/core/v3"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/wire"
)

// GetString returns the property at path as text.
func GetString(path ...string) (string, bool, error) {
	value, ok, err := hostcall.GetProperty(path...)
	return string(value), ok, err
}

// GetInt64 decodes an integer property.
func GetInt64(path ...string) (int64, bool, error) {
	value, ok, err := hostcall.GetProperty(path...)
	if err != nil || !ok {
		return 0, ok, err
	}
	if len(value) != 8 {
		return 0, false, fmt.Errorf("properties: %v: want 8 bytes, got %d", path, len(value))
	}
	return int64(binary.LittleEndian.Uint64(value)), true, nil
}

// GetDuration decodes a duration property such as ("request", "duration").
func GetDuration(path ...string) (time.Duration, bool, error) {
	nanos, ok, err := GetInt64(path...)
	return time.Duration(nanos), ok, err
}

func GetBool(path ...string) (bool, bool, error) {
	value, ok, err := hostcall.GetProperty(path...)
	if err != nil || !ok {
		return false, ok, err
	}
	if len(value) != 1 {
		return false, false, fmt.Errorf("properties: %v: want 1 byte, got %d", path, len(value))
	}
	return value[0] != 0, true, nil
}

// GetStringMap decodes a map property such as ("request", "headers").
func GetStringMap(path ...string) ([][2]string, bool, error) {
	value, ok, err := hostcall.GetProperty(path...)
	if err != nil || !ok {
		return nil, ok, err
	}
	pairs, err := wire.DecodeStringPairs(value)
	if err != nil {
		return nil, false, fmt.Errorf("properties: %v: %w", path, err)
	}
	return pairs, true, nil
}

// GetMessage decodes a message property into msg.
func GetMessage(msg proto.Message, path ...string) (bool, error) {
	value, ok, err := hostcall.GetProperty(path...)
	if err != nil || !ok {
		return ok, err
	}
	if err := proto.Unmarshal(value, msg); err != nil {
		return false, fmt.Errorf("properties: %v: %w", path, err)
	}
	return true, nil
}

// GetNode returns the node of the proxy the plugin runs in.
func GetNode() (*corev3.Node, error) {
	node := &corev3.Node{}
	ok, err := GetMessage(node, "xds", "node")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return node, nil
}

// GetMetadata returns the metadata at path, for example ("metadata") for the route metadata of
// the current request or ("xds", "listener_metadata").
func GetMetadata(path ...string) (*corev3.Metadata, error) {
	metadata := &corev3.Metadata{}
	ok, err := GetMessage(metadata, path...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return metadata, nil
}

// GetFilterMetadata returns one value of the dynamic metadata written by another filter, such as
// the Lua filter, as text.
func GetFilterMetadata(namespace, key string) (string, bool, error) {
	return GetString("metadata", "filter_metadata", namespace, key)
}

func SourceAddress() (string, bool, error) { return GetString("source", "address") }

func DestinationAddress() (string, bool, error) { return GetString("destination", "address") }

func UpstreamAddress() (string, bool, error) { return GetString("upstream", "address") }

func RequestPath() (string, bool, error) { return GetString("request", "path") }

func RequestID() (string, bool, error) { return GetString("request", "id") }

func ResponseCode() (int64, bool, error) { return GetInt64("response", "code") }

func PluginName() (string, bool, error) { return GetString("plugin_name") }

func PluginRootID() (string, bool, error) { return GetString("plugin_root_id") }

func PluginVMID() (string, bool, error) { return GetString("plugin_vm_id") }

func ClusterName() (string, bool, error) { return GetString("cluster_name") }

func RouteName() (string, bool, error) { return GetString("route_name") }

// LifeSpan is how long a filter state value set through SetEnvoyFilterState lives.
type LifeSpan int32

const (
	LifeSpanFilterChain          LifeSpan = 0
	LifeSpanDownstreamRequest    LifeSpan = 1
	LifeSpanDownstreamConnection LifeSpan = 2
)

func (s LifeSpan) String() string {
	switch s {
	case LifeSpanFilterChain:
		return "FilterChain"
	case LifeSpanDownstreamRequest:
		return "DownstreamRequest"
	case LifeSpanDownstreamConnection:
		return "DownstreamConnection"
	}
	return "LifeSpan(" + strconv.Itoa(int(s)) + ")"
}

// SetEnvoyFilterStateFunction is the foreign function behind SetEnvoyFilterState.
const SetEnvoyFilterStateFunction = "set_envoy_filter_state"

// SetEnvoyFilterState stores value under key in the Envoy filter state, for example
// "envoy.tcp_proxy.cluster" to pick the upstream cluster of a TCP proxy.
func SetEnvoyFilterState(key, value string, span LifeSpan) error {
	if _, err := hostcall.CallForeignFunction(SetEnvoyFilterStateFunction, EncodeFilterStateArguments(key, value, span)); err != nil {
		return fmt.Errorf("properties: set filter state %s: %w", key, err)
	}
	return nil
}

// EncodeFilterStateArguments serializes an envoy.source.extensions.common.wasm
// SetEnvoyFilterStateArguments message.
func EncodeFilterStateArguments(key, value string, span LifeSpan) []byte {
	var b []byte
	if key != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, key)
	}
	if value != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, value)
	}
	if span != LifeSpanFilterChain {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(span))
	}
	return b
}

// DecodeFilterStateArguments is the inverse of EncodeFilterStateArguments. Unknown fields are
// skipped.
func DecodeFilterStateArguments(b []byte) (key, value string, span LifeSpan, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", "", 0, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			key, n = protowire.ConsumeString(b)
		case num == 2 && typ == protowire.BytesType:
			value, n = protowire.ConsumeString(b)
		case num == 3 && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			span = LifeSpan(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return "", "", 0, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return key, value, span, nil
}
