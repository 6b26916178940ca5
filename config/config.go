// Package config decodes the VM and plugin configuration handed to a root context.
//
// Plain configuration is YAML or JSON. Configuration wrapped by the control plane arrives as a
// serialized google.protobuf.Any, usually holding an xds TypedStruct or a StringValue.
package config

import (
	"errors"
	"fmt"

	xds "github.com/cncf/xds/go/xds/type/v3"
	"github.com/goccy/go-yaml"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/envoyproxy/proxy-wasm-go-sdk/hostcall"
)

// ErrUnsupportedType is returned by DecodeAny for payload types it cannot decode into out.
var ErrUnsupportedType = errors.New("config: unsupported payload type")

// Decode parses YAML or JSON into out. Empty data leaves out untouched.
func Decode(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DecodeStrict is Decode but fails on keys out has no field for.
func DecodeStrict(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, out, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DecodeTypedStruct parses a serialized xds.type.v3.TypedStruct and decodes its value into out.
func DecodeTypedStruct(data []byte, out any) error {
	typed := &xds.TypedStruct{}
	if err := proto.Unmarshal(data, typed); err != nil {
		return fmt.Errorf("config: typed struct: %w", err)
	}
	return decodeTypedStruct(typed, out)
}

func decodeTypedStruct(typed *xds.TypedStruct, out any) error {
	if typed.GetValue() == nil {
		return nil
	}
	value, err := protojson.Marshal(typed.GetValue())
	if err != nil {
		return fmt.Errorf("config: typed struct %s: %w", typed.GetTypeUrl(), err)
	}
	return Decode(value, out)
}

// DecodeAny parses a serialized google.protobuf.Any. A payload of the same type as out is
// unpacked into it directly.
func DecodeAny(data []byte, out any) error {
	a := &anypb.Any{}
	if err := proto.Unmarshal(data, a); err != nil {
		return fmt.Errorf("config: any: %w", err)
	}
	if msg, ok := out.(proto.Message); ok && a.MessageIs(msg) {
		if err := a.UnmarshalTo(msg); err != nil {
			return fmt.Errorf("config: any %s: %w", a.GetTypeUrl(), err)
		}
		return nil
	}
	switch {
	case a.MessageIs((*xds.TypedStruct)(nil)):
		typed := &xds.TypedStruct{}
		if err := a.UnmarshalTo(typed); err != nil {
			return fmt.Errorf("config: any %s: %w", a.GetTypeUrl(), err)
		}
		return decodeTypedStruct(typed, out)
	case a.MessageIs((*wrapperspb.StringValue)(nil)):
		s := &wrapperspb.StringValue{}
		if err := a.UnmarshalTo(s); err != nil {
			return fmt.Errorf("config: any %s: %w", a.GetTypeUrl(), err)
		}
		return Decode([]byte(s.GetValue()), out)
	case a.MessageIs((*wrapperspb.BytesValue)(nil)):
		b := &wrapperspb.BytesValue{}
		if err := a.UnmarshalTo(b); err != nil {
			return fmt.Errorf("config: any %s: %w", a.GetTypeUrl(), err)
		}
		return Decode(b.GetValue(), out)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, a.GetTypeUrl())
}

// DecodeProto parses the binary encoding of msg.
func DecodeProto(data []byte, msg proto.Message) error {
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("config: %T: %w", msg, err)
	}
	return nil
}

// LoadPlugin reads the plugin configuration of the current root context and decodes it with
// Decode. It is meant for OnConfigure.
func LoadPlugin(out any) error {
	data, err := hostcall.GetPluginConfiguration()
	if err != nil {
		return fmt.Errorf("config: read plugin configuration: %w", err)
	}
	return Decode(data, out)
}

// LoadVM is LoadPlugin for the VM configuration, meant for OnVMStart.
func LoadVM(out any) error {
	data, err := hostcall.GetVMConfiguration()
	if err != nil {
		return fmt.Errorf("config: read vm configuration: %w", err)
	}
	return Decode(data, out)
}
