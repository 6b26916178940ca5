package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/envoyproxy/proxy-wasm-go-sdk/abi"
)

// module assembles a wasm binary whose functions all have type () -> (). Imports come from env.
type module struct {
	imports []string
	exports []string
	memory  bool
}

func appendName(b []byte, name string) []byte {
	b = binary.AppendUvarint(b, uint64(len(name)))
	return append(b, name...)
}

func appendSection(b []byte, id byte, content []byte) []byte {
	b = append(b, id)
	b = binary.AppendUvarint(b, uint64(len(content)))
	return append(b, content...)
}

func (m module) bytes() []byte {
	b := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	b = appendSection(b, 1, []byte{0x01, 0x60, 0x00, 0x00})

	if len(m.imports) > 0 {
		content := binary.AppendUvarint(nil, uint64(len(m.imports)))
		for _, name := range m.imports {
			content = appendName(content, hostModule)
			content = appendName(content, name)
			content = append(content, 0x00, 0x00)
		}
		b = appendSection(b, 2, content)
	}

	functions := binary.AppendUvarint(nil, uint64(len(m.exports)))
	for range m.exports {
		functions = append(functions, 0x00)
	}
	b = appendSection(b, 3, functions)

	if m.memory {
		b = appendSection(b, 5, []byte{0x01, 0x00, 0x01})
	}

	exportCount := len(m.exports)
	if m.memory {
		exportCount++
	}
	exports := binary.AppendUvarint(nil, uint64(exportCount))
	for i, name := range m.exports {
		exports = appendName(exports, name)
		exports = append(exports, 0x00)
		exports = binary.AppendUvarint(exports, uint64(len(m.imports)+i))
	}
	if m.memory {
		exports = appendName(exports, "memory")
		exports = append(exports, 0x02, 0x00)
	}
	b = appendSection(b, 7, exports)

	code := binary.AppendUvarint(nil, uint64(len(m.exports)))
	for range m.exports {
		code = append(code, 0x02, 0x00, 0x0b)
	}
	return appendSection(b, 10, code)
}

var validModule = module{
	imports: []string{"proxy_log", "proxy_get_buffer_bytes"},
	exports: []string{abi.Version, "proxy_on_context_create", "proxy_on_memory_allocate", "proxy_on_request_headers"},
	memory:  true,
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	t.Cleanup(func() { rt.Close(ctx) })

	tests := []struct {
		name     string
		module   module
		strict   bool
		errors   []string
		warnings []string
	}{
		{name: "valid", module: validModule},
		{
			name:   "missing marker and memory",
			module: module{exports: []string{"proxy_on_context_create", "proxy_on_memory_allocate"}},
			errors: []string{"missing export " + abi.Version, "missing memory export"},
		},
		{
			name: "unknown import warns",
			module: module{
				imports: []string{"proxy_log", "proxy_get_configuration"},
				exports: validModule.exports,
				memory:  true,
			},
			warnings: []string{"unknown import env.proxy_get_configuration"},
		},
		{
			name: "unknown import fails when strict",
			module: module{
				imports: []string{"proxy_get_configuration"},
				exports: validModule.exports,
				memory:  true,
			},
			strict: true,
			errors: []string{"unknown import env.proxy_get_configuration"},
		},
		{
			name: "unknown export warns",
			module: module{
				exports: append([]string{"proxy_on_request_metadata"}, validModule.exports...),
				memory:  true,
			},
			warnings: []string{"unknown export proxy_on_request_metadata"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(ctx, rt, tt.name, tt.module.bytes(), tt.strict)
			require.NoError(t, err)
			assert.Equal(t, tt.errors, report.Errors)
			assert.Equal(t, tt.warnings, report.Warnings)
		})
	}

	_, err := Check(ctx, rt, "garbage", []byte("not wasm"), false)
	assert.ErrorContains(t, err, "compile garbage")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.wasm")
	bad := filepath.Join(dir, "bad.wasm")
	require.NoError(t, os.WriteFile(good, validModule.bytes(), 0o600))
	require.NoError(t, os.WriteFile(bad, module{memory: true}.bytes(), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, []string{good}, true))
	assert.Equal(t, good+": ok\n", out.String())

	out.Reset()
	err := run(context.Background(), &out, []string{good, bad}, false)
	assert.EqualError(t, err, "1 of 2 modules failed")
	assert.Contains(t, out.String(), bad+": error: missing export "+abi.Version)
	assert.Contains(t, out.String(), good+": ok")

	err = run(context.Background(), &out, []string{filepath.Join(dir, "missing.wasm")}, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
