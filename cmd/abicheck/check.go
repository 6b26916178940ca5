package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"

	"github.com/envoyproxy/proxy-wasm-go-sdk/abi"
)

// hostModule is the import module every proxy-wasm host function lives in.
const hostModule = "env"

var required = []string{abi.Version, "proxy_on_context_create", "proxy_on_memory_allocate"}

// Report is the outcome of checking one module.
type Report struct {
	Path     string
	Errors   []string
	Warnings []string
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Failed reports whether any error was found.
func (r *Report) Failed() bool { return len(r.Errors) > 0 }

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

var (
	knownExports = nameSet(abi.ExportNames)
	knownImports = nameSet(abi.ImportNames)
)

// Check compiles wasm with rt and compares its exports and imports against the ABI. Unknown
// host imports are errors when strict is set and warnings otherwise.
func Check(ctx context.Context, rt wazero.Runtime, path string, wasm []byte, strict bool) (*Report, error) {
	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	defer compiled.Close(ctx)

	report := &Report{Path: path}
	exports := compiled.ExportedFunctions()
	for _, name := range required {
		if _, ok := exports[name]; !ok {
			report.errorf("missing export %s", name)
		}
	}
	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		report.errorf("missing memory export")
	}
	for _, name := range sortedKeys(exports) {
		if strings.HasPrefix(name, "proxy_") && !knownExports[name] {
			report.warnf("unknown export %s", name)
		}
	}

	for _, fn := range compiled.ImportedFunctions() {
		module, name, _ := fn.Import()
		if module != hostModule || knownImports[name] {
			continue
		}
		if strict {
			report.errorf("unknown import %s.%s", module, name)
		} else {
			report.warnf("unknown import %s.%s", module, name)
		}
	}
	return report, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
