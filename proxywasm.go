// Package proxywasm is the entry point of a proxy-wasm extension. An extension registers its
// context factories from init() and reaches the host through the hostcall package.
package proxywasm

import (
	"go.uber.org/zap"

	// Links the proxy_on_* exports into the module.
	_ "github.com/envoyproxy/proxy-wasm-go-sdk/abi"
	"github.com/envoyproxy/proxy-wasm-go-sdk/internal/dispatcher"
	"github.com/envoyproxy/proxy-wasm-go-sdk/logging"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// SetRootContext registers the factory of root contexts. Without one, roots are
// shared.EmptyRootContext. This function MUST only be called from init() functions.
func SetRootContext(f shared.NewRootContext) {
	if dispatcher.Registered().Root != nil {
		panic("root context factory already registered")
	}
	dispatcher.SetRootFactory(f)
}

// SetStreamContext registers the factory of L4 contexts. It takes precedence over
// RootContext.NewStreamContext. This function MUST only be called from init() functions.
func SetStreamContext(f shared.NewStreamContext) {
	if dispatcher.Registered().Stream != nil {
		panic("stream context factory already registered")
	}
	dispatcher.SetStreamFactory(f)
}

// SetHttpContext registers the factory of HTTP contexts. It takes precedence over
// RootContext.NewHttpContext and over a stream factory when the host does not say which kind of
// context it creates. This function MUST only be called from init() functions.
func SetHttpContext(f shared.NewHttpContext) {
	if dispatcher.Registered().Http != nil {
		panic("http context factory already registered")
	}
	dispatcher.SetHttpFactory(f)
}

// SetLogLevel sets the minimum level Logger forwards to the host.
func SetLogLevel(level shared.LogLevel) {
	dispatcher.LogLevel().SetLevel(logging.ZapLevel(level))
}

// Logger returns the logger that writes through the host's log.
func Logger() *zap.Logger {
	return dispatcher.Default().Logger()
}
