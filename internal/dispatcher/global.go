package dispatcher

import (
	"go.uber.org/zap"

	"github.com/envoyproxy/proxy-wasm-go-sdk/logging"
	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// Process-wide state. The host ABI is a flat function table with no instance argument, so the
// exported entry points reach the dispatcher through these variables. Factories are written
// from init() functions only.
var (
	factories    Factories
	platformHost shared.Host = shared.UnimplementedHost{}
	logLevel                 = zap.NewAtomicLevelAt(logging.ZapLevel(shared.LogLevelInfo))
	current      *Dispatcher
)

// SetPlatformHost sets the host used by Default. The wasm build sets it to the ABI imports.
func SetPlatformHost(host shared.Host) {
	platformHost = host
}

// Default returns the process-wide dispatcher, creating it on first use.
func Default() *Dispatcher {
	if current == nil {
		current = New(platformHost, factories, logging.New(platformHost, logLevel))
	}
	return current
}

// Install replaces the process-wide dispatcher with a fresh one backed by host and returns a
// func that restores the previous one. The registered factories carry over.
func Install(host shared.Host) (restore func()) {
	previous := current
	current = New(host, factories, logging.New(host, logLevel))
	return func() { current = previous }
}

// LogLevel is the level shared by every dispatcher logger.
func LogLevel() zap.AtomicLevel { return logLevel }

func setFactories(f Factories) {
	factories = f
	if current != nil {
		current.SetFactories(f)
	}
}

func SetRootFactory(f shared.NewRootContext) {
	next := factories
	next.Root = f
	setFactories(next)
}

func SetStreamFactory(f shared.NewStreamContext) {
	next := factories
	next.Stream = f
	setFactories(next)
}

func SetHttpFactory(f shared.NewHttpContext) {
	next := factories
	next.Http = f
	setFactories(next)
}

// ReplaceFactories swaps every registered factory at once and returns a func that puts the
// previous ones back.
func ReplaceFactories(f Factories) (restore func()) {
	previous := factories
	setFactories(f)
	return func() { setFactories(previous) }
}

// Registered returns the factories registered so far.
func Registered() Factories { return factories }
