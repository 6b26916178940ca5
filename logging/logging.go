// Package logging provides a zap logger that writes through the host's proxy_log call.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/envoyproxy/proxy-wasm-go-sdk/shared"
)

// hostCore is a zapcore.Core that forwards every entry to the host. The host prefixes its own
// timestamp, level and plugin name, so only the message and fields are encoded.
type hostCore struct {
	zapcore.LevelEnabler
	host shared.Host
	enc  zapcore.Encoder
}

// NewCore returns a core writing to host at the levels enabled by enab.
func NewCore(host shared.Host, enab zapcore.LevelEnabler) zapcore.Core {
	return &hostCore{
		LevelEnabler: enab,
		host:         host,
		enc: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:     "msg",
			NameKey:        "logger",
			StacktraceKey:  "stacktrace",
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		}),
	}
}

// New returns a logger writing to host.
func New(host shared.Host, enab zapcore.LevelEnabler) *zap.Logger {
	return zap.New(NewCore(host, enab))
}

func (c *hostCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &hostCore{
		LevelEnabler: c.LevelEnabler,
		host:         c.host,
		enc:          c.enc.Clone(),
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *hostCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *hostCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	return c.host.Log(HostLevel(ent.Level), strings.TrimSuffix(buf.String(), "\n")).Err()
}

func (c *hostCore) Sync() error { return nil }

// HostLevel maps a zap level to the host log level.
func HostLevel(level zapcore.Level) shared.LogLevel {
	switch {
	case level < zapcore.DebugLevel:
		return shared.LogLevelTrace
	case level == zapcore.DebugLevel:
		return shared.LogLevelDebug
	case level == zapcore.InfoLevel:
		return shared.LogLevelInfo
	case level == zapcore.WarnLevel:
		return shared.LogLevelWarn
	case level == zapcore.ErrorLevel:
		return shared.LogLevelError
	}
	return shared.LogLevelCritical
}

// ZapLevel maps a host log level to the zap level that enables it. Trace has no zap equivalent
// and maps one step below Debug.
func ZapLevel(level shared.LogLevel) zapcore.Level {
	switch level {
	case shared.LogLevelTrace:
		return zapcore.DebugLevel - 1
	case shared.LogLevelDebug:
		return zapcore.DebugLevel
	case shared.LogLevelInfo:
		return zapcore.InfoLevel
	case shared.LogLevelWarn:
		return zapcore.WarnLevel
	case shared.LogLevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.DPanicLevel
}
