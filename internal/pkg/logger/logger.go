// Package logger holds the process-wide zap logger.
//
// Every call takes the caller's context: when it carries a recording span the
// entry is tagged with its trace and span ids. When telemetry is enabled,
// entries are also bridged to the OpenTelemetry logger provider with that
// context attached. Until Init runs, entries are discarded.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/minichain/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   = zap.NewNop().Sugar()
	initOnce sync.Once
)

type config struct {
	level    string                 // debug, info, warn, error
	output   io.Writer              // JSON entries destination
	provider otellog.LoggerProvider // bridge target, nil disables the bridge
}

// Option configures Init.
type Option func(*config)

// WithLevel sets the minimum level. Default: "info".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets where entries are written. Default: os.Stderr, which keeps
// stdout free for rendered ledger output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithLoggerProvider bridges entries into p. Default: telemetry.LoggerProvider
// when telemetry is enabled.
func WithLoggerProvider(p otellog.LoggerProvider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// Init builds the JSON logger. Only the first successful call has an effect;
// an unknown level is reported and leaves the logger untouched.
func Init(opts ...Option) error {
	cfg := config{level: "info", output: os.Stderr}
	if lp := telemetry.LoggerProvider(); lp != nil {
		cfg.provider = lp
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores := []zapcore.Core{
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(cfg.output), level),
		}

		if cfg.provider != nil {
			bridge := otelzap.NewCore(serviceName, otelzap.WithLoggerProvider(cfg.provider))
			if leveled, err := zapcore.NewIncreaseLevelCore(bridge, level); err == nil {
				bridge = leveled
			}
			cores = append(cores, bridge)
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes buffered entries.
func Sync() error {
	return logger.Sync()
}

// serviceName is the instrumentation scope of bridged entries.
const serviceName = "github.com/gabapcia/minichain"

// withContext returns keysAndValues preceded by the ids of the span carried
// by ctx, if any, and followed by ctx itself. The ids are for the JSON core;
// the bridge core reads the span from ctx, which the JSON core skips.
func withContext(ctx context.Context, keysAndValues []any) []any {
	fields := make([]any, 0, len(keysAndValues)+5)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, "traceID", sc.TraceID().String(), "spanID", sc.SpanID().String())
	}

	fields = append(fields, keysAndValues...)
	return append(fields, zap.Field{Key: "ctx", Type: zapcore.SkipType, Interface: ctx})
}

func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues []any) {
	logger.Logw(level, msg, withContext(ctx, keysAndValues)...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues)
}
