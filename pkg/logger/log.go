// Package logger wraps zap with the module's structured logging conventions:
// key/value fields, functional options, and context-aware variants that stamp
// each entry with the request id of the running session.
package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/powerex/intraday/pkg/errors"
	"github.com/powerex/intraday/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// NewField returns Field with given key and value.
func NewField(key string, value any) Field {
	return Field{key, value}
}

// Options holds configuration options for the logger.
type Options struct {
	level           Level
	outputPaths     []string
	timeKey         string
	callerTraceSkip int
}

// Level represents the severity level of the log.
type Level string

const (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"
)

const messageKey = "message"

func (level Level) getZapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		// same default as zap's production config
		return zapcore.InfoLevel
	}
}

// NewLogger creates new Logger instance with configuration options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	var buildOptions []zap.Option

	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.getZapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
		if opt.timeKey != "" {
			cfg.EncoderConfig.TimeKey = opt.timeKey
		}
		if opt.callerTraceSkip > 0 {
			buildOptions = append(buildOptions, zap.AddCallerSkip(opt.callerTraceSkip))
		}
	}

	cfg.EncoderConfig.MessageKey = messageKey

	logger, err := cfg.Build(buildOptions...)
	return &Logger{
		logger: logger,
	}, err
}

// WithLoggingLevel sets the minimum level written to the sink; `info` and
// above are logged when unset.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// WithOutputPaths sets the paths logs are written to. "stdout" and "stderr"
// are interpreted as the process streams; plain paths are opened as files.
func WithOutputPaths(paths []string) Options {
	return Options{outputPaths: paths}
}

// WithTimeKey sets the JSON key used for the entry timestamp.
func WithTimeKey(key string) Options {
	return Options{timeKey: key}
}

// WithCallerTraceSkip skips the given number of frames when resolving the
// calling site.
func WithCallerTraceSkip(skip int) Options {
	return Options{callerTraceSkip: skip}
}

// Sync flushes the buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns the zap.Logger instance used by Logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// Info writes a log with severity level info.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, convertFields(fields...)...)
}

// InfoContext writes an info log and appends the context request id to the fields.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.Info(message, appendRequestID(ctx, fields)...)
}

// Warn writes a log with severity level warn.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, convertFields(fields...)...)
}

// WarnContext writes a warn log and appends the context request id to the fields.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.Warn(message, appendRequestID(ctx, fields)...)
}

// Debug writes a log with severity level debug.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, convertFields(fields...)...)
}

// DebugContext writes a debug log and appends the context request id to the fields.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.Debug(message, appendRequestID(ctx, fields)...)
}

// Error writes a log with severity level error. When err carries a pkg/errors
// stack trace, that trace replaces zap's own.
func (l *Logger) Error(err error, fields ...Field) {
	zapFields := convertFields(fields...)
	stacktrace := ""

	if errTracer, ok := err.(errors.StackTracer); ok {
		stacktrace = strings.TrimSpace(fmt.Sprintf("%+v", errTracer.StackTrace()))
	}

	if ce := l.logger.Check(zapcore.ErrorLevel, err.Error()); ce != nil {
		if stacktrace != "" {
			ce.Stack = stacktrace
		}
		ce.Write(zapFields...)
	}
}

// ErrorContext writes an error log and appends the context request id to the fields.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.Error(err, appendRequestID(ctx, fields)...)
}

// WithFields returns a child logger with additional fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{
		logger: l.logger.With(convertFields(fields...)...),
	}
}

// convertFields transforms fields to zap log fields.
func convertFields(fields ...Field) []zapcore.Field {
	var zapFields []zapcore.Field
	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Value))
	}
	return zapFields
}

// appendRequestID gets the request id from context and appends it to the given fields.
func appendRequestID(ctx context.Context, fields []Field) []Field {
	return append(fields, NewField("request_id", util.GetRequestID(ctx)))
}
