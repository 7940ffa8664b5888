package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/oakwood-commons/grdfind/pkg/settings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Define an unexported custom type for the context key to prevent collisions.
type loggerContextKey struct{}

const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

var (
	once sync.Once // Ensures Setup is called only once

	// globalZapLogger is the underlying *zap.Logger for explicit Zap-specific operations like Sync().
	globalZapLogger *zap.Logger

	// globalLogrLogger is the logr.Logger instance handed out when the context carries none.
	globalLogrLogger *logr.Logger

	// defaultNoopLogger is a logger that does nothing, used as a fallback.
	defaultNoopLogger logr.Logger = logr.Discard()
)

// Options controls where the global logger writes and how verbose it is.
type Options struct {
	// Level is the minimum zap level. Negative values enable logr V-levels
	// (-1 is debug, the same as V(1)).
	Level int8
	// Output receives JSON log lines. Nil means standard error.
	Output zapcore.WriteSyncer
}

// Setup initializes the global Zap and Logr loggers.
// Only the first call has any effect; later calls return the same logger.
func Setup(opts Options) *logr.Logger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		out := opts.Output
		if out == nil {
			out = os.Stderr
		}

		goVersion := "unknown"
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			goVersion = buildInfo.GoVersion
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(out),
			zap.NewAtomicLevelAt(zapcore.Level(opts.Level)),
		).With(
			[]zapcore.Field{
				zap.String(CommitKey, settings.VersionInformation.Commit),
				zap.String(VersionKey, settings.VersionInformation.BuildVersion),
				zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
				zap.String(GoVersionKey, goVersion),
			},
		)

		globalZapLogger = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)

		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// OpenSink resolves a log destination. An empty path discards everything,
// "-" or "stderr" selects standard error, anything else is appended to.
// The returned close func is always safe to call.
func OpenSink(path string) (zapcore.WriteSyncer, func() error, error) {
	switch strings.TrimSpace(path) {
	case "":
		return zapcore.AddSync(io.Discard), func() error { return nil }, nil
	case "-", "stderr":
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, f.Close, nil
}

// ParseLevel maps a level name (debug, info, warn, error) or a signed
// integer onto a zap level.
func ParseLevel(s string) (int8, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return int8(zapcore.InfoLevel), nil
	case "debug":
		return int8(zapcore.DebugLevel), nil
	case "warn", "warning":
		return int8(zapcore.WarnLevel), nil
	case "error":
		return int8(zapcore.ErrorLevel), nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: use debug, info, warn, error, or a number", s)
	}
	return int8(n), nil
}

// WithLogger returns a new context with the provided logr.Logger attached.
// If the context already contains the same logger instance, it returns the original context.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		if lp == log {
			return ctx
		}
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logr.Logger from the context.
// If no logger is found in the context, it returns the globally configured logger,
// or a no-op logger when Setup has not run.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	} else if log := globalLogrLogger; log != nil {
		return log
	}
	return &defaultNoopLogger
}

// Sync flushes any buffered log entries to their destination.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil {
			if isIgnorableSyncError(err) {
				return
			}
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
// Windows consoles can return ERROR_INVALID_HANDLE wrapped in *os.PathError,
// which does not compare equal to syscall.EINVAL, so we also string-match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	if strings.Contains(err.Error(), "The handle is invalid") {
		return true
	}
	return false
}

// WithValues returns a new logr.Logger with additional key-value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
