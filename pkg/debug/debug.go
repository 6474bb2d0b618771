// Package debug provides conditional debug logging for kc.
//
// Debug logging is enabled by setting the KC_DEBUG environment variable or by
// passing --debug:
//
//	KC_DEBUG=1 kc show go-basics
//
// When enabled, messages go to stderr through a zap development logger.
// When disabled (default), every function is a no-op.
//
// Usage:
//
//	import "github.com/vanderheijden86/kcards/pkg/debug"
//
//	func myFunc() {
//	    defer debug.Trace("myFunc")()
//	    debug.Logw("loaded entries", "count", n)
//	}
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop().Sugar()
)

func init() {
	if os.Getenv("KC_DEBUG") != "" {
		SetEnabled(true)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug: cannot build logger: %v\n", err)
		return zap.NewNop().Sugar()
	}
	return l.Named("kc").Sugar()
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled switches debug logging on or off at runtime.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	if e == enabled {
		return
	}
	enabled = e
	if e {
		logger = newLogger()
		return
	}
	_ = logger.Sync()
	logger = zap.NewNop().Sugar()
}

// SetLogger replaces the underlying logger and enables logging. Tests use it
// with an observer core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	enabled = l != nil
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

func current() (*zap.SugaredLogger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, enabled
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if l, ok := current(); ok {
		l.Debugf(format, args...)
	}
}

// Logw writes a structured debug message with key/value pairs.
func Logw(msg string, keysAndValues ...any) {
	if l, ok := current(); ok {
		l.Debugw(msg, keysAndValues...)
	}
}

// LogTiming records how long an operation took.
func LogTiming(name string, d time.Duration) {
	if l, ok := current(); ok {
		l.Debugw(name, "elapsed", d)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	}
func LogEnterExit(name string) func() {
	l, ok := current()
	if !ok {
		return func() {}
	}
	l.Debugf("-> %s", name)
	start := time.Now()
	return func() {
		l.Debugw("<- "+name, "elapsed", time.Since(start))
	}
}

// Trace is an alias for LogEnterExit.
var Trace = LogEnterExit

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if l, ok := current(); ok {
		l.Debugf("%s: %T = %+v", name, v, v)
	}
}

// Sync flushes buffered log entries.
func Sync() {
	l, _ := current()
	_ = l.Sync()
}
