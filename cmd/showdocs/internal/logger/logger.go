package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// TimeLayout is the local timestamp layout written in front of every record.
const TimeLayout = "2006-01-02 15:04:05.000"

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Options controls how the global logger is built.
type Options struct {
	// Debug enables debug level records and source locations.
	Debug bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Init initializes the global logger based on environment variables.
// DEBUG=true enables debug level logging.
func Init() {
	once.Do(func() {
		defaultLogger = build(Options{Debug: os.Getenv("DEBUG") == "true"})
		slog.SetDefault(defaultLogger)
	})
}

// Configure replaces the global logger. It is called once the server
// configuration is known, which may turn on debug output.
func Configure(opts Options) {
	once.Do(func() {})
	defaultLogger = build(opts)
	slog.SetDefault(defaultLogger)
}

func build(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelInfo
	if opts.Debug || os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       level,
		AddSource:   level == slog.LevelDebug,
		ReplaceAttr: replaceTime,
	})
	return slog.New(handler)
}

func replaceTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Format(TimeLayout))
	}
	return a
}

func get() *slog.Logger {
	if defaultLogger == nil {
		Init()
	}
	return defaultLogger
}

// Debug logs at Debug level.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs at Info level.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs at Warn level.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs at Error level.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}
