package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nerrad567/lumen-core/internal/infrastructure/config"
)

// levelNames maps configuration level strings onto slog levels.
// Unrecognised names fall back to info.
var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Logger is a thin wrapper over slog.Logger carrying the service-wide
// default attributes. Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds a logger from configuration: level filtering, json or
// text format, stdout or stderr destination, and the service/version
// attributes every record carries.
func New(cfg config.LoggingConfig, version string) *Logger {
	return newLogger(writerFor(cfg.Output), cfg, version)
}

// Default returns the logger used before configuration is loaded:
// json to stdout at info level, version "dev".
func Default() *Logger {
	return New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "dev")
}

// newLogger is the writer-injectable constructor tests build on.
func newLogger(w io.Writer, cfg config.LoggingConfig, version string) *Logger {
	opts := &slog.HandlerOptions{Level: levelFor(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "lumencore"),
		slog.String("version", version),
	})
	return &Logger{Logger: slog.New(handler)}
}

// With returns a logger carrying additional default key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Component returns a logger tagged with a component name, the
// convention every subsystem logger in this service follows.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

func levelFor(name string) slog.Level {
	if level, ok := levelNames[strings.ToLower(name)]; ok {
		return level
	}
	return slog.LevelInfo
}

func writerFor(name string) io.Writer {
	if strings.EqualFold(name, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
