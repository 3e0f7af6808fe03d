package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"slaved/internal/config"
	"slaved/internal/slavelog"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	handler, err := newHandler(opts.Format, writer, parseLevel(opts.Level))
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// NewFromConfig creates a logger using application config defaults. Besides
// stdout, records are fanned out to leveled files under the configured log
// directory (slaved.INFO, slaved.WARN, slaved.ERROR). Each file receives
// records at its severity and above, so slaved.INFO holds the complete log.
// These are the files the web UI serves under /log/<level>.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}

	console, err := newHandler(cfg.Logging.Format, os.Stdout, parseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, err
	}

	handlers := []slog.Handler{console}
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		for _, lvl := range []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
			path := slavelog.SlavePath(cfg.Paths.LogDir, levelLabel(lvl))
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", path, err)
			}
			fileHandler, err := newHandler(cfg.Logging.Format, file, lvl)
			if err != nil {
				_ = file.Close()
				return nil, err
			}
			handlers = append(handlers, fileHandler)
		}
	}

	return slog.New(newFanoutHandler(handlers...)), nil
}

func newHandler(format string, w io.Writer, level slog.Level) (slog.Handler, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return newJSONHandler(w, levelVar), nil
	case "console", "":
		return newConsoleHandler(w, levelVar), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	opts := slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
