// Package logger provides a colored slog handler for terminal output.
// Levels are tinted so warnings and errors stand out during long mining
// runs.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Config controls handler behavior.
type Config struct {
	Level  slog.Level
	Output io.Writer
	// Color disables ANSI escapes when false, for logs piped to
	// files.
	Color bool
}

// Handler is a slog.Handler that renders records as single colored
// lines.
type Handler struct {
	cfg   Config
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
}

// NewHandler creates a Handler from a config. A nil output defaults to
// stderr.
func NewHandler(cfg Config) *Handler {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Handler{cfg: cfg, mu: &sync.Mutex{}}
}

// NewLogger returns a slog.Logger backed by a colored Handler.
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(NewHandler(cfg))
}

// NewDefaultLogger returns a colored logger writing to stderr at the
// given level.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return NewLogger(Config{Level: level, Color: true})
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.Level
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(h.colorize(r.Level, levelTag(r.Level)))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, h.group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.cfg.Output, b.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		clone.group += "."
	}
	clone.group += name
	return &clone
}

func (h *Handler) colorize(level slog.Level, s string) string {
	if !h.cfg.Color {
		return s
	}
	switch {
	case level >= slog.LevelError:
		return colorRed + s + colorReset
	case level >= slog.LevelWarn:
		return colorYellow + s + colorReset
	case level >= slog.LevelInfo:
		return colorGreen + s + colorReset
	default:
		return colorCyan + s + colorReset
	}
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
