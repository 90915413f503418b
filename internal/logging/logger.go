// Package logging wires log/slog to a coloured, single-line text handler.
// Logs go to stderr so that reports on stdout stay machine-readable.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	level = new(slog.LevelVar)

	infoColor  = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
	keyColor   = color.New(color.Faint).SprintFunc()
)

// ColorTextHandler writes "LEVEL message key=value ..." lines.
type ColorTextHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

// NewColorTextHandler creates a handler writing to w.
func NewColorTextHandler(w io.Writer) *ColorTextHandler {
	return &ColorTextHandler{mu: &sync.Mutex{}, w: w}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ColorTextHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= level.Level()
}

// Handle formats and writes the record.
func (h *ColorTextHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(levelText(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		b.WriteString(" " + keyColor(a.Key+"=") + formatAttrValue(a.Value))
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that prefixes every record with attrs.
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup is a no-op; groups are flattened.
func (h *ColorTextHandler) WithGroup(string) slog.Handler {
	return h
}

func levelText(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return errorColor("ERROR")
	case l >= slog.LevelWarn:
		return warnColor("WARN")
	case l >= slog.LevelInfo:
		return infoColor("INFO")
	default:
		return debugColor("DEBUG")
	}
}

func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\"") {
			return fmt.Sprintf("%q", s)
		}
		return s
	case slog.KindTime:
		return v.Time().Format("15:04:05")
	default:
		return v.String()
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs the handler as the slog default, writing to w (stderr when
// nil) at the named level.
func Init(levelName string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	level.Set(ParseLevel(levelName))
	slog.SetDefault(slog.New(NewColorTextHandler(w)))
	Debug("logging initialized", "level", level.Level().String())
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { slog.Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { slog.Error(msg, args...) }
