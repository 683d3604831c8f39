// Package logging configures the process-wide logger: single-line,
// human-oriented records on stderr with colorized level tags.
// Verbosity is adjusted with repeatable -v / -q counters.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Setup installs the process-wide default logger.
func Setup(w io.Writer, verbose, quiet int, colors bool) {
	slog.SetDefault(slog.New(NewHandler(w, Level(verbose, quiet), colors)))
}

// Level maps -v / -q repeat counts onto a slog level. The default
// shows warnings and errors; each -v steps toward debug, each -q
// toward silence.
func Level(verbose, quiet int) slog.Level {
	level := slog.LevelWarn + slog.Level(4*(quiet-verbose))
	if level < slog.LevelDebug {
		level = slog.LevelDebug
	}
	if level > slog.LevelError+4 {
		level = slog.LevelError + 4
	}
	return level
}

// Handler writes one line per record: a level tag, the message, then
// key=value attributes.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	colors bool
	attrs  []slog.Attr
}

// NewHandler returns a Handler writing records at or above level.
func NewHandler(w io.Writer, level slog.Level, colors bool) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, level: level, colors: colors}
}

var levelStyles = map[slog.Level]lipgloss.Style{
	slog.LevelDebug: lipgloss.NewStyle().Faint(true),
	slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	tag := strings.ToLower(r.Level.String())
	if h.colors {
		if style, ok := levelStyles[r.Level]; ok {
			tag = style.Render(tag)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", tag, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &out
}

// WithGroup is accepted but flattened; the CLI's records are simple
// enough that grouping adds nothing.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}
