package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for pretty-printed records, keyed by severity.
var (
	styleTime  = lipgloss.NewStyle().Faint(true)
	styleAttr  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleLevel = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// prettyHandler implements a colorized text handler for log messages.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

// Enabled implements slog.Handler.
func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(styleTime.Render(r.Time.Format("15:04:05.000")))
	sb.WriteByte(' ')

	level := Level(r.Level)
	if style, ok := styleLevel[level]; ok {
		sb.WriteString(style.Render(strings.ToUpper(level.String())))
	} else {
		sb.WriteString(r.Level.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	put := func(a slog.Attr) {
		sb.WriteByte(' ')
		sb.WriteString(styleAttr.Render(a.Key))
		sb.WriteByte('=')
		sb.WriteString(fmt.Sprint(a.Value.Resolve().Any()))
	}

	for _, a := range h.attrs {
		put(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		put(a)

		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, sb.String())

	return err
}

// WithAttrs implements slog.Handler.
func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

// WithGroup implements slog.Handler. Groups are flattened; the pretty
// handler is for human eyes, not machine parsing.
func (h *prettyHandler) WithGroup(string) slog.Handler { return h }
