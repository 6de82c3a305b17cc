package helper

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// PrettyHandlerOptions configures the PrettyHandler
type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler is a slog.Handler printing colored single-line records:
// [15:04:05.000] LEVEL: message {attrs as json}
type PrettyHandler struct {
	slog.Handler
	l      *log.Logger
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler creates a PrettyHandler writing to out
func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
}

// Handle formats and writes a record
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[h.qualify(a.Key)] = a.Value.Any()
		return true
	})

	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := color.CyanString(r.Message)

	h.l.Println(timeStr, level, msg, color.WhiteString(string(b)))

	return nil
}

// WithAttrs returns a PrettyHandler that adds attrs to every record
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := h.clone()
	c.Handler = h.Handler.WithAttrs(attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, slog.Any(h.qualify(a.Key), a.Value))
	}
	return c
}

// WithGroup returns a PrettyHandler that prefixes later attribute keys with name
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.Handler = h.Handler.WithGroup(name)
	c.groups = append(c.groups, name)
	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		Handler: h.Handler,
		l:       h.l,
		attrs:   slices.Clip(h.attrs),
		groups:  slices.Clip(h.groups),
	}
}

// qualify prefixes key with the open groups, joined by dots
func (h *PrettyHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

// NewLogger returns a slog.Logger backed by a PrettyHandler at the given level
func NewLogger(out io.Writer, level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: level,
		},
	}
	return slog.New(NewPrettyHandler(out, opts))
}
