// Package applog provides the structured logging handler shared by the
// CLI and the core: a mutex-guarded io.Writer, text formatting, timestamp
// first, attrs joined after the message.
package applog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

// handler formats records as "<time> <level> <message> <attr...>", one line
// per record, safe for concurrent writers.
type handler struct {
	h   slog.Handler
	mu  *sync.Mutex
	out io.Writer
}

func newHandler(w io.Writer, opts *slog.HandlerOptions) *handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &handler{
		out: w,
		h: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: opts.AddSource,
		}),
		mu: &sync.Mutex{},
	}
}

func (self *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return self.h.Enabled(ctx, level)
}

func (self *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{h: self.h.WithAttrs(attrs), out: self.out, mu: self.mu}
}

func (self *handler) WithGroup(name string) slog.Handler {
	return &handler{h: self.h.WithGroup(name), out: self.out, mu: self.mu}
}

func (self *handler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")
	strs := []string{formattedTime, r.Level.String(), r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, fmt.Sprintf("%s=%s", a.Key, a.Value))
			return true
		})
	}

	self.mu.Lock()
	defer self.mu.Unlock()
	_, err := fmt.Fprintln(self.out, strings.Join(strs, " "))
	return err
}

// Level names accepted by New, matching appconfig's log_level field.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error"; anything else defaults to "info").
func New(w io.Writer, level string) *slog.Logger {
	h := newHandler(w, &slog.HandlerOptions{Level: levelFromString(level)})
	return slog.New(h)
}
