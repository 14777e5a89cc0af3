package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// NewTee logs every record to both term and file. With the tint format only
// the terminal gets colours; the file is written as plain text.
func NewTee(term, file io.Writer, cfg Config) *slog.Logger {
	if !strings.EqualFold(strings.TrimSpace(cfg.Format), "tint") {
		return New(io.MultiWriter(term, file), cfg)
	}
	fileCfg := cfg
	fileCfg.Format = "text"
	return slog.New(multiHandler{
		New(term, cfg).Handler(),
		New(file, fileCfg).Handler(),
	})
}

type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
