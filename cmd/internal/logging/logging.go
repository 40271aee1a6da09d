// Package logging sets up the slog logger shared by the jigsaw tools: text
// on the console and, optionally, rotated JSON in a log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File is the log file path. Empty disables file output.
	File string

	// Console receives text output. Nil means os.Stderr.
	Console io.Writer

	// ConsoleLevel is the minimum level printed to Console.
	ConsoleLevel slog.Level
}

// multiHandler dispatches log records to multiple handlers based on level.
type multiHandler struct {
	console slog.Handler
	file    slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.file.Enabled(ctx, r.Level) {
		if err := h.file.Handle(ctx, r); err != nil {
			return err
		}
	}
	if h.console.Enabled(ctx, r.Level) {
		if err := h.console.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &multiHandler{
		console: h.console.WithAttrs(attrs),
		file:    h.file.WithAttrs(attrs),
	}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return &multiHandler{
		console: h.console.WithGroup(name),
		file:    h.file.WithGroup(name),
	}
}

// New builds a logger from opts. With a file configured, the file receives
// Debug and above as JSON through a rotating writer. The returned cleanup
// closes the file and must be called before exit.
func New(opts Options) (*slog.Logger, func(), error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{Level: opts.ConsoleLevel})
	if opts.File == "" {
		return slog.New(consoleHandler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		LocalTime:  true,
	}
	fileHandler := slog.NewJSONHandler(lj, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})

	logger := slog.New(&multiHandler{console: consoleHandler, file: fileHandler})
	cleanup := func() {
		if err := lj.Close(); err != nil {
			fmt.Fprintf(console, "logging: close %s: %v\n", opts.File, err)
		}
	}
	return logger, cleanup, nil
}
