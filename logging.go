package mdpage

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Logger is the logging surface used by the handler and the CLI.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogConfig selects the go-logger level and output format.
type LogConfig struct {
	Level  string
	Format string
	Name   string
}

// NewLogger builds a Logger backed by go-logger.
func NewLogger(cfg LogConfig) (Logger, error) {
	options := []glog.Option{}
	level, err := logLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if level != "" {
		options = append(options, glog.WithLevel(level))
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
	root := glog.NewLogger(options...)
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return root, nil
	}
	return root.GetLogger(name), nil
}

func logLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return "", nil
	case "trace":
		return glog.Trace, nil
	case "debug":
		return glog.Debug, nil
	case "info":
		return glog.Info, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	default:
		return "", fmt.Errorf("logging: unsupported level %q", level)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

const maxLoggedPath = 96

// logSafe bounds client-controlled strings before they reach the log.
func logSafe(s string, limit int) string {
	if ansi.PrintableRuneWidth(s) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return truncate.StringWithTail(s, uint(limit), "…")
}
