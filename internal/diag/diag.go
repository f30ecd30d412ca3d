// Package diag carries extraction warnings from the resolver to whoever
// started the run.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic codes.
const (
	CodeUnsupportedShape  = "unsupported-shape"
	CodeMissingExport     = "missing-export"
	CodeMissingSourceFile = "missing-source-file"
	CodeUnterminatedAlias = "unterminated-alias"
	CodeUnresolvedAlias   = "unresolved-alias"
	CodeUnresolvedModule  = "unresolved-module"
	CodeParseError        = "parse-error"
	CodeUnresolvedEntry   = "unresolved-entry"
)

// Diagnostic is one positioned message. Line and Character are 0-based.
type Diagnostic struct {
	Severity  Severity
	Code      string
	File      string
	Line      int
	Character int
	Message   string
}

// String renders `file(line,char): message` with 1-based positions.
func (d Diagnostic) String() string {
	if d.File == "" {
		return d.Message
	}
	return fmt.Sprintf("%s(%d,%d): %s", d.File, d.Line+1, d.Character+1, d.Message)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Collector keeps diagnostics in memory.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Messages returns the rendered diagnostics.
func (c *Collector) Messages() []string {
	var out []string
	for _, d := range c.Diagnostics() {
		out = append(out, d.String())
	}
	return out
}

// Count returns the number of diagnostics with the given code.
func (c *Collector) Count(code string) int {
	n := 0
	for _, d := range c.Diagnostics() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// LogSink writes diagnostics to a slog logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink wraps logger; a nil logger uses slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Report(d Diagnostic) {
	level := slog.LevelInfo
	switch d.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}
	s.logger.Log(context.Background(), level, d.String(), "code", d.Code)
}

// Tee fans a diagnostic out to several sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Report(d Diagnostic) {
	for _, s := range t {
		if s != nil {
			s.Report(d)
		}
	}
}
