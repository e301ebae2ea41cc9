package spritekit

import (
	"context"
	"log"
	"log/slog"
)

// Severity ranks a diagnostic message.
type Severity uint8

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MessageSink receives diagnostics from the cache and scheduler. It is purely
// informational: nothing in this package depends on a sink being present.
type MessageSink interface {
	Message(sev Severity, msg, category string)
}

// Message categories used by this package.
const (
	CategorySprite    = "sprite"
	CategoryAnimation = "animation"
	CategoryRender    = "render"
)

type nopSink struct{}

func (nopSink) Message(Severity, string, string) {}

// NopSink discards every message. It is the default sink.
var NopSink MessageSink = nopSink{}

// LogSink forwards messages at or above Min to a standard library logger.
// A nil Logger uses log.Default().
type LogSink struct {
	Logger *log.Logger
	Min    Severity
}

// Message implements MessageSink.
func (s *LogSink) Message(sev Severity, msg, category string) {
	if sev < s.Min {
		return
	}
	l := s.Logger
	if l == nil {
		l = log.Default()
	}
	l.Printf("[spritekit] %s %s: %s", sev, category, msg)
}

// SlogSink forwards messages to a structured logger, mapping each severity to
// the matching slog level and attaching the category as an attribute. The
// logger's handler decides which levels are kept. A nil Logger uses
// slog.Default().
//
// Example:
//
//	sink := &spritekit.SlogSink{Logger: slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug}))}
type SlogSink struct {
	Logger *slog.Logger
}

// Message implements MessageSink.
func (s *SlogSink) Message(sev Severity, msg, category string) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.LogAttrs(context.Background(), sev.slogLevel(), msg, slog.String("category", category))
}

func (s Severity) slogLevel() slog.Level {
	switch s {
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
