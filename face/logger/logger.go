// Package logger writes levelled, tagged lines to a hal.Logger.
package logger

import (
	"fmt"

	"watchface/hal"
)

// MaxLineBytes bounds one log line; longer lines are truncated.
const MaxLineBytes = 128

// Level is a log severity. Lower values are more severe.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "E"
	case LevelWarn:
		return "W"
	case LevelInfo:
		return "I"
	case LevelDebug:
		return "D"
	default:
		return "?"
	}
}

// ParseLevel accepts the single-letter form or the full lower-case name.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "E", "error":
		return LevelError, nil
	case "W", "warn":
		return LevelWarn, nil
	case "I", "info":
		return LevelInfo, nil
	case "D", "debug":
		return LevelDebug, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Logger tags lines with a component name and filters by level.
// The zero value and a nil *Logger discard everything.
type Logger struct {
	out   hal.Logger
	tag   string
	level Level
}

// New returns a logger writing lines at or above level.
func New(out hal.Logger, tag string, level Level) *Logger {
	return &Logger{out: out, tag: tag, level: level}
}

// With returns a logger for a sub-component sharing the output and level.
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{out: l.out, tag: tag, level: l.level}
}

func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil || l.out == nil || level > l.level {
		return
	}
	line := fmt.Sprintf("%s %s: %s", level, l.tag, fmt.Sprintf(format, args...))
	if len(line) > MaxLineBytes {
		line = line[:MaxLineBytes]
	}
	l.out.WriteLineString(line)
}
