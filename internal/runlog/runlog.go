// Package runlog is the driver's structured run/pass logger (§4.10).
//
// Grounded on the teacher's own use of the standard "log" package in
// cmd/gala/main.go (log.Fatalf on every CLI failure) — there is no
// structured logger anywhere in the teacher or the rest of the retrieval
// pack that fits a synchronous, single-pass-per-call pipeline, so this
// package stays on the standard library and adds only the thin
// level-prefix wrapper a multi-stage pipeline needs to tell its stages
// apart in output.
package runlog

import (
	"log"
	"os"
)

// Level is the severity a Logger line is tagged with.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger wraps a standard library *log.Logger with leveled helpers. The
// zero value is not usable; construct with New.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to os.Stderr with the standard library's
// default date/time prefix.
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

func (lg *Logger) log(level Level, format string, args []any) {
	if lg == nil {
		return
	}
	lg.l.Printf("["+level.String()+"] "+format, args...)
}

// Infof logs a pipeline-stage progress line: pass/round start and finish.
func (lg *Logger) Infof(format string, args ...any) { lg.log(LevelInfo, format, args) }

// Warnf logs a recoverable condition that doesn't abort the file or run.
func (lg *Logger) Warnf(format string, args ...any) { lg.log(LevelWarn, format, args) }

// Errorf logs a per-file or run-level failure.
func (lg *Logger) Errorf(format string, args ...any) { lg.log(LevelError, format, args) }
