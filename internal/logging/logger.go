// Package logging provides the run logger: messages go to the console
// verbatim and are mirrored, timestamp-prefixed, into a per-day log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// timeLayout is ISO 8601 in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z"

// FileName returns the per-day log file name for t (e.g. "process_2026_08_28.log").
func FileName(t time.Time) string {
	return "process_" + t.Format("2006_01_02") + ".log"
}

// RunLogger writes each message to the console verbatim and appends
// "<ISO8601>: <message>\n" to the log file. The file is opened lazily on the
// first logged message, so constructing a logger touches nothing on disk.
// A file open or write failure is reported once to errOut and never fails
// the run; console logging always continues.
//
// All writes hold the mutex, so concurrent job goroutines cannot interleave
// partial lines.
type RunLogger struct {
	mu         sync.Mutex
	console    io.Writer
	errOut     io.Writer
	path       string
	file       *os.File
	openFailed bool
	reportOnce sync.Once

	now func() time.Time // test hook
}

// New returns a logger that mirrors to the file at path. An empty path
// disables file logging entirely.
func New(path string, console, errOut io.Writer) *RunLogger {
	return &RunLogger{
		console: console,
		errOut:  errOut,
		path:    path,
		now:     time.Now,
	}
}

// Path returns the log file path ("" when file logging is disabled).
func (l *RunLogger) Path() string { return l.path }

// Log writes the formatted message to the console and appends the
// timestamped line to the log file.
func (l *RunLogger) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
	l.appendLocked(msg)
}

// Console writes the formatted message to the console only. Used for the
// engine command echo and other output that has no place in the file.
func (l *RunLogger) Console(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
}

// Close closes the log file if one was opened.
func (l *RunLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *RunLogger) appendLocked(msg string) {
	if l.path == "" || l.openFailed {
		return
	}
	if l.file == nil {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			l.openFailed = true
			l.report(err)
			return
		}
		l.file = f
	}
	line := l.now().UTC().Format(timeLayout) + ": " + msg + "\n"
	if _, err := io.WriteString(l.file, line); err != nil {
		l.report(err)
	}
}

func (l *RunLogger) report(err error) {
	l.reportOnce.Do(func() {
		fmt.Fprintf(l.errOut, "log write failed: %v (continuing with console-only logging)\n", err)
	})
}
