// Package logger builds prefixed charmbracelet loggers for the transports.
//
// Everything logs to stderr: in IPC mode stdout carries the wire protocol.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm logger with a prefix that follows the global log level.
func New(prefix string) *log.Logger {
	return NewTo(os.Stderr, prefix)
}

// NewTo is New writing to w.
func NewTo(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() <= log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup configures the global logger for debug or quiet operation.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
}
