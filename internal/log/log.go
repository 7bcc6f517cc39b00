// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

const tracePrefix = "TRACE: "

var traceEnabled bool

// levels maps OFFERCTL_LOG values onto Apex levels. trace has no Apex
// equivalent so it rides on debug with a message prefix.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// InitLogger sets up Apex with the line handler writing to stderr and a level
// taken from the OFFERCTL_LOG env variable. Unknown values fall back to error.
func InitLogger() {
	envLevel := strings.ToLower(strings.TrimSpace(os.Getenv("OFFERCTL_LOG")))
	level, ok := levels[envLevel]
	if !ok {
		envLevel = "error"
		level = log.ErrorLevel
	}
	traceEnabled = envLevel == "trace"

	log.SetHandler(NewLineHandler(os.Stderr))
	log.SetLevel(level)
}

// LineHandler formats each entry as "timestamp L message key=value...". Stdout
// is reserved for command output so the default writer is stderr.
type LineHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineHandler returns a LineHandler writing to w.
func NewLineHandler(w io.Writer) *LineHandler {
	return &LineHandler{w: w}
}

// HandleLog implements the log.Handler interface.
func (h *LineHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintln(h.w, formatEntry(e, time.Now()))
	return err
}

// formatEntry renders a single log line.
func formatEntry(e *log.Entry, now time.Time) string {
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, tracePrefix) {
		level = "T"
		message = strings.TrimPrefix(message, tracePrefix)
	} else if l := e.Level.String(); l != "" {
		level = strings.ToUpper(l[:1])
	}

	var b strings.Builder
	b.WriteString(now.Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	return b.String()
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithField returns an entry carrying a single key/value.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}
