package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the format used for the timestamp of console log lines.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender will create human readable tab-delimited logs. Structured fields are
// serialized as a json map at the end of the line.
type ConsoleAppender struct {
	io.Writer
}

// NewStdoutAppender creates a new appender that outputs to stdout.
func NewStdoutAppender() ConsoleAppender {
	return ConsoleAppender{os.Stdout}
}

// NewWriterAppender creates a new appender that outputs to the input writer.
func NewWriterAppender(writer io.Writer) ConsoleAppender {
	return ConsoleAppender{writer}
}

// Write outputs the log entry to the underlying stream.
func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields, true)
	if _, writeErr := fmt.Fprintln(appender.Writer, line); writeErr != nil {
		return writeErr
	}
	return err
}

// formatEntry renders entry as tab separated columns followed by the fields as one json object.
// Console lines put the caller before the logger name; test lines put it after. When the fields
// cannot be encoded the line is returned without them, together with the error.
func formatEntry(entry zapcore.Entry, fields []zapcore.Field, callerFirst bool) (string, error) {
	cols := []string{entry.Time.Format(DefaultTimeFormatStr), strings.ToUpper(entry.Level.String())}
	caller := ""
	if entry.Caller.Defined {
		caller = callerToString(&entry.Caller)
	}
	if callerFirst {
		cols = appendNonEmpty(cols, caller, entry.LoggerName)
	} else {
		cols = append(cols, entry.LoggerName)
		cols = appendNonEmpty(cols, caller)
	}
	cols = append(cols, entry.Message)
	if len(fields) == 0 {
		return strings.Join(cols, "\t"), nil
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := enc.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(cols, "\t"), err
	}
	cols = append(cols, buf.String())
	return strings.Join(cols, "\t"), nil
}

func appendNonEmpty(cols []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			cols = append(cols, v)
		}
	}
	return cols
}

// Sync is a no-op.
func (appender ConsoleAppender) Sync() error {
	return nil
}

// callerToString returns "<package>/<file>:<line>" for the caller.
func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
