package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTimeFormatStr is the default time format string for log appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

type writerAppender struct {
	writer io.Writer
}

// NewStdoutAppender creates a new appender that writes tab delimited lines to stdout.
func NewStdoutAppender() Appender {
	return NewWriterAppender(os.Stdout)
}

// NewWriterAppender creates a new appender that writes tab delimited lines to the given writer.
func NewWriterAppender(writer io.Writer) Appender {
	return &writerAppender{writer}
}

// Write outputs the log entry to the underlying stream.
func (appender *writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields)
	if _, writeErr := fmt.Fprintln(appender.writer, line); writeErr != nil {
		return writeErr
	}
	return err
}

// Sync is a no-op unless the writer is a file.
func (appender *writerAppender) Sync() error {
	if file, ok := appender.writer.(*os.File); ok && file != os.Stdout && file != os.Stderr {
		return file.Sync()
	}
	return nil
}

// FileAppender writes tab delimited lines to a file that is rotated once it grows past MaxSize
// megabytes.
type FileAppender struct {
	writerAppender
	file *lumberjack.Logger
}

// NewFileAppender creates an appender writing to filename, keeping up to three compressed backups.
func NewFileAppender(filename string) *FileAppender {
	file := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 3,
		Compress:   true,
	}
	return &FileAppender{writerAppender: writerAppender{file}, file: file}
}

// Close closes the current log file.
func (appender *FileAppender) Close() error {
	return appender.file.Close()
}

// formatEntry renders `time level name caller message fields` separated by tabs. The fields are
// json encoded in order. A partial line is returned alongside any encoding error.
func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	const maxLength = 10
	toPrint := make([]string, 0, maxLength)
	toPrint = append(toPrint, entry.Time.Format(DefaultTimeFormatStr))

	toPrint = append(toPrint, strings.ToUpper(entry.Level.String()))
	if entry.LoggerName != "" {
		toPrint = append(toPrint, entry.LoggerName)
	}
	if entry.Caller.Defined {
		toPrint = append(toPrint, callerToString(&entry.Caller))
	}
	toPrint = append(toPrint, entry.Message)
	if len(fields) == 0 {
		return strings.Join(toPrint, "\t"), nil
	}

	// Use zap's json encoder which will encode our slice of fields in-order. As opposed to the
	// random iteration order of a map. Call it with an empty Entry object such that only the fields
	// become "map-ified".
	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := jsonEncoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(toPrint, "\t"), err
	}
	toPrint = append(toPrint, buf.String())
	return strings.Join(toPrint, "\t"), nil
}

// callerToString returns "<package directory>/<file>:<line>", e.g. "kinematics/inverse.go:57".
func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
