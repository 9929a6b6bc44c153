package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"renamer/internal/errors"

	"github.com/sirupsen/logrus"
)

// Level thresholds, lowest is most verbose
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	// current level shared by every logger, so SetDebug also affects
	// loggers created before the call
	level  atomic.Uint32
	logger = NewLogger()
)

func init() {
	level.Store(uint32(logrus.InfoLevel))
}

// Field is a structured key/value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger
type Option func(*options)

// WithOutput sets the writer log lines go to (stderr by default)
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log lines to the file at path
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Logger wraps a logrus entry carrying accumulated fields
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a logger. The file option is best effort: when the file
// cannot be opened the logger keeps writing to its primary output.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	base.SetLevel(logrus.TraceLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableColors:    o.out != os.Stderr,
			QuoteEmptyFields: true,
		})
	}

	l := &Logger{}
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			l.file = f
			out = io.MultiWriter(o.out, f)
		} else {
			fmt.Fprintf(o.out, "log: cannot open %s: %v\n", o.file, err)
		}
	}
	base.SetOutput(out)
	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil && old.file != nil {
		old.file.Close()
	}
}

// SetDebug toggles debug output for every logger
func SetDebug(debug bool) {
	if debug {
		level.Store(uint32(logrus.DebugLevel))
		return
	}
	level.Store(uint32(logrus.InfoLevel))
}

// SetLevel sets the minimum level by name (debug, info, warn, error)
func SetLevel(name string) error {
	lvl, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Store(uint32(lvl))
	return nil
}

// ParseLevel validates a level name
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(name) {
	case LevelDebug:
		return logrus.DebugLevel, nil
	case LevelInfo, "":
		return logrus.InfoLevel, nil
	case LevelWarn, "warning":
		return logrus.WarnLevel, nil
	case LevelError:
		return logrus.ErrorLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

func enabled(lvl logrus.Level) bool {
	return lvl <= logrus.Level(level.Load())
}

// With returns a child logger with the fields attached
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError attaches err and whatever the typed error knows about itself
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// WithContext binds ctx to the entry. A nil ctx returns l unchanged.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

func (l *Logger) log(lvl logrus.Level, msg string) {
	if !enabled(lvl) {
		return
	}
	l.entry.Log(lvl, msg)
}

// Debug logs at debug level
func (l *Logger) Debug(msg string) { l.log(logrus.DebugLevel, msg) }

// Info logs at info level
func (l *Logger) Info(msg string) { l.log(logrus.InfoLevel, msg) }

// Warn logs at warn level
func (l *Logger) Warn(msg string) { l.log(logrus.WarnLevel, msg) }

// Error logs at error level
func (l *Logger) Error(msg string) { l.log(logrus.ErrorLevel, msg) }

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	if enabled(logrus.DebugLevel) {
		l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var patternErr *errors.PatternError
	if errors.As(err, &patternErr) {
		fields = append(fields, F("pattern", patternErr.Pattern()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var histErr *errors.HistoryError
	if errors.As(err, &histErr) && histErr.Operation() != "" {
		fields = append(fields, F("operation", histErr.Operation()))
	}
	return fields
}

// Package-level helpers log through the configured logger

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Infof is an alias of Info
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a formatted message at debug level
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Debugf is an alias of Debug
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Warnf is an alias of Warn
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a formatted message at error level
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Errorf is an alias of Error
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err's fields attached
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}

// Component returns a logger tagged with the component name
func Component(name string) *Logger {
	return logger.With(F("component", name))
}
