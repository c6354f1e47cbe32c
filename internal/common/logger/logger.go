package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
)

type Fields map[string]interface{}

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

type Logger struct {
	level       LogLevel
	entry       *logrus.Entry
	serviceName string
}

// New builds a JSON logger writing to stdout and, when logDir is set, to a
// rotating app.log inside it.
func New(logDir, serviceName, level string) (*Logger, error) {
	var out io.Writer = os.Stdout

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "app.log"),
			MaxSize:    constants.LoggerMaxSize,
			MaxBackups: constants.LoggerMaxBackups,
			MaxAge:     constants.LoggerMaxAge,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	return NewWithWriter(out, serviceName, level), nil
}

func NewWithWriter(out io.Writer, serviceName, level string) *Logger {
	lvl := parseLevel(level)

	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(toLogrus(lvl))

	entry := logrus.NewEntry(base)
	if serviceName != "" {
		entry = entry.WithField("service", serviceName)
	}

	return &Logger{level: lvl, entry: entry, serviceName: serviceName}
}

func NewNop() *Logger {
	return NewWithWriter(io.Discard, "", "critical")
}

func (l *Logger) ShouldLog(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) Debug(msg string)    { l.entry.Debug(msg) }
func (l *Logger) Info(msg string)     { l.entry.Info(msg) }
func (l *Logger) Warn(msg string)     { l.entry.Warn(msg) }
func (l *Logger) Error(msg string)    { l.entry.Error(msg) }
func (l *Logger) Critical(msg string) { l.entry.WithField("critical", true).Error(msg) }

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *Logger) Criticalf(format string, args ...any) {
	l.entry.WithField("critical", true).Errorf(format, args...)
}

func (l *Logger) Fatal(msg string) {
	l.entry.Fatal(msg)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.entry.Fatalf(format, args...)
}

// Writer returns a pipe whose lines are logged at warn level, for APIs
// that only accept an io.Writer or *log.Logger.
func (l *Logger) Writer() *io.PipeWriter {
	return l.entry.WriterLevel(logrus.WarnLevel)
}

func (l *Logger) WithFields(ctx context.Context, fields Fields) *Entry {
	data := logrus.Fields{}
	for k, v := range fields {
		data[k] = v
	}
	if ctx != nil {
		if traceID, ok := ctx.Value(constants.TraceIDKey).(string); ok && traceID != "" {
			data["trace_id"] = traceID
		}
	}
	return &Entry{entry: l.entry.WithFields(data)}
}

type Entry struct {
	entry *logrus.Entry
}

func (e *Entry) Debug(msg string)    { e.entry.Debug(msg) }
func (e *Entry) Info(msg string)     { e.entry.Info(msg) }
func (e *Entry) Warn(msg string)     { e.entry.Warn(msg) }
func (e *Entry) Error(msg string)    { e.entry.Error(msg) }
func (e *Entry) Critical(msg string) { e.entry.WithField("critical", true).Error(msg) }

func (e *Entry) Debugf(format string, args ...any) { e.entry.Debugf(format, args...) }
func (e *Entry) Infof(format string, args ...any)  { e.entry.Infof(format, args...) }
func (e *Entry) Warnf(format string, args ...any)  { e.entry.Warnf(format, args...) }
func (e *Entry) Errorf(format string, args ...any) { e.entry.Errorf(format, args...) }

func toLogrus(level LogLevel) logrus.Level {
	switch level {
	case DEBUG:
		return logrus.DebugLevel
	case WARNING:
		return logrus.WarnLevel
	case ERROR, CRITICAL:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func parseLevel(value string) LogLevel {
	value = strings.TrimSpace(strings.ToUpper(value))
	switch value {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}
