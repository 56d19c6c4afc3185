package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a logging severity.
type Level = logrus.Level

const (
	LevelTrace = logrus.TraceLevel
	LevelDebug = logrus.DebugLevel
	LevelInfo  = logrus.InfoLevel
	LevelWarn  = logrus.WarnLevel
	LevelError = logrus.ErrorLevel
)

var std = newLogger()

type lineFormatter struct{}

// Format renders [TIME] [LEVEL] MSG.
func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	return []byte(fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level, entry.Message)), nil
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	// stdout belongs to the stdio transport
	l.SetOutput(os.Stderr)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// ParseLevel parses trace, debug, info, warn, error, fatal or panic.
func ParseLevel(s string) (Level, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func SetLevel(level Level) {
	std.SetLevel(level)
}

func GetLevel() Level {
	return std.GetLevel()
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Writer returns a pipe that logs every written line at the given level.
// The caller should close it when done.
func Writer(level Level) *io.PipeWriter {
	return std.WriterLevel(level)
}

func Trace(format string, args ...any) { std.Tracef(format, args...) }
func Debug(format string, args ...any) { std.Debugf(format, args...) }
func Info(format string, args ...any)  { std.Infof(format, args...) }
func Warn(format string, args ...any)  { std.Warnf(format, args...) }
func Error(format string, args ...any) { std.Errorf(format, args...) }
