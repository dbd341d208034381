package view

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/logrusorgru/aurora"
)

//LogLevel represents the logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

//String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

//ParseLogLevel parses the case-insensitive level name, unknown names are info
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

//Logger is the leveled logger with colored level tags
//implements universe.Logger
type Logger struct {
	level LogLevel
	out   *log.Logger
	au    aurora.Aurora
}

//NewLogger creates the logger writing to w
func NewLogger(w io.Writer, level string, colors bool) *Logger {
	return &Logger{
		level: ParseLogLevel(level),
		out:   log.New(w, "", log.Ltime),
		au:    aurora.NewAurora(colors),
	}
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(LogLevelDebug, l.au.Cyan("DEBUG"), format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(LogLevelInfo, l.au.Green("INFO"), format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(LogLevelWarn, l.au.Yellow("WARN"), format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(LogLevelError, l.au.Red("ERROR"), format, v...)
}

func (l *Logger) logf(level LogLevel, tag aurora.Value, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%v] %s", tag, fmt.Sprintf(format, v...))
}
