package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

func (l Level) tag() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERROR:
		return "ERROR"
	}

	return ""
}

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type levelLogger struct {
	level Level
	out   *log.Logger
}

// NewLogger returns a logger writing level-tagged lines to stderr. Messages
// below level are dropped, SILENCE drops everything.
func NewLogger(level Level) *levelLogger {
	return &levelLogger{
		level: level,
		out:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *levelLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, msg, a...)
}

func (l *levelLogger) Infof(msg string, a ...any) {
	l.logf(INFO, msg, a...)
}

func (l *levelLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, msg, a...)
}

func (l *levelLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, msg, a...)
}

func (l *levelLogger) logf(level Level, msg string, a ...any) {
	if level < l.level {
		return
	}

	l.out.Printf("%s | %s", level.tag(), fmt.Sprintf(msg, a...))
}
