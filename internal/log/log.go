// Package log provides the singleton logger used across licensegate.
// Until an application logger is set, every message is discarded.
package log

import (
	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/discard"
)

var l logger.Logger = discard.New()

// Set replaces the application logger.
func Set(logger logger.Logger) {
	l = logger
}

// Get returns the current application logger.
func Get() logger.Logger {
	return l
}

func Errorf(format string, args ...interface{}) {
	l.Errorf(format, args...)
}

func Error(args ...interface{}) {
	l.Error(args...)
}

func Warnf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func Warn(args ...interface{}) {
	l.Warn(args...)
}

func Infof(format string, args ...interface{}) {
	l.Infof(format, args...)
}

func Info(args ...interface{}) {
	l.Info(args...)
}

func Debugf(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

func Debug(args ...interface{}) {
	l.Debug(args...)
}

func Tracef(format string, args ...interface{}) {
	l.Tracef(format, args...)
}

func Trace(args ...interface{}) {
	l.Trace(args...)
}

func WithFields(fields ...interface{}) logger.MessageLogger {
	return l.WithFields(fields...)
}

func Nested(fields ...interface{}) logger.Logger {
	return l.Nested(fields...)
}
