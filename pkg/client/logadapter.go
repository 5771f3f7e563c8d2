package client

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/livekit/protocol/logger"
)

// implements logging.LoggerFactory
type loggerFactory struct {
	logger logger.Logger
}

func newLoggerFactory(l logger.Logger) logging.LoggerFactory {
	return &loggerFactory{logger: l}
}

func (f *loggerFactory) NewLogger(scope string) logging.LeveledLogger {
	return &logAdapter{
		logger: f.logger.WithValues("pion", scope),
	}
}

// implements logging.LeveledLogger, info is treated as debug
type logAdapter struct {
	logger logger.Logger
}

func (l *logAdapter) Trace(msg string) {
	l.Tracef(msg)
}

func (l *logAdapter) Tracef(format string, args ...interface{}) {
	// dropped
}

func (l *logAdapter) Debug(msg string) {
	l.Debugf(msg)
}

func (l *logAdapter) Debugf(format string, args ...interface{}) {
	l.logger.Debugw(fmt.Sprintf(format, args...))
}

func (l *logAdapter) Info(msg string) {
	l.Infof(msg)
}

func (l *logAdapter) Infof(format string, args ...interface{}) {
	l.logger.Debugw(fmt.Sprintf(format, args...))
}

func (l *logAdapter) Warn(msg string) {
	l.Warnf(msg)
}

func (l *logAdapter) Warnf(format string, args ...interface{}) {
	l.logger.Warnw(fmt.Sprintf(format, args...), nil)
}

func (l *logAdapter) Error(msg string) {
	l.Errorf(msg)
}

func (l *logAdapter) Errorf(format string, args ...interface{}) {
	l.logger.Errorw(fmt.Sprintf(format, args...), nil)
}
