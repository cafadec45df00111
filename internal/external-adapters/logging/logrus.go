// Package logging adapts logrus to the domain Logger interface.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
)

// LogrusLogger implements interfaces.Logger on top of logrus
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger creates a logger at the given level. Unknown level
// strings fall back to info.
func NewLogrusLogger(level string) *LogrusLogger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &LogrusLogger{logger: logger}
}

// Debug logs debug-level messages
func (l *LogrusLogger) Debug(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Debug(msg)
}

// Info logs informational messages
func (l *LogrusLogger) Info(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Info(msg)
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Warn(msg)
}

// Error logs error messages
func (l *LogrusLogger) Error(msg string, fields ...interfaces.Field) {
	l.logger.WithFields(toLogrusFields(fields)).Error(msg)
}

func toLogrusFields(fields []interfaces.Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
