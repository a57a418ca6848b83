// Package logging configures the logrus logger shared by the harness and CLI.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out at the named level. An
// unparseable level falls back to info and is reported on the new logger.
func New(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Level = logrus.InfoLevel
		logger.WithError(err).Warn("Error parsing log level, using: info")
		return logger
	}

	logger.Level = parsed
	return logger
}

// Discard returns a logger that drops everything, for tests and quiet runs
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}
