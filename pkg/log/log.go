// Package log provides a configured logger that is ready to use
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// ConfigureLogger initializes the logger based on the provided log level and formatter.
func ConfigureLogger(logLevel string, logFormatter string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Default to InfoLevel if parsing fails
	}

	logger = logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)

	if logFormatter == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		DefaultFormat()
	}
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	if logger == nil {
		// Fallback to a default logger if not configured
		ConfigureLogger("info", "text")
	}
	return logger
}

// DefaultFormat sets the default log format
func DefaultFormat() {
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	})
}

// MiniLogFormat sets the minimal log format mostly used for testing purpose
func MiniLogFormat() {
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:          true,
		DisableQuote:           true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
}
