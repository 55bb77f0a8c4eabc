// Package flags provides a way to manage global flags for the stats daemon.
package flags

import (
	"fmt"

	"github.com/spf13/pflag"
)

// GlobalFlags holds the global flag values for the stats daemon.
type GlobalFlags struct {
	LogLevel     string
	LogFormatter string
}

// SetGlobalFlags initializes and binds global flags using the provided FlagSet.
// It returns a pointer to the initialized GlobalFlags struct.
func SetGlobalFlags(flags *pflag.FlagSet) *GlobalFlags {
	globalFlags := &GlobalFlags{}

	flags.StringVarP(&globalFlags.LogLevel, "log-level", "l", "info", "Valid log levels: debug, info(default), warn/warning, error, fatal")

	flags.StringVarP(&globalFlags.LogFormatter, "log-formatter", "e", "text", "Valid log formatters: json, text(default)")

	return globalFlags
}

// ValidateGlobalFlags validates the global flags used in the application.
func (globalFlags *GlobalFlags) ValidateGlobalFlags() error {
	validLogLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
		"fatal":   true,
	}

	validLogFormatters := map[string]bool{
		"json": true,
		"text": true,
	}

	if !validLogLevels[globalFlags.LogLevel] {
		return fmt.Errorf("invalid log level: %s", globalFlags.LogLevel)
	}

	if !validLogFormatters[globalFlags.LogFormatter] {
		return fmt.Errorf("invalid log formatter: %s", globalFlags.LogFormatter)
	}

	return nil
}
