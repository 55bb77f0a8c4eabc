package cmd

import (
	"os"
	"path/filepath"
)

// runnerTempDir returns the CI runner's temp directory, falling back to
// the system temp directory outside a runner.
func runnerTempDir() string {
	if dir := os.Getenv("RUNNER_TEMP"); dir != "" {
		return dir
	}

	return os.TempDir()
}

func defaultTraceLogPath() string {
	return filepath.Join(runnerTempDir(), "jobtrace-trace.log")
}

func defaultRecorderLogPath() string {
	return filepath.Join(runnerTempDir(), "jobtrace-recorder.log")
}

func defaultStatdLogPath() string {
	return filepath.Join(runnerTempDir(), "jobtrace-statd.log")
}
