package proctracer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	recorderBinName = "jobtrace-recorder"
	statdBinName    = "jobtrace-statd"
)

// Environment overrides for daemon discovery, useful when the binaries are
// installed outside PATH.
const (
	recorderBinEnv = "JOBTRACE_RECORDER_BIN"
	statdBinEnv    = "JOBTRACE_STATD_BIN"
)

func resolveRecorderBin(explicit string) (string, error) {
	return resolveBinary(explicit, recorderBinEnv, recorderBinName)
}

func resolveStatdBin(explicit string) (string, error) {
	return resolveBinary(explicit, statdBinEnv, statdBinName)
}

// resolveBinary locates a session daemon. An explicit path wins, then the
// environment override, then a binary installed next to the current
// executable, then PATH.
func resolveBinary(explicit string, envVar string, name string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%s not found at %s: %w", name, explicit, err)
		}
		return explicit, nil
	}

	if fromEnv := os.Getenv(envVar); fromEnv != "" {
		if _, err := os.Stat(fromEnv); err != nil {
			return "", fmt.Errorf("%s not found at %s: %w", name, fromEnv, err)
		}
		return fromEnv, nil
	}

	if executable, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(executable), name)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
			return sibling, nil
		}
	}

	return exec.LookPath(name)
}
