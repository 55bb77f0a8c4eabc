package recorder

import (
	"fmt"
	"os"
	"path/filepath"
)

const bpfObjectName = "recorder.bpf.o"

// bpfObjectEnv overrides BPF object discovery, useful when the object is
// installed outside the binary's directory.
const bpfObjectEnv = "JOBTRACE_BPF_OBJECT"

// ResolveBpfObject locates the compiled BPF object. An explicit path wins,
// then the environment override, then an object installed next to the
// current executable.
func ResolveBpfObject(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("BPF object not found at %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if fromEnv := os.Getenv(bpfObjectEnv); fromEnv != "" {
		if _, err := os.Stat(fromEnv); err != nil {
			return "", fmt.Errorf("BPF object not found at %s: %w", fromEnv, err)
		}
		return fromEnv, nil
	}

	if executable, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(executable), bpfObjectName)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
			return sibling, nil
		}
	}

	return "", fmt.Errorf("no BPF object found, provide one with --bpf-object or %s", bpfObjectEnv)
}
