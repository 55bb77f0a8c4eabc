//go:build linux

package proctracer

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Spawn implements DaemonProcess. The child runs in its own session so it
// survives the end of the step that launched it. The handle is released
// right away, the finish invocation only knows the pid.
func (p *osDaemonProcess) Spawn(binary string, args []string, logPath string) (int, error) {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open daemon log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(binary, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, fmt.Errorf("failed to release %s: %w", binary, err)
	}

	return pid, nil
}
