//go:build !linux

package proctracer

import "errors"

// Spawn implements DaemonProcess on platforms without the eBPF recorder.
func (p *osDaemonProcess) Spawn(binary string, args []string, logPath string) (int, error) {
	return 0, errors.New("detached tracing daemons require linux")
}
