package proctracer

import (
	"errors"
	"os"
	"syscall"
)

// ErrAlreadyExited reports that the child was gone before a signal could
// be delivered.
var ErrAlreadyExited = errors.New("process already exited")

// DaemonProcess manages the detached children of a tracing session, the
// recorder and the stats daemon.
type DaemonProcess interface {
	// Spawn starts binary detached from the current process and returns
	// its pid.
	Spawn(binary string, args []string, logPath string) (int, error)
	// Interrupt asks pid to flush and exit.
	Interrupt(pid int) error
}

type osDaemonProcess struct{}

// NewDaemonProcess returns the host process backed DaemonProcess.
func NewDaemonProcess() DaemonProcess {
	return &osDaemonProcess{}
}

// Interrupt implements DaemonProcess.
func (p *osDaemonProcess) Interrupt(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return ErrAlreadyExited
	}

	err = proc.Signal(os.Interrupt)
	if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
		return ErrAlreadyExited
	}

	return err
}
