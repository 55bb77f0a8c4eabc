package recorder

import (
	"fmt"
	"time"

	"github.com/prometheus/procfs"
)

// BootTimeNs returns the wall clock time of the last system boot in
// nanoseconds. Added to a kernel monotonic timestamp it yields the wall
// clock time of the event.
func BootTimeNs() (int64, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return 0, fmt.Errorf("failed to open procfs: %w", err)
	}

	stat, err := fs.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to read the boot time: %w", err)
	}

	return int64(stat.BootTime) * int64(time.Second), nil
}

// commandArgs looks up the arguments of a live process. Short lived
// processes are often gone before the lookup, missing args are fine.
func commandArgs(pid uint32) []string {
	proc, err := procfs.NewProc(int(pid))
	if err != nil {
		return nil
	}

	args, err := proc.CmdLine()
	if err != nil || len(args) < 2 {
		return nil
	}

	return args[1:]
}
