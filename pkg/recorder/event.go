package recorder

import "bytes"

// Event types written by the probe, matching recorder.bpf.c.
const (
	eventExec = 1
	eventExit = 2
)

// execEvent mirrors struct event in recorder.bpf.c. The Pad field keeps
// the layout aligned with the C struct.
type execEvent struct {
	Type     uint32
	Pid      uint32
	Ppid     uint32
	Uid      uint32
	TimeNs   uint64
	ExitCode int32
	Pad      uint32
	Comm     [16]byte
	Filename [256]byte
}

// cString returns the bytes up to the first NUL as a string.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}

	return string(b)
}
