// Package tracelog reads the newline-delimited trace log written by the
// recorder and turns it into report-ready event collections.
package tracelog

import "strings"

// Event is one completed process execution recorded during the job.
// Events are immutable once decoded: downstream stages select, reorder
// and derive from them but never change them.
type Event struct {
	Name        string   `json:"name"`
	Pid         int      `json:"pid"`
	Ppid        int      `json:"ppid"`
	Uid         int      `json:"uid"`
	FileName    string   `json:"fileName"`
	Args        []string `json:"args"`
	StartTimeNs int64    `json:"startTimeNs"`
	DurationNs  int64    `json:"durationNs"`
	ExitCode    int      `json:"exitCode"`
}

// EndTimeNs returns the timestamp at which the process finished.
func (e *Event) EndTimeNs() int64 {
	return e.StartTimeNs + e.DurationNs
}

// Command returns the resolved executable path followed by its arguments.
func (e *Event) Command() string {
	if len(e.Args) == 0 {
		return e.FileName
	}

	return e.FileName + " " + strings.Join(e.Args, " ")
}
