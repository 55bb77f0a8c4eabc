package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jobtrace/jobtrace/pkg/jobstate"
	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/proctracer"
)

// traceLogContent is what a recorder run over the scenario job would have
// written: a short build step, a failing test step and a lint step.
const traceLogContent = `{"name":"build","pid":101,"ppid":100,"uid":1000,"fileName":"/usr/bin/build","args":["--release"],"startTimeNs":0,"durationNs":500000000,"exitCode":0}
{"name":"test","pid":102,"ppid":100,"uid":1000,"fileName":"/usr/bin/test","args":[],"startTimeNs":500000000,"durationNs":2000000000,"exitCode":1}
{"name":"lint","pid":103,"ppid":100,"uid":1000,"fileName":"/usr/bin/lint","args":[],"startTimeNs":2600000000,"durationNs":100000000,"exitCode":0}
`

// scriptedDaemon stands in for the detached recorder process. Spawning it
// writes the trace log a real recorder run would have produced, and every
// interrupt is remembered so the session can be verified.
type scriptedDaemon struct {
	pids       []int
	interrupts []int
	nextPid    int
}

func (d *scriptedDaemon) Spawn(binary string, args []string, logPath string) (int, error) {
	for i, arg := range args {
		if arg == "--output" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(traceLogContent), 0644); err != nil {
				return 0, err
			}
		}
	}

	d.nextPid++
	pid := 42000 + d.nextPid
	d.pids = append(d.pids, pid)
	return pid, nil
}

func (d *scriptedDaemon) Interrupt(pid int) error {
	d.interrupts = append(d.interrupts, pid)
	return nil
}

// TestHelper wires a complete tracing session against the real file backed
// state store, the way the two command invocations of a job would.
type TestHelper struct {
	t      *testing.T
	logger *logrus.Logger
	dir    string
	daemon *scriptedDaemon

	TraceLog  string
	StatePath string
}

// NewE2eHelper creates a session rooted in a fresh temp directory.
func NewE2eHelper(t *testing.T) *TestHelper {
	dir, err := os.MkdirTemp("", "jobtrace_e2e_")
	require.Nil(t, err)

	return &TestHelper{
		t:         t,
		logger:    log.GetLogger(),
		dir:       dir,
		daemon:    &scriptedDaemon{},
		TraceLog:  filepath.Join(dir, "jobtrace-trace.log"),
		StatePath: filepath.Join(dir, "jobtrace-state.json"),
	}
}

// NewController builds a controller the way one command invocation would.
// Controllers share nothing in memory, state flows through the store file.
func (th *TestHelper) NewController() *proctracer.Controller {
	store := jobstate.NewFileStore(afero.NewOsFs(), th.StatePath)

	return proctracer.NewController(th.logger, store, th.daemon, proctracer.Options{
		RecorderBin: th.recorderBin(),
		OutputPath:  th.TraceLog,
	})
}

func (th *TestHelper) recorderBin() string {
	bin := filepath.Join(th.dir, "jobtrace-recorder")
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		require.Nil(th.t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))
	}

	return bin
}

// SummaryPath returns a summary file path inside the session directory.
func (th *TestHelper) SummaryPath() string {
	return filepath.Join(th.dir, "summary.md")
}

// Cleanup removes the session directory.
func (th *TestHelper) Cleanup() {
	require.Nil(th.t, os.RemoveAll(th.dir))
}
