package recorder

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cilium/ebpf/ringbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

type readResult struct {
	event execEvent
	err   error
}

type fakeSource struct {
	reads  []readResult
	closed bool
}

func (f *fakeSource) Read() (execEvent, error) {
	if len(f.reads) == 0 {
		return execEvent{}, ringbuf.ErrClosed
	}

	next := f.reads[0]
	f.reads = f.reads[1:]
	return next.event, next.err
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func execAt(pid uint32, ppid uint32, comm string, filename string, monoNs uint64) execEvent {
	e := execEvent{Type: eventExec, Pid: pid, Ppid: ppid, Uid: 1000, TimeNs: monoNs}
	copy(e.Comm[:], comm)
	copy(e.Filename[:], filename)
	return e
}

func exitAt(pid uint32, monoNs uint64, exitCode int32) execEvent {
	return execEvent{Type: eventExit, Pid: pid, Uid: 1000, TimeNs: monoNs, ExitCode: exitCode}
}

func newTestRecorder(source eventSource, out *bytes.Buffer, bootNs int64) *Recorder {
	r := NewRecorder(log.GetLogger(), source, out, bootNs)
	r.lookupArgs = func(pid uint32) []string { return nil }
	return r
}

func recordedEvents(t *testing.T, out *bytes.Buffer) []tracelog.Event {
	events := []tracelog.Event{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}

		var event tracelog.Event
		require.Nil(t, json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}

	return events
}

func TestRecorderPairsExecAndExit(t *testing.T) {
	source := &fakeSource{reads: []readResult{
		{event: execAt(101, 100, "build", "/usr/bin/build", 1000000000)},
		{event: exitAt(101, 3000000000, 0)},
	}}
	out := &bytes.Buffer{}

	recorder := newTestRecorder(source, out, 1700000000000000000)
	recorder.lookupArgs = func(pid uint32) []string { return []string{"--release"} }
	recorder.Run()

	events := recordedEvents(t, out)
	require.Len(t, events, 1)
	assert.Equal(t, "build", events[0].Name)
	assert.Equal(t, 101, events[0].Pid)
	assert.Equal(t, 100, events[0].Ppid)
	assert.Equal(t, 1000, events[0].Uid)
	assert.Equal(t, "/usr/bin/build", events[0].FileName)
	assert.Equal(t, []string{"--release"}, events[0].Args)
	assert.Equal(t, int64(1700000001000000000), events[0].StartTimeNs)
	assert.Equal(t, int64(2000000000), events[0].DurationNs)
	assert.Equal(t, 0, events[0].ExitCode)
}

func TestRecorderDropsUnmatchedExit(t *testing.T) {
	source := &fakeSource{reads: []readResult{
		{event: exitAt(55, 1000000000, 0)},
	}}
	out := &bytes.Buffer{}

	newTestRecorder(source, out, 0).Run()

	assert.Empty(t, recordedEvents(t, out))
}

func TestRecorderDropsStillRunningProcesses(t *testing.T) {
	source := &fakeSource{reads: []readResult{
		{event: execAt(55, 1, "sleep", "/usr/bin/sleep", 1000000000)},
	}}
	out := &bytes.Buffer{}

	newTestRecorder(source, out, 0).Run()

	assert.Empty(t, recordedEvents(t, out))
}

func TestRecorderKeepsLastExecOfPid(t *testing.T) {
	source := &fakeSource{reads: []readResult{
		{event: execAt(7, 1, "sh", "/bin/sh", 1000000000)},
		{event: execAt(7, 1, "node", "/usr/bin/node", 2000000000)},
		{event: exitAt(7, 5000000000, 1)},
	}}
	out := &bytes.Buffer{}

	newTestRecorder(source, out, 0).Run()

	events := recordedEvents(t, out)
	require.Len(t, events, 1)
	assert.Equal(t, "node", events[0].Name)
	assert.Equal(t, int64(3000000000), events[0].DurationNs)
	assert.Equal(t, 1, events[0].ExitCode)
}

func TestRecorderContinuesAfterReadError(t *testing.T) {
	source := &fakeSource{reads: []readResult{
		{err: errors.New("bad record")},
		{event: execAt(101, 100, "build", "/usr/bin/build", 1000000000)},
		{event: exitAt(101, 2000000000, 0)},
	}}
	out := &bytes.Buffer{}

	newTestRecorder(source, out, 0).Run()

	assert.Len(t, recordedEvents(t, out), 1)
}

func TestRecorderGracefulStop(t *testing.T) {
	source := &fakeSource{}

	recorder := newTestRecorder(source, &bytes.Buffer{}, 0)
	recorder.GracefulStop()

	assert.True(t, source.closed)
}
