// Package recorder turns kernel exec and exit events into the newline
// delimited trace log consumed by the report phase.
package recorder

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/cilium/ebpf/ringbuf"
	"github.com/sirupsen/logrus"

	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

// eventSource yields raw events from the kernel.
type eventSource interface {
	Read() (execEvent, error)
	Close() error
}

type pending struct {
	event  tracelog.Event
	monoNs uint64
}

// Recorder pairs each exec event with the matching exit and writes one
// complete process record per line. Processes still running when the
// recorder stops are dropped, records always carry a final exit code.
type Recorder struct {
	logger     *logrus.Logger
	source     eventSource
	encoder    *json.Encoder
	bootNs     int64
	lookupArgs func(pid uint32) []string

	inflight map[uint32]pending
	written  int
}

// NewRecorder creates a new Recorder writing records to out. bootNs
// anchors the kernel's monotonic timestamps to wall clock time.
func NewRecorder(logger *logrus.Logger, source eventSource, out io.Writer, bootNs int64) *Recorder {
	return &Recorder{
		logger:     logger,
		source:     source,
		encoder:    json.NewEncoder(out),
		bootNs:     bootNs,
		lookupArgs: commandArgs,
		inflight:   map[uint32]pending{},
	}
}

// Run consumes events until the source is closed.
func (r *Recorder) Run() {
	for {
		event, err := r.source.Read()
		if err != nil {
			if errors.Is(err, ringbuf.ErrClosed) {
				break
			}

			r.logger.WithError(err).Warn("failed to read a trace event")
			continue
		}

		switch event.Type {
		case eventExec:
			r.trackExec(event)
		case eventExit:
			r.recordExit(event)
		default:
			r.logger.WithField("type", event.Type).Debug("unknown trace event type")
		}
	}

	r.logger.WithFields(logrus.Fields{"records": r.written, "running": len(r.inflight)}).Info("recorder stopped")
}

// GracefulStop closes the event source, unblocking Run.
func (r *Recorder) GracefulStop() {
	if err := r.source.Close(); err != nil {
		r.logger.WithError(err).Warn("failed to close the event source")
	}
}

// trackExec remembers a started process until its exit arrives. A pid
// that execs again before exiting replaces its earlier entry.
func (r *Recorder) trackExec(event execEvent) {
	r.inflight[event.Pid] = pending{
		event: tracelog.Event{
			Name:        cString(event.Comm[:]),
			Pid:         int(event.Pid),
			Ppid:        int(event.Ppid),
			Uid:         int(event.Uid),
			FileName:    cString(event.Filename[:]),
			Args:        r.lookupArgs(event.Pid),
			StartTimeNs: r.bootNs + int64(event.TimeNs),
		},
		monoNs: event.TimeNs,
	}
}

// recordExit completes a tracked process and writes its record. Exits
// of processes that started before the recorder are dropped.
func (r *Recorder) recordExit(event execEvent) {
	p, found := r.inflight[event.Pid]
	if !found {
		return
	}
	delete(r.inflight, event.Pid)

	p.event.DurationNs = int64(event.TimeNs - p.monoNs)
	p.event.ExitCode = int(event.ExitCode)

	if err := r.encoder.Encode(&p.event); err != nil {
		r.logger.WithError(err).Error("failed to write a process record")
		return
	}

	r.written++
}
