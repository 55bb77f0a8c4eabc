package recorder

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cilium/ebpf"
	"github.com/cilium/ebpf/link"
	"github.com/cilium/ebpf/ringbuf"
	"golang.org/x/sys/unix"
)

//go:generate clang -O2 -g -Wall -target bpf -c bpf/recorder.bpf.c -o bpf/recorder.bpf.o

const memLockLimit = 64 * 1024 * 1024 // 64 MiB

// Probe loads the compiled BPF object and attaches its programs to the
// scheduler exec and exit tracepoints.
type Probe struct {
	collection *ebpf.Collection
	execLink   link.Link
	exitLink   link.Link
	reader     *ringbuf.Reader
}

// NewProbe loads the BPF object at bpfObjectPath into the kernel and
// starts streaming events from its ring buffer.
func NewProbe(bpfObjectPath string) (*Probe, error) {
	rLimit := unix.Rlimit{Cur: memLockLimit, Max: memLockLimit}
	if err := unix.Setrlimit(unix.RLIMIT_MEMLOCK, &rLimit); err != nil {
		return nil, fmt.Errorf("failed to raise the memlock limit: %w", err)
	}

	spec, err := ebpf.LoadCollectionSpec(bpfObjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load the BPF object: %w", err)
	}

	collection, err := ebpf.NewCollection(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create the BPF collection: %w", err)
	}

	p := &Probe{collection: collection}

	p.execLink, err = link.Tracepoint("sched", "sched_process_exec", collection.Programs["handle_exec"], nil)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to attach the exec tracepoint: %w", err)
	}

	p.exitLink, err = link.Tracepoint("sched", "sched_process_exit", collection.Programs["handle_exit"], nil)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to attach the exit tracepoint: %w", err)
	}

	p.reader, err = ringbuf.NewReader(collection.Maps["events"])
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to open the ring buffer: %w", err)
	}

	return p, nil
}

// Read blocks until the kernel publishes the next event. It returns
// ringbuf.ErrClosed after Close.
func (p *Probe) Read() (execEvent, error) {
	record, err := p.reader.Read()
	if err != nil {
		return execEvent{}, err
	}

	var event execEvent
	if err := binary.Read(bytes.NewReader(record.RawSample), binary.LittleEndian, &event); err != nil {
		return execEvent{}, fmt.Errorf("failed to decode a ring buffer record: %w", err)
	}

	return event, nil
}

// Close detaches the tracepoints and releases the BPF objects. Closing
// the ring buffer unblocks a pending Read.
func (p *Probe) Close() error {
	if p.reader != nil {
		p.reader.Close()
	}

	if p.execLink != nil {
		p.execLink.Close()
	}

	if p.exitLink != nil {
		p.exitLink.Close()
	}

	p.collection.Close()
	return nil
}
