package sysstats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
	"github.com/sirupsen/logrus"
)

// SampleSource provides the samples collected so far.
type SampleSource interface {
	Samples() []Sample
}

// Sampler collects host resource usage at a fixed interval. The first tick
// only primes the counter baselines, so a series starts one interval after
// Run.
type Sampler struct {
	logger   *logrus.Logger
	interval time.Duration

	mu      sync.RWMutex
	samples []Sample

	lastCPU  cpu.TimesStat
	lastNet  net.IOCountersStat
	lastDisk map[string]disk.IOCountersStat
	primed   bool

	cancelCtx  context.Context
	cancelFunc context.CancelFunc
}

// NewSampler creates a new Sampler ticking every interval.
func NewSampler(logger *logrus.Logger, interval time.Duration) *Sampler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Sampler{
		logger:     logger,
		interval:   interval,
		cancelCtx:  ctx,
		cancelFunc: cancel,
	}
}

// Run collects samples until GracefulStop is called.
func (s *Sampler) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.cancelCtx.Done():
			return
		case <-ticker.C:
			if err := s.collect(time.Now().UnixMilli()); err != nil {
				s.logger.WithError(err).Warn("failed to collect system stats")
			}
		}
	}
}

// GracefulStop stops the sampling loop.
func (s *Sampler) GracefulStop() {
	s.cancelFunc()
}

// Samples implements SampleSource.
func (s *Sampler) Samples() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

func (s *Sampler) collect(timestamp int64) error {
	cpuTimes, err := cpu.Times(false)
	if err != nil {
		return fmt.Errorf("failed to read cpu times: %w", err)
	}
	if len(cpuTimes) == 0 {
		return fmt.Errorf("no aggregate cpu times reported")
	}

	netCounters, err := net.IOCounters(false)
	if err != nil {
		return fmt.Errorf("failed to read network counters: %w", err)
	}
	if len(netCounters) == 0 {
		return fmt.Errorf("no aggregate network counters reported")
	}

	diskCounters, err := disk.IOCounters()
	if err != nil {
		return fmt.Errorf("failed to read disk counters: %w", err)
	}

	virtualMemory, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("failed to read memory usage: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		s.lastCPU = cpuTimes[0]
		s.lastNet = netCounters[0]
		s.lastDisk = diskCounters
		s.primed = true
		return nil
	}

	sample := Sample{
		Time:          timestamp,
		MemoryUsedMb:  float64(virtualMemory.Used) / 1024 / 1024,
		MemoryTotalMb: float64(virtualMemory.Total) / 1024 / 1024,
	}

	deltaTotal := cpuTotal(cpuTimes[0]) - cpuTotal(s.lastCPU)
	if deltaTotal > 0 {
		sample.CPULoadUser = (cpuTimes[0].User - s.lastCPU.User) / deltaTotal * 100
		sample.CPULoadSystem = (cpuTimes[0].System - s.lastCPU.System) / deltaTotal * 100
	}

	sample.NetworkReadKb = float64(netCounters[0].BytesRecv-s.lastNet.BytesRecv) / 1024
	sample.NetworkWriteKb = float64(netCounters[0].BytesSent-s.lastNet.BytesSent) / 1024

	var readBytes, writeBytes uint64
	for name, counter := range diskCounters {
		last, ok := s.lastDisk[name]
		if !ok {
			continue
		}
		readBytes += counter.ReadBytes - last.ReadBytes
		writeBytes += counter.WriteBytes - last.WriteBytes
	}
	sample.DiskReadKb = float64(readBytes) / 1024
	sample.DiskWriteKb = float64(writeBytes) / 1024

	s.lastCPU = cpuTimes[0]
	s.lastNet = netCounters[0]
	s.lastDisk = diskCounters
	s.samples = append(s.samples, sample)

	return nil
}

func cpuTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq +
		t.Softirq + t.Steal + t.Guest + t.GuestNice
}
