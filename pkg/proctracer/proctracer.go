// Package proctracer starts and stops the process recorder and the stats
// daemon around the traced section of a CI job.
package proctracer

import (
	"errors"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jobtrace/jobtrace/pkg/jobstate"
)

// State keys shared between the start and finish invocations of a job.
const (
	StateKeyRecorderPid = "recorder_pid"
	StateKeyTraceLog    = "trace_log"
	StateKeyStatsPid    = "statd_pid"
)

// Options configures the tracing session a Controller manages.
type Options struct {
	// RecorderBin overrides recorder binary discovery.
	RecorderBin string
	// OutputPath is the trace log file the recorder writes.
	OutputPath string
	// RecorderLogPath receives the recorder's own output.
	RecorderLogPath string
	// BpfObjectPath points the recorder at its compiled BPF object.
	BpfObjectPath string

	// StatsEnabled also runs the stats daemon for the session.
	StatsEnabled bool
	// StatdBin overrides stats daemon binary discovery.
	StatdBin string
	// StatsAddr is the address the stats daemon listens on.
	StatsAddr string
	// StatdLogPath receives the stats daemon's own output.
	StatdLogPath string
}

// Controller drives the recorder across the two invocations of a job.
// Start and Finish report success instead of returning errors so a broken
// tracer never fails the build it observes.
type Controller struct {
	logger  *logrus.Logger
	store   jobstate.Store
	process DaemonProcess
	options Options

	stopped bool
}

// NewController creates a new Controller.
func NewController(logger *logrus.Logger, store jobstate.Store, process DaemonProcess, options Options) *Controller {
	return &Controller{
		logger:  logger,
		store:   store,
		process: process,
		options: options,
	}
}

// Start launches the detached recorder and saves its pid for the finish
// invocation. It returns false when tracing could not begin. The stats
// daemon rides along best effort and never affects the outcome.
func (c *Controller) Start() bool {
	if runtime.GOOS != "linux" {
		c.logger.WithField("os", runtime.GOOS).Warn("process tracing is only supported on linux, skipping")
		return false
	}

	binary, err := resolveRecorderBin(c.options.RecorderBin)
	if err != nil {
		c.logger.WithError(err).Warn("failed to locate the recorder binary, skipping tracing")
		return false
	}

	args := []string{"run", "--format", "json", "--output", c.options.OutputPath}
	if c.options.BpfObjectPath != "" {
		args = append(args, "--bpf-object", c.options.BpfObjectPath)
	}

	pid, err := c.process.Spawn(binary, args, c.options.RecorderLogPath)
	if err != nil {
		c.logger.WithError(err).Error("failed to start the recorder, skipping tracing")
		return false
	}

	if err := c.store.Set(StateKeyRecorderPid, strconv.Itoa(pid)); err != nil {
		c.logger.WithError(err).Warn("failed to save the recorder pid, stopping the recorder")
		c.interruptQuietly(pid, "recorder")
		return false
	}

	if err := c.store.Set(StateKeyTraceLog, c.options.OutputPath); err != nil {
		c.logger.WithError(err).Warn("failed to save the trace log path")
	}

	c.logger.WithFields(logrus.Fields{"pid": pid, "output": c.options.OutputPath}).Info("recorder started")

	if c.options.StatsEnabled {
		c.startStats()
	}

	return true
}

// Finish delivers an interrupt to the recorder saved by Start so it can
// flush buffered records and close the trace log. The signal is fire and
// forget, Finish never waits for the recorder to exit. It returns false
// when there is nothing to stop. The stats daemon, when present, is
// stopped on every path.
func (c *Controller) Finish() bool {
	c.stopStats()

	pidValue, found, err := c.store.Get(StateKeyRecorderPid)
	if err != nil {
		c.logger.WithError(err).Warn("failed to read the recorder pid")
		return false
	}

	if !found {
		c.logger.Warn("tracing was not started in this job, nothing to stop")
		return false
	}

	pid, err := strconv.Atoi(pidValue)
	if err != nil {
		c.logger.WithError(err).WithField("pid", pidValue).Warn("saved recorder pid is not a number")
		return false
	}

	err = c.process.Interrupt(pid)
	if errors.Is(err, ErrAlreadyExited) {
		c.logger.WithField("pid", pid).Warn("recorder already exited")
		c.stopped = true
		return true
	}

	if err != nil {
		c.logger.WithError(err).WithField("pid", pid).Error("failed to signal the recorder")
		return false
	}

	c.stopped = true
	c.logger.WithField("pid", pid).Info("recorder stop requested")
	return true
}

// Stopped reports whether Finish confirmed the recorder stopped.
func (c *Controller) Stopped() bool {
	return c.stopped
}

func (c *Controller) startStats() {
	binary, err := resolveStatdBin(c.options.StatdBin)
	if err != nil {
		c.logger.WithError(err).Warn("failed to locate the stats daemon, skipping stats collection")
		return
	}

	args := []string{"run", "--addr", c.options.StatsAddr}
	pid, err := c.process.Spawn(binary, args, c.options.StatdLogPath)
	if err != nil {
		c.logger.WithError(err).Warn("failed to start the stats daemon, skipping stats collection")
		return
	}

	if err := c.store.Set(StateKeyStatsPid, strconv.Itoa(pid)); err != nil {
		c.logger.WithError(err).Warn("failed to save the stats daemon pid, stopping it")
		c.interruptQuietly(pid, "stats daemon")
		return
	}

	c.logger.WithFields(logrus.Fields{"pid": pid, "addr": c.options.StatsAddr}).Info("stats daemon started")
}

func (c *Controller) stopStats() {
	pidValue, found, err := c.store.Get(StateKeyStatsPid)
	if err != nil || !found {
		return
	}

	pid, err := strconv.Atoi(pidValue)
	if err != nil {
		c.logger.WithField("pid", pidValue).Warn("saved stats daemon pid is not a number")
		return
	}

	err = c.process.Interrupt(pid)
	if err != nil && !errors.Is(err, ErrAlreadyExited) {
		c.logger.WithError(err).WithField("pid", pid).Warn("failed to stop the stats daemon")
		return
	}

	c.logger.WithField("pid", pid).Info("stats daemon stopped")
}

func (c *Controller) interruptQuietly(pid int, name string) {
	if err := c.process.Interrupt(pid); err != nil && !errors.Is(err, ErrAlreadyExited) {
		c.logger.WithError(err).WithField("pid", pid).Warnf("failed to stop the %s", name)
	}
}
