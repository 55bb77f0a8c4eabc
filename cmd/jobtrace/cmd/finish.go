package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jobtrace/jobtrace/cmd/jobtrace/cmd/flags"
	"github.com/jobtrace/jobtrace/pkg/jobstate"
	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/proctracer"
	"github.com/jobtrace/jobtrace/pkg/report"
	"github.com/jobtrace/jobtrace/pkg/sysstats"
	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

const statsFetchTimeout = 10 * time.Second

// statsFetcher pulls the collected samples from the stats daemon.
type statsFetcher interface {
	Fetch(ctx context.Context) ([]sysstats.Sample, error)
}

type finishCommand struct {
	globalFlags *flags.GlobalFlags
	logger      *logrus.Logger
	tracer      proctracer.Tracer
	store       jobstate.Store
	statsClient statsFetcher
	fs          afero.Fs

	traceLog      string
	summaryFile   string
	minDuration   int64
	systemNoise   bool
	chart         bool
	chartMaxCount int
	table         bool
	stats         bool
	statsAddr     string
}

func newFinishCommand(globalFlags *flags.GlobalFlags) *cobra.Command {
	cmd := &finishCommand{
		globalFlags: globalFlags,
		logger:      log.GetLogger(),
	}

	settings, err := flags.LoadSettings()
	if err != nil {
		cmd.logger.WithError(err).Warn("ignoring invalid jobtrace environment settings")
	}

	finishCmd := &cobra.Command{
		Use:   "finish",
		Short: "Stop tracing and append the trace report to the job summary",
		RunE:  cmd.run,
	}

	finishCmd.Flags().StringVar(&cmd.traceLog, "trace-log", settings.TraceLog, "The trace log to read, defaults to the path saved by start")
	finishCmd.Flags().StringVar(&cmd.summaryFile, "summary-file", settings.SummaryFile, "The file the report is appended to, defaults to GITHUB_STEP_SUMMARY")
	finishCmd.Flags().Int64Var(&cmd.minDuration, "trace-min-duration", settings.MinDuration, "Drop events shorter than this many nanoseconds, -1 keeps everything")
	finishCmd.Flags().BoolVar(&cmd.systemNoise, "trace-system-noise", settings.SystemNoise, "Keep common short lived shell and utility processes in the report")
	finishCmd.Flags().BoolVar(&cmd.chart, "trace-chart", settings.Chart, "Render the process timeline chart")
	finishCmd.Flags().IntVar(&cmd.chartMaxCount, "trace-chart-max-count", settings.ChartMaxCount, "Maximum number of processes on the timeline chart")
	finishCmd.Flags().BoolVar(&cmd.table, "trace-table", settings.Table, "Render the process detail table")
	finishCmd.Flags().BoolVar(&cmd.stats, "stats", settings.Stats, "Include the system stats section in the report")
	finishCmd.Flags().StringVar(&cmd.statsAddr, "stats-addr", settings.StatsAddr, "The address the stats daemon listens on")

	return finishCmd
}

// run never returns an error, a job must not fail because its trace
// report could not be generated.
func (c *finishCommand) run(_ *cobra.Command, _ []string) error {
	if c.store == nil {
		c.store = jobstate.NewStore(c.logger)
	}

	// The daemons are stopped by Finish, fetch the samples while the
	// stats daemon is still up.
	samples := c.fetchStats()

	if c.tracer == nil {
		c.tracer = proctracer.NewController(c.logger, c.store, proctracer.NewDaemonProcess(), proctracer.Options{})
	}

	if !c.tracer.Finish() {
		c.logger.Warn("tracing was not active for this job, no report generated")
		return nil
	}

	if !c.tracer.Stopped() {
		return nil
	}

	events, ok := c.readTraceLog()
	if !ok {
		return nil
	}

	builder := report.NewBuilder(c.logger, report.Options{
		ShowTimeline:     c.chart,
		TimelineMaxCount: c.chartMaxCount,
		ShowTable:        c.table,
		ShowStats:        c.stats,
	})

	c.writeReport(builder.Build(events, sysstats.Summarize(samples)))
	return nil
}

func (c *finishCommand) fetchStats() []sysstats.Sample {
	if !c.stats {
		return nil
	}

	if c.statsClient == nil {
		c.statsClient = sysstats.NewClient(c.statsAddr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), statsFetchTimeout)
	defer cancel()

	samples, err := c.statsClient.Fetch(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("failed to fetch system stats, the report will not have a stats section")
		return nil
	}

	return samples
}

func (c *finishCommand) readTraceLog() ([]tracelog.Event, bool) {
	path := c.traceLog
	if path == "" {
		saved, found, err := c.store.Get(proctracer.StateKeyTraceLog)
		if err != nil {
			c.logger.WithError(err).Warn("failed to read the saved trace log path")
		}

		if found {
			path = saved
		}
	}

	if path == "" {
		path = defaultTraceLogPath()
	}

	events, err := tracelog.Parse(c.logger, path, tracelog.ParseOptions{
		MinDurationNs:      c.minDuration,
		IncludeSystemNoise: c.systemNoise,
	})
	if err != nil {
		c.logger.WithError(err).Error("failed to read the trace log, no report generated")
		return nil, false
	}

	return events, true
}

func (c *finishCommand) writeReport(document string) {
	path := c.summaryFile
	if path == "" {
		path = os.Getenv("GITHUB_STEP_SUMMARY")
	}

	if path == "" {
		c.logger.Warn("no summary file configured, writing the report to stdout")
		fmt.Print(document)
		return
	}

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	if err := report.NewWriter(c.fs).Append(path, document); err != nil {
		c.logger.WithError(err).Error("failed to write the trace report")
		return
	}

	c.logger.WithField("path", path).Info("trace report appended to the job summary")
}
