package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobtrace/jobtrace/cmd/jobtrace/cmd/flags"
	"github.com/jobtrace/jobtrace/pkg/jobstate"
	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/proctracer"
)

type startCommand struct {
	globalFlags *flags.GlobalFlags
	logger      *logrus.Logger
	tracer      proctracer.Tracer

	traceLog    string
	recorderBin string
	recorderLog string
	bpfObject   string
	stats       bool
	statsAddr   string
	statdBin    string
	statdLog    string
}

func newStartCommand(globalFlags *flags.GlobalFlags) *cobra.Command {
	cmd := &startCommand{
		globalFlags: globalFlags,
		logger:      log.GetLogger(),
	}

	settings, err := flags.LoadSettings()
	if err != nil {
		cmd.logger.WithError(err).Warn("ignoring invalid jobtrace environment settings")
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start tracing the processes of the current job",
		RunE:  cmd.run,
	}

	startCmd.Flags().StringVar(&cmd.traceLog, "trace-log", settings.TraceLog, "The file the recorder writes trace events to, defaults to a file in the runner temp directory")
	startCmd.Flags().StringVar(&cmd.recorderBin, "recorder-bin", "", "Path to the jobtrace-recorder binary, resolved from JOBTRACE_RECORDER_BIN, the executable directory and PATH when empty")
	startCmd.Flags().StringVar(&cmd.recorderLog, "recorder-log", "", "The file receiving the recorder's own log output")
	startCmd.Flags().StringVar(&cmd.bpfObject, "bpf-object", "", "Path to the compiled BPF object passed on to the recorder")
	startCmd.Flags().BoolVar(&cmd.stats, "stats", settings.Stats, "Also collect system stats for the job")
	startCmd.Flags().StringVar(&cmd.statsAddr, "stats-addr", settings.StatsAddr, "The address the stats daemon listens on")
	startCmd.Flags().StringVar(&cmd.statdBin, "statd-bin", "", "Path to the jobtrace-statd binary, resolved like --recorder-bin when empty")
	startCmd.Flags().StringVar(&cmd.statdLog, "statd-log", "", "The file receiving the stats daemon's log output")

	return startCmd
}

// run never returns an error, a job must not fail because its tracing
// could not begin.
func (c *startCommand) run(_ *cobra.Command, _ []string) error {
	if c.traceLog == "" {
		c.traceLog = defaultTraceLogPath()
	}

	if c.recorderLog == "" {
		c.recorderLog = defaultRecorderLogPath()
	}

	if c.statdLog == "" {
		c.statdLog = defaultStatdLogPath()
	}

	if c.tracer == nil {
		store := jobstate.NewStore(c.logger)
		c.tracer = proctracer.NewController(c.logger, store, proctracer.NewDaemonProcess(), proctracer.Options{
			RecorderBin:     c.recorderBin,
			OutputPath:      c.traceLog,
			RecorderLogPath: c.recorderLog,
			BpfObjectPath:   c.bpfObject,
			StatsEnabled:    c.stats,
			StatdBin:        c.statdBin,
			StatsAddr:       c.statsAddr,
			StatdLogPath:    c.statdLog,
		})
	}

	if !c.tracer.Start() {
		c.logger.Warn("tracing is disabled for this job")
		return nil
	}

	c.logger.Info("jobtrace started")
	return nil
}
