package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobtrace/jobtrace/cmd/jobtrace-recorder/cmd/flags"
	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/recorder"
)

type runCommand struct {
	globalFlags *flags.GlobalFlags
	logger      *logrus.Logger

	format    string
	output    string
	bpfObject string
}

func newRunCommand(globalFlags *flags.GlobalFlags) *cobra.Command {
	cmd := &runCommand{
		globalFlags: globalFlags,
		logger:      log.GetLogger(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Record process events into the trace log until interrupted",
		RunE:  cmd.run,
	}

	// Add flags
	runCmd.Flags().StringVar(&cmd.format, "format", "json", "The trace log format, only json is supported")
	runCmd.Flags().StringVar(&cmd.output, "output", defaultOutputPath(), "The file the trace log is written to")
	runCmd.Flags().StringVar(&cmd.bpfObject, "bpf-object", "", "The compiled BPF object, defaults to recorder.bpf.o next to the binary")

	return runCmd
}

func (c *runCommand) run(cmd *cobra.Command, args []string) error {
	if c.format != "json" {
		return fmt.Errorf("unsupported trace log format: %s", c.format)
	}

	objectPath, err := recorder.ResolveBpfObject(c.bpfObject)
	if err != nil {
		return err
	}

	probe, err := recorder.NewProbe(objectPath)
	if err != nil {
		return err
	}

	output, err := os.OpenFile(c.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		_ = probe.Close()
		return fmt.Errorf("failed to open the trace log for writing: %w", err)
	}

	bootNs, err := recorder.BootTimeNs()
	if err != nil {
		_ = probe.Close()
		_ = output.Close()
		return err
	}

	rec := recorder.NewRecorder(c.logger, probe, output, bootNs)

	c.logger.WithFields(logrus.Fields{"output": c.output, "bpf-object": objectPath}).Info("jobtrace-recorder is running")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		c.logger.WithField("signal", sig).Warn("got interrupt signal, attempting graceful shutdown")

		rec.GracefulStop()
	}()

	rec.Run()

	if err := output.Close(); err != nil {
		c.logger.WithError(err).Warn("failed to close the trace log")
	}

	c.logger.Info("jobtrace-recorder shutdown gracefully")

	return nil
}

func defaultOutputPath() string {
	dir := os.Getenv("RUNNER_TEMP")
	if dir == "" {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "jobtrace-trace.log")
}
