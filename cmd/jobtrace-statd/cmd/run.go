package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobtrace/jobtrace/cmd/jobtrace-statd/cmd/flags"
	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/sysstats"
)

type runCommand struct {
	globalFlags *flags.GlobalFlags
	logger      *logrus.Logger

	addr     string
	interval time.Duration
}

func newRunCommand(globalFlags *flags.GlobalFlags) *cobra.Command {
	cmd := &runCommand{
		globalFlags: globalFlags,
		logger:      log.GetLogger(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Sample host resource usage until interrupted",
		RunE:  cmd.run,
	}

	// Add flags
	runCmd.Flags().StringVar(&cmd.addr, "addr", sysstats.DefaultAddr, "The address to serve the collected samples on")
	runCmd.Flags().DurationVar(&cmd.interval, "interval", time.Second, "The sampling interval")

	return runCmd
}

func (c *runCommand) run(cmd *cobra.Command, args []string) error {
	sampler := sysstats.NewSampler(c.logger, c.interval)
	server := sysstats.NewServer(c.logger, sampler, c.addr)

	c.logger.WithFields(logrus.Fields{"addr": c.addr, "interval": c.interval}).Info("jobtrace-statd is running")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		c.logger.WithField("signal", sig).Warn("got interrupt signal, attempting graceful shutdown")

		sampler.GracefulStop()
		server.GracefulStop()
	}()

	go sampler.Run()

	if err := server.Run(); err != nil {
		return err
	}

	c.logger.Info("jobtrace-statd shutdown gracefully")

	return nil
}
