package cmd

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrace/jobtrace/pkg/log"
	"github.com/jobtrace/jobtrace/pkg/sysstats"
)

func TestStatdRootCommand(t *testing.T) {
	t.Run("TestRootCommandVersion", func(t *testing.T) {
		stdout := new(bytes.Buffer)

		err := runRootCommand(stdout, []string{"version"})
		if assert.NoError(t, err) {
			out, _ := io.ReadAll(stdout)
			assert.Contains(t, string(out), "jobtrace-statd version:")
		}
	})

	t.Run("TestRootCommandInvalidSubcommand", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		err := runRootCommand(stdout, []string{"invalid-subcommand"})
		assert.EqualError(t, err, `unknown command "invalid-subcommand" for "jobtrace-statd"`)
	})
}

func TestNewRunCommand(t *testing.T) {
	cmd := newRunCommand(nil)

	assert.Equal(t, "run", cmd.Use)

	addrFlag := cmd.Flags().Lookup("addr")
	if assert.NotNil(t, addrFlag) {
		assert.Equal(t, sysstats.DefaultAddr, addrFlag.DefValue)
	}

	intervalFlag := cmd.Flags().Lookup("interval")
	if assert.NotNil(t, intervalFlag) {
		assert.Equal(t, time.Second.String(), intervalFlag.DefValue)
	}
}

func runRootCommand(output *bytes.Buffer, args []string) error {
	logger := log.GetLogger()
	logger.SetOutput(output)
	rootCmd := buildRootCommand(logger)
	rootCmd.SetOut(output)
	rootCmd.SetErr(output)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
