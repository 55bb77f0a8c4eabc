package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	version "github.com/jobtrace/jobtrace/cmd"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Prints version of jobtrace-statd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jobtrace-statd version: %s\n", version.GetVersion())
	},
}
