package main

import (
	ver "github.com/jobtrace/jobtrace/cmd"
	"github.com/jobtrace/jobtrace/cmd/jobtrace-recorder/cmd"
)

var (
	version    = "dev"
	commit     = "main"
	versionStr = version + " (" + commit + ")"
)

func main() {
	ver.SetVersion(versionStr)
	cmd.Execute()
}
