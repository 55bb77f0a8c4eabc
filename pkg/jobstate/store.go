// Package jobstate persists small key value pairs between the start and
// finish invocations of the same CI job.
package jobstate

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store carries state written by one command invocation to a later
// invocation in the same job.
type Store interface {
	Set(key string, value string) error
	Get(key string) (string, bool, error)
}

// NewStore returns the GitHub Actions backed store when the runner exposes
// a state file, and a temp directory backed store otherwise.
func NewStore(logger *logrus.Logger) Store {
	if os.Getenv("GITHUB_STATE") != "" {
		return NewGitHubStore()
	}

	dir := os.Getenv("RUNNER_TEMP")
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, "jobtrace-state.json")
	logger.WithField("path", path).Debug("no runner state channel found, using file backed state")
	return NewFileStore(afero.NewOsFs(), path)
}
