package jobstate

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// GitHubStore implements Store on top of the GitHub Actions state channel.
// Set appends key=value lines to the file named by GITHUB_STATE, and the
// runner injects each saved value back into later steps of the same job as
// a STATE_<key> environment variable, which is where Get reads from.
type GitHubStore struct{}

// NewGitHubStore creates a new GitHubStore.
func NewGitHubStore() *GitHubStore {
	return &GitHubStore{}
}

// Set saves value under key for the rest of the job.
func (s *GitHubStore) Set(key string, value string) error {
	if strings.ContainsRune(value, '\n') {
		return errors.New("state values must be a single line")
	}

	stateFile := os.Getenv("GITHUB_STATE")
	if stateFile == "" {
		return errors.New("GITHUB_STATE is not set")
	}

	f, err := os.OpenFile(stateFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Get reads the value saved under key by an earlier invocation.
func (s *GitHubStore) Get(key string) (string, bool, error) {
	value, found := os.LookupEnv("STATE_" + key)
	return value, found, nil
}
