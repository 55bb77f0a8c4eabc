package jobstate

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobtrace/jobtrace/pkg/log"
)

func TestNewStorePicksGitHubStoreWhenStateFilePresent(t *testing.T) {
	if err := os.Setenv("GITHUB_STATE", "/tmp/github_state"); !assert.NoError(t, err) {
		assert.FailNow(t, err.Error())
	}
	defer os.Unsetenv("GITHUB_STATE")

	store := NewStore(log.GetLogger())

	_, ok := store.(*GitHubStore)
	assert.True(t, ok)
}

func TestNewStoreFallsBackToFileStore(t *testing.T) {
	os.Unsetenv("GITHUB_STATE")

	store := NewStore(log.GetLogger())

	_, ok := store.(*FileStore)
	assert.True(t, ok)
}
