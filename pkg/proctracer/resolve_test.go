package proctracer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBinaryExplicitPath(t *testing.T) {
	binary := createTestDaemonBin(t)
	defer os.Remove(binary)

	resolved, err := resolveRecorderBin(binary)
	require.NoError(t, err)
	assert.Equal(t, binary, resolved)
}

func TestResolveBinaryExplicitPathMissing(t *testing.T) {
	_, err := resolveRecorderBin("/nonexistent/jobtrace-recorder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobtrace-recorder not found")
}

func TestResolveBinaryFromEnv(t *testing.T) {
	binary := createTestDaemonBin(t)
	defer os.Remove(binary)

	if err := os.Setenv(recorderBinEnv, binary); !assert.NoError(t, err) {
		assert.FailNow(t, err.Error())
	}
	defer os.Unsetenv(recorderBinEnv)

	resolved, err := resolveRecorderBin("")
	require.NoError(t, err)
	assert.Equal(t, binary, resolved)
}

func TestResolveBinaryFromEnvMissing(t *testing.T) {
	if err := os.Setenv(statdBinEnv, "/nonexistent/jobtrace-statd"); !assert.NoError(t, err) {
		assert.FailNow(t, err.Error())
	}
	defer os.Unsetenv(statdBinEnv)

	_, err := resolveStatdBin("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobtrace-statd not found")
}
