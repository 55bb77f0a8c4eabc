package tracelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSystemNoise(t *testing.T) {
	tests := []struct {
		name     string
		process  string
		expected bool
	}{
		{name: "shell", process: "sh", expected: true},
		{name: "coreutils helper", process: "mkdir", expected: true},
		{name: "build tool", process: "go", expected: false},
		{name: "empty name", process: "", expected: false},
		{name: "case sensitive", process: "Bash", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSystemNoise(tt.process))
		})
	}
}
