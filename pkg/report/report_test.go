package report

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrace/jobtrace/pkg/sysstats"
	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

func TestBuilderBuildFullDocument(t *testing.T) {
	builder := NewBuilder(logrus.New(), Options{
		ShowTimeline:     true,
		TimelineMaxCount: DefaultTimelineMaxCount,
		ShowTable:        true,
		ShowStats:        true,
	})

	stats := []sysstats.MetricSummary{
		{Name: "CPU User (%)", Min: 10, Avg: 20, Max: 30},
	}

	document := builder.Build(buildJobEvents(), stats)

	assert.Contains(t, document, "## Job Trace Report\n")
	assert.Contains(t, document, "```mermaid\n")
	assert.Contains(t, document, "gantt\n")
	assert.Contains(t, document, "### Processes\n")
	assert.Contains(t, document, "### System Stats\n")
	assert.Contains(t, document, "CPU User (%)")
}

func TestBuilderOmitsDisabledSections(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		absent  string
	}{
		{
			name:    "timeline off",
			options: Options{ShowTimeline: false, TimelineMaxCount: 10, ShowTable: true},
			absent:  "```mermaid",
		},
		{
			name:    "table off",
			options: Options{ShowTimeline: true, TimelineMaxCount: 10, ShowTable: false},
			absent:  "### Processes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewBuilder(logrus.New(), tt.options)
			document := builder.Build(buildJobEvents(), nil)
			assert.NotContains(t, document, tt.absent)
		})
	}
}

func TestBuilderOmitsEmptySections(t *testing.T) {
	builder := NewBuilder(logrus.New(), Options{
		ShowTimeline:     true,
		TimelineMaxCount: 10,
		ShowTable:        true,
		ShowStats:        true,
	})

	document := builder.Build([]tracelog.Event{}, []sysstats.MetricSummary{})

	assert.Contains(t, document, "## Job Trace Report\n")
	assert.NotContains(t, document, "```")
}

func TestBuilderTimelineEmptyWhenMaxCountZero(t *testing.T) {
	builder := NewBuilder(logrus.New(), Options{ShowTimeline: true, TimelineMaxCount: 0})

	document := builder.Build(buildJobEvents(), nil)

	assert.NotContains(t, document, "```mermaid")
}

func TestWriterAppend(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := NewWriter(fs)

	err := writer.Append("/tmp/summary.md", "first\n")
	require.Nil(t, err)
	err = writer.Append("/tmp/summary.md", "second\n")
	require.Nil(t, err)

	content, err := afero.ReadFile(fs, "/tmp/summary.md")
	require.Nil(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}

func TestWriterAppendOpenFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	writer := NewWriter(fs)

	err := writer.Append("/tmp/summary.md", "first\n")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to open summary file")
}
