package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

func buildJobEvents() []tracelog.Event {
	return []tracelog.Event{
		{Name: "build", Pid: 101, Ppid: 100, Uid: 1000, FileName: "/usr/bin/build", StartTimeNs: 0, DurationNs: 500000000, ExitCode: 0},
		{Name: "test", Pid: 102, Ppid: 100, Uid: 1000, FileName: "/usr/bin/test", StartTimeNs: 500000000, DurationNs: 2000000000, ExitCode: 1},
		{Name: "lint", Pid: 103, Ppid: 100, Uid: 1000, FileName: "/usr/bin/lint", StartTimeNs: 2600000000, DurationNs: 100000000, ExitCode: 0},
	}
}

func TestBuildTimelineKeepsChronologicalOrder(t *testing.T) {
	entries := BuildTimeline(buildJobEvents(), 10)
	require.Len(t, entries, 3)

	assert.Equal(t, "build", entries[0].Label)
	assert.Equal(t, int64(0), entries[0].StartMs)
	assert.Equal(t, int64(500), entries[0].EndMs)
	assert.False(t, entries[0].Critical)

	assert.Equal(t, "test", entries[1].Label)
	assert.Equal(t, int64(500), entries[1].StartMs)
	assert.Equal(t, int64(2500), entries[1].EndMs)
	assert.True(t, entries[1].Critical)

	assert.Equal(t, "lint", entries[2].Label)
	assert.Equal(t, int64(2600), entries[2].StartMs)
	assert.Equal(t, int64(2700), entries[2].EndMs)
	assert.False(t, entries[2].Critical)
}

func TestBuildTimelineBoundsEntries(t *testing.T) {
	entries := BuildTimeline(buildJobEvents(), 2)
	require.Len(t, entries, 2)

	assert.Equal(t, "build", entries[0].Label)
	assert.Equal(t, "test", entries[1].Label)
}

func TestBuildTimelineRanksTiesByEarlierStart(t *testing.T) {
	events := []tracelog.Event{
		{Name: "late", StartTimeNs: 2000000000, DurationNs: 1000000000},
		{Name: "early", StartTimeNs: 1000000000, DurationNs: 1000000000},
		{Name: "big", StartTimeNs: 0, DurationNs: 3000000000},
	}

	entries := BuildTimeline(events, 2)
	require.Len(t, entries, 2)

	assert.Equal(t, "big", entries[0].Label)
	assert.Equal(t, "early", entries[1].Label)
}

func TestBuildTimelineNonPositiveMaxCount(t *testing.T) {
	assert.Empty(t, BuildTimeline(buildJobEvents(), 0))
	assert.Empty(t, BuildTimeline(buildJobEvents(), -5))
	assert.Empty(t, BuildTimeline(nil, 10))
}

func TestBuildTimelineEscapesGanttDelimiter(t *testing.T) {
	events := []tracelog.Event{
		{Name: "npm:build", StartTimeNs: 0, DurationNs: 1000000},
	}

	entries := BuildTimeline(events, 10)
	require.Len(t, entries, 1)
	assert.Equal(t, "npm#colon;build", entries[0].Label)
}

func TestBuildTimelineAnnotatesNestedActionRunners(t *testing.T) {
	tests := []struct {
		name               string
		event              tracelog.Event
		expectedAnnotation string
	}{
		{
			name: "node running an installed action",
			event: tracelog.Event{
				Name:        "node",
				FileName:    "/usr/bin/node",
				Args:        []string{"/home/runner/work/_actions/actions/checkout/v4/dist/index.js"},
				StartTimeNs: 0,
				DurationNs:  1000000,
			},
			expectedAnnotation: "checkout",
		},
		{
			name: "node running project code",
			event: tracelog.Event{
				Name:        "node",
				FileName:    "/usr/bin/node",
				Args:        []string{"/home/runner/work/project/index.js"},
				StartTimeNs: 0,
				DurationNs:  1000000,
			},
			expectedAnnotation: "",
		},
		{
			name: "non-node process referencing the install path",
			event: tracelog.Event{
				Name:        "cat",
				FileName:    "/usr/bin/cat",
				Args:        []string{"/home/runner/work/_actions/actions/checkout/v4/action.yml"},
				StartTimeNs: 0,
				DurationNs:  1000000,
			},
			expectedAnnotation: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := BuildTimeline([]tracelog.Event{tt.event}, 10)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedAnnotation, entries[0].Annotation)
		})
	}
}

func TestBuildTimelineDoesNotMutateInput(t *testing.T) {
	events := buildJobEvents()

	BuildTimeline(events, 1)

	assert.Equal(t, "build", events[0].Name)
	assert.Equal(t, "test", events[1].Name)
	assert.Equal(t, "lint", events[2].Name)
}

func TestRenderTimeline(t *testing.T) {
	entries := BuildTimeline(buildJobEvents(), 10)
	rendered := RenderTimeline(entries, "Process Timeline")

	expected := `gantt
    title Process Timeline
    dateFormat x
    axisFormat %H:%M:%S
    build : 0, 500
    test :crit, 500, 2500
    lint : 2600, 2700
`
	assert.Equal(t, expected, rendered)
}

func TestRenderTimelineWithAnnotation(t *testing.T) {
	entries := []TimelineEntry{
		{Label: "node", Annotation: "checkout", StartMs: 0, EndMs: 750},
	}

	rendered := RenderTimeline(entries, "Process Timeline")
	assert.Contains(t, rendered, "node (checkout) : 0, 750")
}
