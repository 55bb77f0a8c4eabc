package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

// nanosPerMillisecond converts the recorder's nanosecond timestamps to the
// millisecond offsets the chart renderer expects.
const nanosPerMillisecond = int64(1000000)

// actionsInstallPrefix is where the GitHub runner installs actions. Nested
// node invocations under it get annotated with the action repository name.
const actionsInstallPrefix = "/home/runner/work/_actions/"

// TimelineEntry is one bar of the timeline projection.
type TimelineEntry struct {
	Label      string
	Annotation string
	Critical   bool
	StartMs    int64
	EndMs      int64
}

// BuildTimeline selects the maxCount longest running events and returns
// them re-sorted chronologically for display. Ranking ties go to the
// earlier start. maxCount of zero or less yields an empty timeline.
func BuildTimeline(events []tracelog.Event, maxCount int) []TimelineEntry {
	if maxCount <= 0 {
		return []TimelineEntry{}
	}

	ranked := make([]tracelog.Event, len(events))
	copy(ranked, events)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DurationNs != ranked[j].DurationNs {
			return ranked[i].DurationNs > ranked[j].DurationNs
		}
		return ranked[i].StartTimeNs < ranked[j].StartTimeNs
	})

	if len(ranked) > maxCount {
		ranked = ranked[:maxCount]
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StartTimeNs < ranked[j].StartTimeNs
	})

	entries := make([]TimelineEntry, 0, len(ranked))
	for i := range ranked {
		event := &ranked[i]
		entries = append(entries, TimelineEntry{
			Label:      escapeLabel(event.Name),
			Annotation: annotationFor(event),
			Critical:   event.ExitCode != 0,
			StartMs:    event.StartTimeNs / nanosPerMillisecond,
			EndMs:      event.EndTimeNs() / nanosPerMillisecond,
		})
	}

	return entries
}

// RenderTimeline renders entries as a mermaid gantt chart.
func RenderTimeline(entries []TimelineEntry, title string) string {
	var chart strings.Builder

	chart.WriteString("gantt\n")
	chart.WriteString("    title " + title + "\n")
	chart.WriteString("    dateFormat x\n")
	chart.WriteString("    axisFormat %H:%M:%S\n")

	for _, entry := range entries {
		label := entry.Label
		if entry.Annotation != "" {
			label += " (" + entry.Annotation + ")"
		}

		if entry.Critical {
			fmt.Fprintf(&chart, "    %s :crit, %d, %d\n", label, entry.StartMs, entry.EndMs)
		} else {
			fmt.Fprintf(&chart, "    %s : %d, %d\n", label, entry.StartMs, entry.EndMs)
		}
	}

	return chart.String()
}

// annotationFor labels nested runner invocations that execute an installed
// action with the action repository name.
func annotationFor(event *tracelog.Event) string {
	if event.Name != "node" {
		return ""
	}

	for _, arg := range event.Args {
		if !strings.HasPrefix(arg, actionsInstallPrefix) {
			continue
		}

		segments := strings.Split(strings.TrimPrefix(arg, actionsInstallPrefix), "/")
		if len(segments) >= 2 {
			return segments[1]
		}
	}

	return ""
}

// escapeLabel keeps task names from colliding with the gantt field
// delimiter.
func escapeLabel(name string) string {
	return strings.ReplaceAll(name, ":", "#colon;")
}
