// Package report turns parsed trace events into the job summary document,
// a mermaid timeline plus fixed width detail tables behind feature flags.
package report

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jobtrace/jobtrace/pkg/sysstats"
	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

// DefaultTimelineMaxCount bounds the timeline when not configured.
const DefaultTimelineMaxCount = 100

// Options controls which sections the report document contains.
type Options struct {
	ShowTimeline     bool
	TimelineMaxCount int
	ShowTable        bool
	ShowStats        bool
}

// Builder assembles report documents from parsed events.
type Builder struct {
	logger  *logrus.Logger
	options Options
}

// NewBuilder creates a new Builder.
func NewBuilder(logger *logrus.Logger, options Options) *Builder {
	return &Builder{logger: logger, options: options}
}

// Build renders the report document: a heading, then a fenced timeline
// chart, a process table and a stats table. A section is omitted when it
// is switched off or has no data.
func (b *Builder) Build(events []tracelog.Event, stats []sysstats.MetricSummary) string {
	var doc strings.Builder
	doc.WriteString("## Job Trace Report\n")

	if b.options.ShowTimeline {
		timeline := BuildTimeline(events, b.options.TimelineMaxCount)
		if len(timeline) > 0 {
			doc.WriteString("\n```mermaid\n")
			doc.WriteString(RenderTimeline(timeline, "Process Timeline"))
			doc.WriteString("```\n")
		} else {
			b.logger.Debug("timeline is empty, omitting section")
		}
	}

	if b.options.ShowTable && len(events) > 0 {
		doc.WriteString("\n### Processes\n\n```\n")
		doc.WriteString(RenderTable(BuildTable(events)))
		doc.WriteString("```\n")
	}

	if b.options.ShowStats && len(stats) > 0 {
		doc.WriteString("\n### System Stats\n\n```\n")
		doc.WriteString(RenderTable(BuildStatsTable(stats)))
		doc.WriteString("```\n")
	}

	return doc.String()
}
