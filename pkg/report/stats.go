package report

import (
	"strconv"

	"github.com/jobtrace/jobtrace/pkg/sysstats"
)

// BuildStatsTable projects metric summaries into a table spec, keeping the
// summarizer's metric order.
func BuildStatsTable(summaries []sysstats.MetricSummary) TableSpec {
	spec := TableSpec{
		Header: []string{"Metric", "Min", "Avg", "Max"},
		Rows:   make([][]string, 0, len(summaries)),
	}

	for _, summary := range summaries {
		spec.Rows = append(spec.Rows, []string{
			summary.Name,
			formatMetric(summary.Min),
			formatMetric(summary.Avg),
			formatMetric(summary.Max),
		})
	}

	return spec
}

func formatMetric(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
