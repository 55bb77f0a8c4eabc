package flags

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/jobtrace/jobtrace/pkg/report"
	"github.com/jobtrace/jobtrace/pkg/sysstats"
)

// Settings carries the environment provided defaults for the tracing
// flags. CI integrations set JOBTRACE_* variables instead of passing
// flags on every invocation.
type Settings struct {
	TraceLog      string `envconfig:"TRACE_LOG"`
	SummaryFile   string `envconfig:"SUMMARY_FILE"`
	MinDuration   int64  `envconfig:"TRACE_MIN_DURATION"`
	SystemNoise   bool   `envconfig:"TRACE_SYSTEM_NOISE"`
	Chart         bool   `envconfig:"TRACE_CHART"`
	ChartMaxCount int    `envconfig:"TRACE_CHART_MAX_COUNT"`
	Table         bool   `envconfig:"TRACE_TABLE"`
	Stats         bool   `envconfig:"STATS"`
	StatsAddr     string `envconfig:"STATS_ADDR"`
}

// LoadSettings reads the JOBTRACE_* environment variables on top of the
// built in defaults. The returned settings are usable even when an
// invalid variable makes LoadSettings return an error.
func LoadSettings() (*Settings, error) {
	settings := &Settings{
		MinDuration:   -1,
		Chart:         true,
		ChartMaxCount: report.DefaultTimelineMaxCount,
		Table:         true,
		StatsAddr:     sysstats.DefaultAddr,
	}

	if err := envconfig.Process("jobtrace", settings); err != nil {
		return settings, fmt.Errorf("failed to read the jobtrace environment settings: %w", err)
	}

	return settings, nil
}
