package tracelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxLineBytes bounds a single trace log line. Command lines of spawned
// processes can get long, but anything beyond this is garbage.
const maxLineBytes = 1024 * 1024

// ParseOptions controls which events Parse keeps.
type ParseOptions struct {
	// MinDurationNs drops events that ran shorter than this. A negative
	// value disables duration filtering.
	MinDurationNs int64
	// IncludeSystemNoise keeps short-lived shell and coreutils helpers
	// that are suppressed from reports by default.
	IncludeSystemNoise bool
}

// Parse streams the trace log at path and returns the retained events
// sorted ascending by start time, ties keeping file order.
//
// The recorder may have been interrupted mid-write, so a line that fails
// to decode is skipped with a debug log instead of failing the parse.
// Only a file-level read failure is returned as an error.
func Parse(logger *logrus.Logger, path string, opts ParseOptions) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace log: %w", err)
	}
	defer file.Close()

	events := []Event{}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(bufio.ScanLines)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			logger.WithError(err).WithField("line", line).Debug("skipping malformed trace log line")
			continue
		}

		if opts.MinDurationNs >= 0 && event.DurationNs < opts.MinDurationNs {
			continue
		}

		if !opts.IncludeSystemNoise && IsSystemNoise(event.Name) {
			continue
		}

		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace log: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTimeNs < events[j].StartTimeNs
	})

	return events, nil
}
