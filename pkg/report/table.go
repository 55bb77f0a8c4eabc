package report

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jobtrace/jobtrace/pkg/stringutil"
	"github.com/jobtrace/jobtrace/pkg/tracelog"
)

const maxCommandWidth = 120

// TableSpec is a table projection, one row per record in input order.
type TableSpec struct {
	Header []string
	Rows   [][]string
}

// BuildTable projects every event into one detail row, keeping the input
// order.
func BuildTable(events []tracelog.Event) TableSpec {
	spec := TableSpec{
		Header: []string{"Name", "Uid", "Pid", "Ppid", "Start (ms)", "Duration (ms)", "Exit Code", "Command"},
		Rows:   make([][]string, 0, len(events)),
	}

	for i := range events {
		event := &events[i]
		spec.Rows = append(spec.Rows, []string{
			event.Name,
			strconv.Itoa(event.Uid),
			strconv.Itoa(event.Pid),
			strconv.Itoa(event.Ppid),
			strconv.FormatInt(event.StartTimeNs/nanosPerMillisecond, 10),
			strconv.FormatInt(event.DurationNs/nanosPerMillisecond, 10),
			strconv.Itoa(event.ExitCode),
			stringutil.Ellipsize(event.Command(), maxCommandWidth),
		})
	}

	return spec
}

// RenderTable renders spec as fixed width text.
func RenderTable(spec TableSpec) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(spec.Header)
	table.SetColWidth(80)
	table.SetColumnSeparator(" ")
	table.SetCenterSeparator("-")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetReflowDuringAutoWrap(false)

	for _, row := range spec.Rows {
		table.Append(row)
	}

	table.Render()
	return buf.String()
}
