package executor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mereth/vertexdb/ir"
)

// FormatRows renders rows as a markdown table over the given column
// order, the Row/VariableID analogue of the teacher's TableFormatter
// (datalog/executor/table_formatter.go).
func FormatRows(columns []ir.VariableID, rows []Row) string {
	if len(rows) == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", columns)
	}

	var b strings.Builder
	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.String()
	}
	table.Header(headers)

	for _, r := range sortedRows(columns, rows) {
		row := make([]string, len(columns))
		for i, c := range columns {
			if v, ok := r.Get(c); ok {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		table.Append(row)
	}
	table.Render()
	b.WriteString(fmt.Sprintf("\n_%d rows_\n", len(rows)))
	return b.String()
}

func sortedRows(columns []ir.VariableID, rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.Slice(out, func(i, j int) bool {
		for _, c := range columns {
			vi, _ := out[i].Get(c)
			vj, _ := out[j].Get(c)
			si, sj := fmt.Sprintf("%v", vi), fmt.Sprintf("%v", vj)
			if si != sj {
				return si < sj
			}
		}
		return false
	})
	return out
}
