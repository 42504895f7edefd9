package trace

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Header is the header line of a step table.
var Header = []string{"Step", "Stack", "Input", "Action"}

// Rows returns the steps of a trace as table rows, without a header.
func (tr *Trace) Rows() [][]string {
	rows := make([][]string, 0, tr.Len())
	for _, s := range tr.steps {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Index),
			strings.Join(s.Stack, " "),
			strings.Join(s.Input, " "),
			s.Describe(),
		})
	}
	return rows
}

// Print writes a trace as a step table with columns Step, Stack, Input and
// Action.
func Print(w io.Writer, tr *Trace) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Header, "\t"))
	for _, row := range tr.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
