package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/trace"
	"github.com/pterm/pterm"
)

// display renders results either with pterm or as plain text to w.
type display struct {
	w     io.Writer
	plain bool
}

func (d *display) section(title string) {
	if d.plain {
		fmt.Fprintf(d.w, "--- %s ---\n", title)
		return
	}
	pterm.DefaultSection.Println(title)
}

func (d *display) info(format string, args ...interface{}) {
	if d.plain {
		fmt.Fprintf(d.w, format+"\n", args...)
		return
	}
	pterm.Info.Println(fmt.Sprintf(format, args...))
}

func (d *display) error(err error) {
	if d.plain {
		fmt.Fprintf(d.w, "error: %v\n", err)
		return
	}
	pterm.Error.Println(err.Error())
}

// table renders rows, the first of which is a header.
func (d *display) table(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if d.plain {
		tw := tabwriter.NewWriter(d.w, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Render()
	return nil
}

func (d *display) tree(root *parsetree.Node) error {
	if root == nil {
		return nil
	}
	if d.plain {
		return parsetree.Print(d.w, root)
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledList(root))).Render()
	return nil
}

func (d *display) trace(tr *trace.Trace) error {
	if tr.Len() == 0 {
		return nil
	}
	if d.plain {
		return trace.Print(d.w, tr)
	}
	return d.table(append([][]string{trace.Header}, tr.Rows()...))
}

// result shows the outcome of a parse. A partial tree is shown for failed
// top-down parses.
func (d *display) result(tree *parsetree.Node, tr *trace.Trace) error {
	if tree != nil {
		d.section("Parse tree")
		if err := d.tree(tree); err != nil {
			return err
		}
	}
	d.section("Trace")
	return d.trace(tr)
}

func leveledList(root *parsetree.Node) pterm.LeveledList {
	items := root.Leveled()
	ll := make(pterm.LeveledList, len(items))
	for i, item := range items {
		ll[i] = pterm.LeveledListItem{Level: item.Level, Text: item.Text}
	}
	return ll
}
