package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/parsetab"
	"github.com/npillmayer/parsetab/grammar"
	"github.com/npillmayer/parsetab/internal/examples"
	"github.com/npillmayer/parsetab/ll"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/parsetab/trace"
	"github.com/spf13/cobra"
)

func cmdAnalyze(out *display) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <grammar-file>",
		Short: "show FIRST and FOLLOW sets and the LL(1) table of a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0])
			if err != nil {
				return err
			}
			return analyze(out, g)
		},
	}
}

func analyze(out *display, g *grammar.Grammar) error {
	ga := grammar.Analyse(g)
	out.section("Grammar " + g.Name)
	fmt.Fprint(out.w, g.String())
	out.section("FIRST and FOLLOW")
	rows := [][]string{{"", "FIRST", "nullable", "FOLLOW"}}
	for _, A := range g.NonTerminals() {
		rows = append(rows, []string{
			A.Name,
			symbolList(ga.First().Of(A)),
			fmt.Sprintf("%v", ga.First().CanDeriveEmpty(A)),
			symbolList(ga.Follow().Of(A)),
		})
	}
	if err := out.table(rows); err != nil {
		return err
	}
	table := ll.BuildTable(g, ga.First(), ga.Follow())
	out.section("LL(1) table")
	if err := out.table(table.Matrix()); err != nil {
		return err
	}
	if conflicts := table.Conflicts(); len(conflicts) > 0 {
		out.section("Conflicts")
		for _, c := range conflicts {
			out.info("%v", c)
		}
		out.info("grammar %s is not LL(1)", g.Name)
	} else {
		out.info("grammar %s is LL(1)", g.Name)
	}
	return nil
}

func cmdLL(out *display) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "ll <grammar-file> [tokens...]",
		Short: "parse input top-down with the LL(1) table of a grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0])
			if err != nil {
				return err
			}
			table := ll.BuildTable(g, nil, nil)
			if table.HasConflicts() {
				tracer().Infof("grammar %s is not LL(1), parsing may stop at a conflict", g.Name)
			}
			tokens, err := inputTokens(g.Terminals(), args[1:], source)
			if err != nil {
				return err
			}
			tree, tr, err := ll.NewParser(table).Parse(tokens)
			return report(out, tree, tr, err)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "scan input text instead of taking terminal names")
	return cmd
}

func cmdLR(out *display) *cobra.Command {
	var source string
	var handles bool
	cmd := &cobra.Command{
		Use:   "lr <tables-file> [tokens...]",
		Short: "parse input bottom-up with ACTION/GOTO tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(args[0])
			if err != nil {
				return err
			}
			tokens, err := inputTokens(tables.Terminals(), args[1:], source)
			if err != nil {
				return err
			}
			var tree *parsetree.Node
			var tr *trace.Trace
			if handles {
				hp, err := lr.NewHandleParserForTables(tables)
				if err != nil {
					return err
				}
				tree, tr, err = hp.Parse(tokens)
				return report(out, tree, tr, err)
			}
			tree, tr, err = lr.NewParser(tables).Parse(tokens)
			return report(out, tree, tr, err)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "scan input text instead of taking terminal names")
	cmd.Flags().BoolVar(&handles, "handles", false, "reduce by matching handles instead of consulting ACTION")
	return cmd
}

// report shows a parse result. A syntax error is shown together with the
// trace leading to it and then returned.
func report(out *display, tree *parsetree.Node, tr *trace.Trace, err error) error {
	if tr != nil {
		if rerr := out.result(tree, tr); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		out.error(err)
		return err
	}
	out.info("input accepted")
	return nil
}

// loadGrammar reads a grammar in text format. An empty path selects the
// built-in expression grammar.
func loadGrammar(path string) (*grammar.Grammar, error) {
	if path == "" {
		return examples.ExprGrammar()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := grammar.Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), string(src))
	if err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", path, err)
	}
	tracer().Infof("grammar %s has %d rules", g.Name, g.RuleCount())
	return g, nil
}

// loadTables reads ACTION/GOTO tables in JSON format. An empty path selects
// the built-in tables for the expression language.
func loadTables(path string) (*lr.Tables, error) {
	if path == "" {
		return examples.ExprTables()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tables, err := lr.ReadTables(f)
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	tracer().Infof("tables %s have %d states", path, tables.States())
	return tables, nil
}

// inputTokens creates the token sequence for a parse. Either source text is
// scanned, or args are taken as terminal names, possibly several per
// argument separated by blanks.
func inputTokens(terminals []grammar.Symbol, args []string, source string) ([]parsetab.Token, error) {
	if source != "" {
		if len(args) > 0 {
			return nil, errors.New("either give tokens or --source, not both")
		}
		return scan(terminals, source)
	}
	return parsetab.Tokens(strings.Fields(strings.Join(args, " "))...), nil
}

// scan tokenizes text, recognizing identifiers for terminal "id" and numbers
// for terminal "num".
func scan(terminals []grammar.Symbol, text string) ([]parsetab.Token, error) {
	lx, err := scanner.ForSymbols(terminals,
		scanner.Class("id", scanner.Identifier),
		scanner.Class("num", scanner.Number))
	if err != nil {
		return nil, err
	}
	return lx.Tokens(text)
}

func symbolList(syms []grammar.Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return "{" + strings.Join(names, ", ") + "}"
}
