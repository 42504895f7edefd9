package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/parsetab/ll"
	"github.com/npillmayer/parsetab/lr"
	"github.com/npillmayer/parsetab/parsetree"
	"github.com/npillmayer/parsetab/scanner"
	"github.com/npillmayer/parsetab/trace"
	"github.com/spf13/cobra"
)

func cmdRepl(out *display) *cobra.Command {
	var grammarFile, tablesFile string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "parse lines of input interactively, top-down and bottom-up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			intp, err := newIntp(out, grammarFile, tablesFile)
			if err != nil {
				return err
			}
			repl, err := readline.New("parsetab> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp.repl = repl
			out.info("Quit with <ctrl>D or :quit, help with :help")
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar for the LL(1) parser (default: expressions)")
	cmd.Flags().StringVar(&tablesFile, "tables", "", "ACTION/GOTO tables for the LR parser (default: expressions)")
	return cmd
}

// Intp is our interpreter object. Every input line is scanned and parsed by
// the parsers selected with the current mode.
type Intp struct {
	out     *display
	repl    *readline.Instance
	ll      *ll.Parser
	lr      *lr.Parser
	llLexer *scanner.Lexer
	lrLexer *scanner.Lexer
	mode    string // "ll", "lr" or "both"
	steps   bool   // show traces
}

func newIntp(out *display, grammarFile, tablesFile string) (*Intp, error) {
	g, err := loadGrammar(grammarFile)
	if err != nil {
		return nil, err
	}
	tables, err := loadTables(tablesFile)
	if err != nil {
		return nil, err
	}
	intp := &Intp{
		out:  out,
		ll:   ll.NewParser(ll.BuildTable(g, nil, nil)),
		lr:   lr.NewParser(tables),
		mode: "both",
	}
	opts := []scanner.Option{
		scanner.Class("id", scanner.Identifier),
		scanner.Class("num", scanner.Number),
	}
	if intp.llLexer, err = scanner.ForSymbols(g.Terminals(), opts...); err != nil {
		return nil, err
	}
	if intp.lrLexer, err = scanner.ForSymbols(tables.Terminals(), opts...); err != nil {
		return nil, err
	}
	return intp, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			intp.out.error(err)
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command (a line starting with ':') or parses a line of
// input.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.command(strings.Fields(line[1:]))
	}
	var lltree, lrtree *parsetree.Node
	if intp.mode != "lr" {
		tokens, err := intp.llLexer.Tokens(line)
		if err != nil {
			return false, err
		}
		intp.out.section("LL(1)")
		tree, tr, err := intp.ll.Parse(tokens)
		if err = intp.show(tree, tr, err); err != nil {
			return false, err
		}
		lltree = tree
	}
	if intp.mode != "ll" {
		tokens, err := intp.lrLexer.Tokens(line)
		if err != nil {
			return false, err
		}
		intp.out.section("LR")
		tree, tr, err := intp.lr.Parse(tokens)
		if err = intp.show(tree, tr, err); err != nil {
			return false, err
		}
		lrtree = tree
	}
	if lltree != nil && lrtree != nil {
		lly, lry := lltree.StripEpsilon().Yield(), lrtree.StripEpsilon().Yield()
		if strings.Join(lly, " ") != strings.Join(lry, " ") {
			return false, fmt.Errorf("parse trees differ in their yields: %v vs %v", lly, lry)
		}
	}
	return false, nil
}

func (intp *Intp) show(tree *parsetree.Node, tr *trace.Trace, err error) error {
	if intp.steps {
		if terr := intp.out.trace(tr); terr != nil {
			return terr
		}
	}
	if err != nil {
		return err
	}
	return intp.out.tree(tree)
}

func (intp *Intp) command(args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("missing command after ':'")
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "ll", "lr", "both":
		intp.mode = args[0]
		intp.out.info("parsing with %s", args[0])
	case "trace":
		intp.steps = !intp.steps
		intp.out.info("showing traces: %v", intp.steps)
	case "table":
		return false, intp.out.table(intp.ll.Table().Matrix())
	case "help":
		intp.out.info(":ll | :lr | :both   select the parsers")
		intp.out.info(":trace              toggle traces")
		intp.out.info(":table              show the LL(1) table")
		intp.out.info(":quit               leave")
	default:
		return false, fmt.Errorf("unknown command :%s", args[0])
	}
	return false, nil
}
