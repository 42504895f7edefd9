package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracingKeys are the tracers of the module, all of which are set to the
// level given by flag --trace.
var tracingKeys = []string{
	"parsetab.cli",
	"parsetab.grammar",
	"parsetab.ll",
	"parsetab.lr",
	"parsetab.scanner",
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var level string
	var plain bool
	out := &display{w: os.Stdout}
	root := &cobra.Command{
		Use:   "parsetab",
		Short: "table-driven LL(1) and LR parsing",
		Long: `Parsetab analyses context-free grammars and parses token sequences,
either top-down with an LL(1) table or bottom-up with ACTION/GOTO tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setTraceLevel(level)
			out.w = cmd.OutOrStdout()
			out.plain = plain
			if !plain {
				initDisplay()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&level, "trace", "Error", "trace level [Debug|Info|Error]")
	root.PersistentFlags().BoolVar(&plain, "plain", false, "plain text output")
	root.AddCommand(cmdAnalyze(out))
	root.AddCommand(cmdLL(out))
	root.AddCommand(cmdLR(out))
	root.AddCommand(cmdRepl(out))
	return root
}

// setTraceLevel routes tracing to the Go logger, writing to stderr.
func setTraceLevel(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	l := tracing.TraceLevelFromString(level)
	for _, key := range tracingKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Debugf("trace level is %s", level)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
