package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// exitCode is the process exit code to use once Execute returns an error.
// A script's own `exit(n)` call overrides the blanket 1 a lex/parse/eval
// failure otherwise reports (spec.md §6's exit-code contract).
var exitCode = 1

// ExitCode reports the exit code main should use after a failing Execute.
func ExitCode() int {
	return exitCode
}

var rootCmd = &cobra.Command{
	Use:   "cherry",
	Short: "Cherry language interpreter",
	Long: `cherry is a tree-walking interpreter for the Cherry scripting
language: line-oriented statements, def/if/for blocks, constant-folded
arithmetic, and a small built-in library (cmp, len, idx, put, rev, exit,
gc, type).

Invoked with no subcommand, cherry drops into an interactive REPL.`,
	Version: Version,
	RunE: func(c *cobra.Command, args []string) error {
		return runRepl(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose diagnostics on stderr")
}
