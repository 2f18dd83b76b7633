package cmd

import (
	"fmt"
	"os"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/errors"
	"github.com/PawanKartikS/Cherry/internal/interp"
	"github.com/PawanKartikS/Cherry/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Cherry program",
	Long: `Execute a Cherry program from a file or inline source.

Examples:
  cherry run script.cherry
  cherry run -e $'def main()\nprint 1 + 1\nend'
  cherry run --trace script.cherry`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST's function list before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace each statement as it evaluates")
}

func runScript(c *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		reportSourceError(err, filename, source)
		exitCode = 1
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Printf("parsed %d top-level function(s)\n", len(program))
		for _, fn := range program {
			fmt.Printf("  %s\n", fn.Payload.(*ast.Call).Name)
		}
	}

	verbose, _ := c.Flags().GetBool("verbose")
	it := interp.New(os.Stdout, os.Stdin, interp.WithTrace(trace), interp.WithVerbose(verbose))

	if err := it.Run(program); err != nil {
		reportSourceError(err, filename, source)
		exitCode = 1
		return fmt.Errorf("execution failed")
	}

	exitCode = it.ExitCode()
	if exitCode != 0 {
		return fmt.Errorf("program exited with code %d", exitCode)
	}
	return nil
}

// readSource resolves the program text from -e, a file argument, or
// neither (an error: run needs one of the two).
func readSource(inline string, args []string) (source, filename string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

// reportSourceError prints err with source context when it carries a
// *errors.SourceError, falling back to its plain message otherwise.
func reportSourceError(err error, filename, source string) {
	if se, ok := err.(*errors.SourceError); ok {
		fmt.Fprintln(os.Stderr, se.Format(filename, splitLines(source), true))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
}

func splitLines(source string) []string {
	var lines []string
	start := 0
	for idx, r := range source {
		if r == '\n' {
			lines = append(lines, source[start:idx])
			start = idx + 1
		}
	}
	lines = append(lines, source[start:])
	return lines
}
