package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/PawanKartikS/Cherry/internal/interp"
	"github.com/PawanKartikS/Cherry/internal/parser"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Cherry session",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl reads def/if/for/... lines from stdin, printing a ">>> " prompt
// for each, and terminates after two consecutive blank lines (spec.md
// §6). Since a Cherry program's top level must be whole function
// declarations, the accumulated buffer is parsed and run as one program
// only once the session ends, rather than line by line.
func runRepl(c *cobra.Command, _ []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	blanks := 0

	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks >= 2 {
				break
			}
			continue
		}
		blanks = 0
		lines = append(lines, line)
	}

	source := strings.Join(lines, "\n")
	if strings.TrimSpace(source) == "" {
		return nil
	}

	program, err := parser.Parse(source)
	if err != nil {
		reportSourceError(err, "<repl>", source)
		exitCode = 1
		return fmt.Errorf("parsing failed")
	}

	verbose, _ := c.Flags().GetBool("verbose")
	it := interp.New(os.Stdout, os.Stdin, interp.WithVerbose(verbose))
	if err := it.Run(program); err != nil {
		reportSourceError(err, "<repl>", source)
		exitCode = 1
		return fmt.Errorf("execution failed")
	}

	exitCode = it.ExitCode()
	if exitCode != 0 {
		return fmt.Errorf("program exited with code %d", exitCode)
	}
	return nil
}
