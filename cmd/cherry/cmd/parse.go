package cmd

import (
	"fmt"
	"os"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Cherry program and print its AST outline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		reportSourceError(err, filename, source)
		return fmt.Errorf("parsing failed")
	}

	for _, fn := range program {
		printNode(fn, 0)
	}
	return nil
}

func printNode(n *ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Fprintf(os.Stdout, "%s%s (%v) line %d\n", indent, n.Keyword, n.Kind, n.Line)
	for _, child := range n.Left {
		printNode(child, depth+1)
	}
	for _, child := range n.Right {
		printNode(child, depth+1)
	}
}
