package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/PawanKartikS/Cherry/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Cherry program and print its tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's line:column")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	for lineNo, line := range strings.Split(source, "\n") {
		toks, err := lexer.Lex(line, lineNo+1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", filename, lineNo+1, err)
			return fmt.Errorf("lexing failed")
		}
		for _, tok := range toks {
			if showPos {
				fmt.Printf("%d:%d\t%-10s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Text())
			} else {
				fmt.Printf("%-10s %q\n", tok.Type, tok.Text())
			}
		}
	}
	return nil
}
