package parser

import (
	"strings"

	"github.com/PawanKartikS/Cherry/internal/ast"
	"github.com/PawanKartikS/Cherry/internal/lexer"
)

// Parse lexes and parses an entire program, one line at a time, and
// returns its top-level statement/block tree. Blank lines and
// comment-only lines produce no tokens and are silently skipped, the way
// original_source/main.c's line loop does.
func Parse(source string) ([]*ast.Node, error) {
	builder := NewBuilder()

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNo := i + 1

		toks, err := lexer.Lex(line, lineNo)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}

		node, err := ParseLine(toks, lineNo)
		if err != nil {
			return nil, err
		}
		if err := builder.Add(node); err != nil {
			return nil, err
		}
	}

	return builder.Finish()
}
