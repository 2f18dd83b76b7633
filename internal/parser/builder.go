package parser

import (
	"fmt"

	"github.com/PawanKartikS/Cherry/internal/ast"
)

// Builder assembles the flat sequence of per-line nodes ParseLine produces
// into the nested block tree the evaluator walks: def/if/for bodies become
// a block node's Left children, an else branch becomes its Right
// children, and a matching end closes it. Grounded in add_node's
// block_stack/aux_stack/active_side state machine in
// original_source/ast.c.
type Builder struct {
	blockStack []*ast.Node
	elseActive []bool
	top        []*ast.Node
	inFunc     bool
}

// NewBuilder returns an empty Builder ready to accept a program's lines in
// order.
func NewBuilder() *Builder {
	return &Builder{}
}

func isBlockOpener(k ast.Kind) bool {
	switch k {
	case ast.FuncDecl, ast.Conditional, ast.ForLoop:
		return true
	}
	return false
}

// Add feeds one parsed line into the builder, splicing it into the
// current open block (or the top-level program, if no block is open).
func (b *Builder) Add(node *ast.Node) error {
	switch node.Kind {
	case ast.CloseBlock:
		if len(b.blockStack) == 0 {
			return lineErrorf(node.Line, "end without a matching block opener")
		}
		n := len(b.blockStack)
		closed := b.blockStack[n-1]
		b.blockStack = b.blockStack[:n-1]
		b.elseActive = b.elseActive[:n-1]
		if closed.Kind == ast.FuncDecl {
			b.inFunc = false
		}
		return nil

	case ast.NoOp:
		if len(b.blockStack) == 0 {
			return lineErrorf(node.Line, "else without a matching if")
		}
		top := len(b.blockStack) - 1
		if b.blockStack[top].Kind != ast.Conditional {
			return lineErrorf(node.Line, "else is only valid inside an if block")
		}
		if b.elseActive[top] {
			return lineErrorf(node.Line, "duplicate else for the same if")
		}
		b.elseActive[top] = true
		return nil

	default:
		if len(b.blockStack) == 0 && node.Kind != ast.FuncDecl {
			return lineErrorf(node.Line, "statement outside of a function body: %s", node.Keyword)
		}
		if isBlockOpener(node.Kind) {
			if node.Kind == ast.FuncDecl && b.inFunc {
				return lineErrorf(node.Line, "nested function declarations are not allowed")
			}
			b.attach(node)
			if node.Kind == ast.FuncDecl {
				b.inFunc = true
			}
			b.blockStack = append(b.blockStack, node)
			b.elseActive = append(b.elseActive, false)
			return nil
		}
		b.attach(node)
		return nil
	}
}

// attach appends node to whichever child slice is currently active: the
// top-level program if no block is open, or the innermost open block's
// Left (main body) or Right (else branch) slice.
func (b *Builder) attach(node *ast.Node) {
	if len(b.blockStack) == 0 {
		b.top = append(b.top, node)
		return
	}
	top := len(b.blockStack) - 1
	parent := b.blockStack[top]
	if b.elseActive[top] {
		parent.Right = append(parent.Right, node)
	} else {
		parent.Left = append(parent.Left, node)
	}
}

// Finish validates every opened block was closed and returns the
// top-level program.
func (b *Builder) Finish() ([]*ast.Node, error) {
	if len(b.blockStack) != 0 {
		unclosed := b.blockStack[len(b.blockStack)-1]
		return nil, lineErrorf(unclosed.Line, "unterminated %s block", unclosed.Keyword)
	}
	return b.top, nil
}

func lineErrorf(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}
